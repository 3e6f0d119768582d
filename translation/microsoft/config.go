package microsoft

import (
	"net/url"
	"time"

	"github.com/kbukum/polyglot/validation"
)

const (
	defaultBaseURL         = "https://microsoft-translator-text.p.rapidapi.com"
	defaultAPIVersion      = "3.0"
	defaultProfanityAction = "NoAction"
	defaultTextType        = "plain"
	defaultTimeout         = 10 * time.Second
)

// Config configures the RapidAPI Microsoft Translator backend.
type Config struct {
	BaseURL string `yaml:"base_url" mapstructure:"base_url" validate:"required,url"`
	// Host is sent as X-RapidAPI-Host. Defaults to the BaseURL host.
	Host   string `yaml:"host" mapstructure:"host" validate:"required,hostname_rfc1123"`
	APIKey string `yaml:"api_key" mapstructure:"api_key" validate:"required"`
	// APIVersion is the translator api-version parameter.
	APIVersion      string        `yaml:"api_version" mapstructure:"api_version" validate:"required"`
	ProfanityAction string        `yaml:"profanity_action" mapstructure:"profanity_action" validate:"oneof=NoAction Marked Deleted"`
	TextType        string        `yaml:"text_type" mapstructure:"text_type" validate:"oneof=plain html"`
	Timeout         time.Duration `yaml:"timeout" mapstructure:"timeout" validate:"gt=0"`
	// SendSource adds from=<source>. Off, the service detects the language.
	SendSource bool `yaml:"send_source" mapstructure:"send_source"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	if c.Host == "" {
		if u, err := url.Parse(c.BaseURL); err == nil {
			c.Host = u.Hostname()
		}
	}
	if c.APIVersion == "" {
		c.APIVersion = defaultAPIVersion
	}
	if c.ProfanityAction == "" {
		c.ProfanityAction = defaultProfanityAction
	}
	if c.TextType == "" {
		c.TextType = defaultTextType
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	return validation.Validate(c)
}
