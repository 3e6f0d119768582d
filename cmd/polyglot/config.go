package main

import (
	"fmt"

	"github.com/kbukum/polyglot/catalog"
	"github.com/kbukum/polyglot/config"
	"github.com/kbukum/polyglot/observability"
	"github.com/kbukum/polyglot/session"
	"github.com/kbukum/polyglot/speech"
	"github.com/kbukum/polyglot/transcription/whisper"
	"github.com/kbukum/polyglot/translation/microsoft"
	"github.com/kbukum/polyglot/util"
	"github.com/kbukum/polyglot/version"
)

const serviceName = "polyglot"

// Config is the polyglot application config.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Translator    microsoft.Config     `yaml:"translator" mapstructure:"translator"`
	Session       session.Config       `yaml:"session" mapstructure:"session"`
	Catalog       catalog.Config       `yaml:"catalog" mapstructure:"catalog"`
	Speech        speech.Config        `yaml:"speech" mapstructure:"speech"`
	Transcription whisper.Config       `yaml:"transcription" mapstructure:"transcription"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

// ApplyDefaults fills every section.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = serviceName
	}
	if c.Version == "" {
		c.Version = version.Get().String()
	}
	if c.Logging.Output == "" {
		// stdout belongs to the prompt
		c.Logging.Output = "stderr"
	}
	c.ServiceConfig.ApplyDefaults()
	c.Translator.ApplyDefaults()
	c.Session.ApplyDefaults()
	c.Speech.ApplyDefaults()
	c.Transcription.ApplyDefaults()
	c.Observability.ServiceName = util.Coalesce(c.Observability.ServiceName, c.Name)
	c.Observability.ServiceVersion = util.Coalesce(c.Observability.ServiceVersion, c.Version)
	c.Observability.Environment = util.Coalesce(c.Observability.Environment, c.Environment)
	c.Observability.ApplyDefaults()
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Translator.Validate(); err != nil {
		return fmt.Errorf("config.translator: %w", err)
	}
	if err := c.Session.Validate(); err != nil {
		return fmt.Errorf("config.session: %w", err)
	}
	if err := c.Observability.Validate(); err != nil {
		return fmt.Errorf("config.observability: %w", err)
	}
	return nil
}
