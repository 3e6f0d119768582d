package session

import (
	"time"

	"github.com/kbukum/polyglot/validation"
)

const (
	// DefaultDebounce is the quiet window before an edit is translated.
	DefaultDebounce = 500 * time.Millisecond
	// DefaultPlaceholder is the output shown before any translation.
	DefaultPlaceholder = "Translation"
	// DefaultNotice is the single user-facing failure message.
	DefaultNotice = "Please Try Again! Some Error Occurred at your side"
	// DefaultLoadingLabel is shown in place of the output while translating.
	DefaultLoadingLabel = "Translating..."

	DefaultSource = "en"
	DefaultTarget = "hi"
)

// Config configures a Session.
type Config struct {
	Debounce      time.Duration `yaml:"debounce" mapstructure:"debounce" validate:"gt=0"`
	DefaultSource string        `yaml:"default_source" mapstructure:"default_source" validate:"required"`
	DefaultTarget string        `yaml:"default_target" mapstructure:"default_target" validate:"required"`
	Placeholder   string        `yaml:"placeholder" mapstructure:"placeholder"`
	Notice        string        `yaml:"notice" mapstructure:"notice" validate:"required"`
	LoadingLabel  string        `yaml:"loading_label" mapstructure:"loading_label"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.Debounce <= 0 {
		c.Debounce = DefaultDebounce
	}
	if c.DefaultSource == "" {
		c.DefaultSource = DefaultSource
	}
	if c.DefaultTarget == "" {
		c.DefaultTarget = DefaultTarget
	}
	if c.Placeholder == "" {
		c.Placeholder = DefaultPlaceholder
	}
	if c.Notice == "" {
		c.Notice = DefaultNotice
	}
	if c.LoadingLabel == "" {
		c.LoadingLabel = DefaultLoadingLabel
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	return validation.Validate(c)
}
