package observability

import (
	"time"

	"github.com/kbukum/polyglot/validation"
)

// Config configures OTLP trace and metric export.
type Config struct {
	// Enabled turns exporters on. When false Setup installs nothing and the
	// global no-op providers stay in place.
	Enabled bool `mapstructure:"enabled"`
	// ServiceName is reported as the resource service.name.
	ServiceName    string `mapstructure:"service_name"`
	ServiceVersion string `mapstructure:"service_version"`
	Environment    string `mapstructure:"environment"`
	// Endpoint is the OTLP HTTP host:port.
	Endpoint string `mapstructure:"endpoint" validate:"required_if=Enabled true,omitempty,hostname_port"`
	Insecure bool   `mapstructure:"insecure"`
	// SampleRate is the trace sampling ratio, 0.0 to 1.0.
	SampleRate float64 `mapstructure:"sample_rate" validate:"gte=0,lte=1"`
	// Interval is the metric export interval.
	Interval time.Duration `mapstructure:"interval"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.ServiceName == "" {
		c.ServiceName = "polyglot"
	}
	if c.ServiceVersion == "" {
		c.ServiceVersion = "dev"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Endpoint == "" {
		c.Endpoint = "localhost:4318"
	}
	if c.Interval <= 0 {
		c.Interval = 15 * time.Second
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	return validation.Validate(c)
}

// DefaultConfig returns a disabled config with development defaults.
func DefaultConfig(serviceName string) Config {
	c := Config{ServiceName: serviceName, Insecure: true, SampleRate: 1.0}
	c.ApplyDefaults()
	return c
}
