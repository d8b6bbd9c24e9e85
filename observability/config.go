package observability

import (
	"fmt"
	"time"
)

// Config holds tracing and metrics export settings.
type Config struct {
	Enabled        bool          `yaml:"enabled" mapstructure:"enabled"`
	ServiceName    string        `yaml:"service_name" mapstructure:"service_name"`
	ServiceVersion string        `yaml:"service_version" mapstructure:"service_version"`
	Environment    string        `yaml:"environment" mapstructure:"environment"`
	Endpoint       string        `yaml:"endpoint" mapstructure:"endpoint"` // OTLP HTTP host:port
	Insecure       bool          `yaml:"insecure" mapstructure:"insecure"`
	SampleRate     float64       `yaml:"sample_rate" mapstructure:"sample_rate"`
	MetricInterval time.Duration `yaml:"metric_interval" mapstructure:"metric_interval"`
}

// ApplyDefaults sets default values for unset fields. A zero SampleRate
// means "unset"; disable export with Enabled=false instead.
func (c *Config) ApplyDefaults() {
	if c.ServiceName == "" {
		c.ServiceName = "promptkit"
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
	if c.SampleRate == 0 {
		c.SampleRate = 1.0
	}
	if c.MetricInterval == 0 {
		c.MetricInterval = 15 * time.Second
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.SampleRate < 0 || c.SampleRate > 1 {
		return fmt.Errorf("sample_rate must be between 0 and 1 (got: %v)", c.SampleRate)
	}
	if c.Enabled && c.Endpoint == "" {
		return fmt.Errorf("endpoint is required when observability is enabled")
	}
	if c.MetricInterval < 0 {
		return fmt.Errorf("metric_interval must be non-negative (got: %v)", c.MetricInterval)
	}
	return nil
}

// TracerConfig derives the tracer settings.
func (c *Config) TracerConfig() *TracerConfig {
	return &TracerConfig{
		ServiceName:    c.ServiceName,
		ServiceVersion: c.ServiceVersion,
		Environment:    c.Environment,
		Endpoint:       c.Endpoint,
		Insecure:       c.Insecure,
		SampleRate:     c.SampleRate,
	}
}

// MeterConfig derives the meter settings.
func (c *Config) MeterConfig() *MeterConfig {
	return &MeterConfig{
		ServiceName:    c.ServiceName,
		ServiceVersion: c.ServiceVersion,
		Environment:    c.Environment,
		Endpoint:       c.Endpoint,
		Insecure:       c.Insecure,
		Interval:       c.MetricInterval,
	}
}
