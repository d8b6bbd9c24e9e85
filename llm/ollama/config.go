package ollama

import (
	"fmt"
	"strings"
	"time"

	"github.com/kbukum/promptkit/security"
)

const (
	// DefaultBaseURL is the address of a local Ollama daemon.
	DefaultBaseURL = "http://localhost:11434"

	defaultTimeout = 120 * time.Second
)

// Config holds configuration for the Ollama provider.
type Config struct {
	BaseURL string        `yaml:"base_url" mapstructure:"base_url"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
	// MaxConcurrent caps generations in flight; 0 leaves them unbounded.
	MaxConcurrent int `yaml:"max_concurrent" mapstructure:"max_concurrent"`
	// QueueTimeout is how long a call waits for a free slot.
	QueueTimeout time.Duration `yaml:"queue_timeout" mapstructure:"queue_timeout"`
	// TLS is applied to the transport when set.
	TLS *security.TLSConfig `yaml:"tls" mapstructure:"tls"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("base_url must be an http(s) URL (got: %q)", c.BaseURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if err := c.TLS.Validate(); err != nil {
		return err
	}
	if c.MaxConcurrent < 0 {
		return fmt.Errorf("max_concurrent must be non-negative (got: %d)", c.MaxConcurrent)
	}
	if c.QueueTimeout < 0 {
		return fmt.Errorf("queue_timeout must be non-negative")
	}
	return nil
}
