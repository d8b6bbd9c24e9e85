package moonshot

import (
	"fmt"
	"strings"
	"time"

	"github.com/kbukum/promptkit/security"
)

const (
	// DefaultBaseURL is the public Moonshot API endpoint.
	DefaultBaseURL = "https://api.moonshot.cn/v1"

	defaultTimeout = 120 * time.Second
)

// DefaultModels are the chat models the nodes offer.
var DefaultModels = []string{"moonshot-v1-8k", "moonshot-v1-32k", "moonshot-v1-128k"}

// Config holds configuration for the Moonshot provider.
type Config struct {
	// APIKey is the bearer credential. Empty is allowed at load time; calls
	// fail with a configuration error until it is set.
	APIKey string `yaml:"api_key" mapstructure:"api_key"`
	// BaseURL is the OpenAI-compatible API root.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	// Timeout bounds each request.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
	// Models lists the accepted model identifiers.
	Models []string `yaml:"models" mapstructure:"models"`
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
	if len(c.Models) == 0 {
		c.Models = append([]string(nil), DefaultModels...)
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
	return nil
}
