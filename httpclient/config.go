package httpclient

import (
	"fmt"
	"time"

	"github.com/kbukum/promptkit/security"
	"github.com/kbukum/promptkit/version"
)

const (
	defaultTimeout = 30 * time.Second
)

// Config configures the HTTP client.
type Config struct {
	// BaseURL is the base URL prepended to all request paths.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Timeout is the default request timeout. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Auth configures default authentication applied to all requests.
	// Individual requests can override this.
	Auth *AuthConfig `yaml:"-" mapstructure:"-"`

	// Headers are default headers applied to all requests.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// TLS configures the transport for https backends with a private CA.
	TLS *security.TLSConfig `yaml:"tls" mapstructure:"tls"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if _, ok := c.Headers["User-Agent"]; !ok {
		headers := make(map[string]string, len(c.Headers)+1)
		for k, v := range c.Headers {
			headers[k] = v
		}
		headers["User-Agent"] = version.UserAgent()
		c.Headers = headers
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("httpclient: timeout must be positive")
	}
	return c.TLS.Validate()
}
