package auth

import (
	"errors"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// SigningMethod names a supported HMAC algorithm.
type SigningMethod string

const (
	HS256 SigningMethod = "HS256"
	HS384 SigningMethod = "HS384"
	HS512 SigningMethod = "HS512"
)

// DefaultTokenTTL is the lifetime of issued tokens.
const DefaultTokenTTL = time.Hour

// Config configures the token service.
type Config struct {
	// Secret is the HMAC key.
	Secret string `yaml:"secret" mapstructure:"secret"`
	// Method is the signing algorithm (default HS256).
	Method SigningMethod `yaml:"method" mapstructure:"method"`
	// Issuer is the "iss" claim; checked on parse when set.
	Issuer string `yaml:"issuer" mapstructure:"issuer"`
	// TTL is the lifetime of issued tokens.
	TTL time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// ApplyDefaults fills zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.Method == "" {
		c.Method = HS256
	}
	if c.Issuer == "" {
		c.Issuer = "promptkit"
	}
	if c.TTL == 0 {
		c.TTL = DefaultTokenTTL
	}
}

// Validate checks the secret and method.
func (c *Config) Validate() error {
	if c.Secret == "" {
		return errors.New("auth: secret is required")
	}
	switch c.Method {
	case HS256, HS384, HS512:
	default:
		return errors.New("auth: unsupported signing method: " + string(c.Method))
	}
	if c.TTL < 0 {
		return errors.New("auth: ttl must be non-negative")
	}
	return nil
}

func (c *Config) signingMethod() gojwt.SigningMethod {
	switch c.Method {
	case HS384:
		return gojwt.SigningMethodHS384
	case HS512:
		return gojwt.SigningMethodHS512
	default:
		return gojwt.SigningMethodHS256
	}
}
