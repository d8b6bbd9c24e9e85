package security

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
)

var tlsVersions = map[string]uint16{
	"":    tls.VersionTLS12,
	"1.2": tls.VersionTLS12,
	"1.3": tls.VersionTLS13,
}

// TLSConfig holds client TLS settings for a backend connection.
type TLSConfig struct {
	// SkipVerify disables server certificate verification.
	SkipVerify bool `yaml:"skip_verify" mapstructure:"skip_verify"`
	// CAFile is a PEM bundle that replaces the system roots.
	CAFile string `yaml:"ca_file" mapstructure:"ca_file"`
	// CertFile and KeyFile present a client certificate.
	CertFile string `yaml:"cert_file" mapstructure:"cert_file"`
	KeyFile  string `yaml:"key_file" mapstructure:"key_file"`
	// ServerName overrides the name checked against the certificate.
	ServerName string `yaml:"server_name" mapstructure:"server_name"`
	// MinVersion is "1.2" (default) or "1.3".
	MinVersion string `yaml:"min_version" mapstructure:"min_version"`
}

// Build returns the *tls.Config, or nil when nothing is configured so the
// transport keeps the system defaults.
func (c *TLSConfig) Build() (*tls.Config, error) {
	if !c.IsEnabled() {
		return nil, nil
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	cfg := &tls.Config{
		InsecureSkipVerify: c.SkipVerify,
		ServerName:         c.ServerName,
		MinVersion:         tlsVersions[c.MinVersion],
	}
	if c.CAFile != "" {
		pem, err := os.ReadFile(c.CAFile)
		if err != nil {
			return nil, fmt.Errorf("tls: read ca_file: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("tls: ca_file %s holds no PEM certificates", c.CAFile)
		}
		cfg.RootCAs = pool
	}
	if c.CertFile != "" {
		cert, err := tls.LoadX509KeyPair(c.CertFile, c.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("tls: load client certificate: %w", err)
		}
		cfg.Certificates = []tls.Certificate{cert}
	}
	return cfg, nil
}

// Validate checks that cert and key come together and the version is known.
func (c *TLSConfig) Validate() error {
	if c == nil {
		return nil
	}
	if (c.CertFile != "") != (c.KeyFile != "") {
		return fmt.Errorf("tls: cert_file and key_file must be set together")
	}
	if _, ok := tlsVersions[c.MinVersion]; !ok {
		return fmt.Errorf("tls: min_version must be 1.2 or 1.3 (got: %s)", c.MinVersion)
	}
	return nil
}

// IsEnabled reports whether any setting is present.
func (c *TLSConfig) IsEnabled() bool {
	if c == nil {
		return false
	}
	return c.SkipVerify || c.CAFile != "" || c.CertFile != "" || c.ServerName != "" || c.MinVersion != ""
}
