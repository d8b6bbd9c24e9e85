package security

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// writeCert writes a self-signed certificate and its key to dir.
func writeCert(t *testing.T, dir string) (certFile, keyFile string) {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	tmpl := &x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{CommonName: "promptkit test"},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(time.Hour),
		KeyUsage:              x509.KeyUsageCertSign | x509.KeyUsageDigitalSignature,
		BasicConstraintsValid: true,
		IsCA:                  true,
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	if err != nil {
		t.Fatalf("create cert: %v", err)
	}
	keyDER, err := x509.MarshalECPrivateKey(key)
	if err != nil {
		t.Fatalf("marshal key: %v", err)
	}
	certFile = filepath.Join(dir, "cert.pem")
	keyFile = filepath.Join(dir, "key.pem")
	writePEM(t, certFile, "CERTIFICATE", der)
	writePEM(t, keyFile, "EC PRIVATE KEY", keyDER)
	return certFile, keyFile
}

func writePEM(t *testing.T, path, blockType string, der []byte) {
	t.Helper()
	data := pem.EncodeToMemory(&pem.Block{Type: blockType, Bytes: der})
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestBuildDisabled(t *testing.T) {
	for name, cfg := range map[string]*TLSConfig{"nil": nil, "zero": {}} {
		t.Run(name, func(t *testing.T) {
			got, err := cfg.Build()
			if err != nil || got != nil {
				t.Errorf("Build() = %v, %v; want nil, nil", got, err)
			}
		})
	}
}

func TestBuildSettings(t *testing.T) {
	cfg := &TLSConfig{SkipVerify: true, ServerName: "ollama.internal", MinVersion: "1.3"}
	got, err := cfg.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !got.InsecureSkipVerify || got.ServerName != "ollama.internal" || got.MinVersion != tls.VersionTLS13 {
		t.Errorf("unexpected config %+v", got)
	}

	got, _ = (&TLSConfig{ServerName: "x"}).Build()
	if got.MinVersion != tls.VersionTLS12 {
		t.Errorf("default MinVersion = %x", got.MinVersion)
	}
}

func TestBuildFiles(t *testing.T) {
	dir := t.TempDir()
	certFile, keyFile := writeCert(t, dir)

	got, err := (&TLSConfig{CAFile: certFile, CertFile: certFile, KeyFile: keyFile}).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got.RootCAs == nil {
		t.Error("RootCAs not set")
	}
	if len(got.Certificates) != 1 {
		t.Errorf("certificates = %d", len(got.Certificates))
	}
}

func TestBuildErrors(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.pem")
	if err := os.WriteFile(garbage, []byte("-----BEGIN CERTIFICATE-----\nnope\n-----END CERTIFICATE-----\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		cfg  TLSConfig
	}{
		{"missing ca file", TLSConfig{CAFile: filepath.Join(dir, "absent.pem")}},
		{"invalid ca content", TLSConfig{CAFile: garbage}},
		{"missing key pair", TLSConfig{CertFile: filepath.Join(dir, "c.pem"), KeyFile: filepath.Join(dir, "k.pem")}},
		{"cert without key", TLSConfig{CertFile: garbage}},
		{"unknown version", TLSConfig{MinVersion: "1.0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.cfg.Build(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestValidate(t *testing.T) {
	var nilCfg *TLSConfig
	if err := nilCfg.Validate(); err != nil {
		t.Errorf("nil config: %v", err)
	}
	if err := (&TLSConfig{KeyFile: "k.pem"}).Validate(); err == nil {
		t.Error("expected error for key without cert")
	}
	if err := (&TLSConfig{CertFile: "c.pem", KeyFile: "k.pem", MinVersion: "1.2"}).Validate(); err != nil {
		t.Errorf("valid config: %v", err)
	}
}
