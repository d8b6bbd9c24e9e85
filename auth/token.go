package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// Claims are the token claims. Subject names the calling host.
type Claims struct {
	gojwt.RegisteredClaims
}

// TokenValidator validates a bearer token and returns its claims.
type TokenValidator interface {
	ValidateToken(token string) (*Claims, error)
}

// TokenValidatorFunc adapts a function to TokenValidator.
type TokenValidatorFunc func(token string) (*Claims, error)

// ValidateToken implements TokenValidator.
func (f TokenValidatorFunc) ValidateToken(token string) (*Claims, error) {
	return f(token)
}

// Service signs and verifies tokens.
type Service struct {
	cfg Config
	now func() time.Time
}

var _ TokenValidator = (*Service)(nil)

// NewService creates a token service.
func NewService(cfg Config) (*Service, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Service{cfg: cfg, now: time.Now}, nil
}

// Issue signs a token for subject valid for the configured TTL.
func (s *Service) Issue(subject string) (string, error) {
	now := s.now()
	claims := &Claims{RegisteredClaims: gojwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    s.cfg.Issuer,
		IssuedAt:  gojwt.NewNumericDate(now),
		ExpiresAt: gojwt.NewNumericDate(now.Add(s.cfg.TTL)),
	}}
	signed, err := gojwt.NewWithClaims(s.cfg.signingMethod(), claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies signature, expiry and issuer and returns the claims.
func (s *Service) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := gojwt.ParseWithClaims(tokenString, claims, s.keyFunc,
		gojwt.WithValidMethods([]string{s.cfg.signingMethod().Alg()}),
		gojwt.WithIssuer(s.cfg.Issuer),
		gojwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("auth: parse token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("auth: invalid token")
	}
	return claims, nil
}

// ValidateToken implements TokenValidator.
func (s *Service) ValidateToken(token string) (*Claims, error) {
	return s.Parse(token)
}

func (s *Service) keyFunc(token *gojwt.Token) (interface{}, error) {
	if token.Method.Alg() != s.cfg.signingMethod().Alg() {
		return nil, fmt.Errorf("auth: unexpected signing method: %s", token.Method.Alg())
	}
	return []byte(s.cfg.Secret), nil
}

type claimsKey struct{}

// WithClaims stores verified claims in ctx.
func WithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, c)
}

// ClaimsFromContext returns the claims stored by WithClaims.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(*Claims)
	return c, ok && c != nil
}
