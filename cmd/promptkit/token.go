package main

import (
	"fmt"
	"time"

	"github.com/kbukum/promptkit/auth"
)

// TokenCmd issues a bearer token signed with server.jwt_secret.
type TokenCmd struct {
	Subject string        `arg:"" optional:"" help:"Token subject" default:"promptkit"`
	TTL     time.Duration `help:"Token lifetime" default:"1h"`
}

// Run executes the token command.
func (t *TokenCmd) Run(cli *CLI) error {
	cfg, err := cli.LoadConfig(true)
	if err != nil {
		return err
	}
	cfg.ApplyDefaults()
	if cfg.Server.JWTSecret == "" {
		return fmt.Errorf("server.jwt_secret is not set; set SERVER_JWT_SECRET or add it to the config file")
	}

	svc, err := auth.NewService(auth.Config{
		Secret: cfg.Server.JWTSecret,
		Issuer: cfg.Name,
		TTL:    t.TTL,
	})
	if err != nil {
		return err
	}
	token, err := svc.Issue(t.Subject)
	if err != nil {
		return fmt.Errorf("issue token: %w", err)
	}
	fmt.Fprintln(cli.stdout(), token)
	return nil
}
