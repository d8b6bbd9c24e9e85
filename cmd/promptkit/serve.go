package main

import (
	"context"
	"fmt"

	"github.com/kbukum/promptkit/bootstrap"
)

// ServeCmd runs the HTTP server until SIGINT or SIGTERM.
type ServeCmd struct {
	Host string `help:"Listen host (overrides server.host)"`
	Port int    `help:"Listen port (overrides server.port)"`
}

// Run executes the serve command.
func (s *ServeCmd) Run(cli *CLI) error {
	cfg, err := cli.LoadConfig(false)
	if err != nil {
		return err
	}
	if s.Host != "" {
		cfg.Server.Host = s.Host
	}
	if s.Port != 0 {
		cfg.Server.Port = s.Port
	}

	ctx := context.Background()
	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		return err
	}
	if _, err := app.EnableServer(); err != nil {
		return fmt.Errorf("setup server: %w", err)
	}
	return app.Run(ctx)
}
