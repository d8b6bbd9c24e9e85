package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/kbukum/promptkit/bootstrap"
	"github.com/kbukum/promptkit/config"
	"github.com/kbukum/promptkit/version"
)

// CLI is the root command.
type CLI struct {
	Config  string `short:"c" help:"Path to config file" type:"path" env:"PROMPTKIT_CONFIG"`
	EnvFile string `help:"Path to .env file" type:"path" env:"PROMPTKIT_ENV_FILE"`
	Verbose bool   `short:"v" help:"Debug logging"`

	Serve   ServeCmd   `cmd:"" help:"Serve the nodes over HTTP"`
	Chat    ChatCmd    `cmd:"" help:"Chat with a Moonshot model"`
	Extract ExtractCmd `cmd:"" help:"Generate image prompts for a theme with Ollama"`
	Models  ModelsCmd  `cmd:"" help:"List the models each backend offers"`
	Token   TokenCmd   `cmd:"" help:"Issue a bearer token for the HTTP API"`
	Version VersionCmd `cmd:"" help:"Print version information"`

	out io.Writer
}

// LoadConfig reads the config file, .env and environment. One-shot
// commands log warnings only unless --verbose is set.
func (c *CLI) LoadConfig(quiet bool) (*config.Config, error) {
	var opts []config.LoaderOption
	if c.Config != "" {
		opts = append(opts, config.WithConfigFile(c.Config))
	}
	if c.EnvFile != "" {
		opts = append(opts, config.WithEnvFile(c.EnvFile))
	}
	cfg, err := config.Load(version.Name, opts...)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	switch {
	case c.Verbose:
		cfg.Logging.Level = "debug"
	case quiet && cfg.Logging.Level == "":
		cfg.Logging.Level = "warn"
	}
	return cfg, nil
}

// NewApp loads the config and assembles the application.
func (c *CLI) NewApp(ctx context.Context, quiet bool, opts ...bootstrap.Option) (*bootstrap.App, error) {
	cfg, err := c.LoadConfig(quiet)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(ctx, cfg, opts...)
}

func (c *CLI) stdout() io.Writer {
	if c.out != nil {
		return c.out
	}
	return os.Stdout
}

func (c *CLI) printJSON(v any) error {
	enc := json.NewEncoder(c.stdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
