package config

import (
	"fmt"
	"slices"

	"github.com/kbukum/promptkit/llm/moonshot"
	"github.com/kbukum/promptkit/llm/ollama"
	"github.com/kbukum/promptkit/logger"
	"github.com/kbukum/promptkit/observability"
	"github.com/kbukum/promptkit/server"
)

// ServiceConfig contains the fields every promptkit process needs.
type ServiceConfig struct {
	Name        string        `yaml:"name" mapstructure:"name"`
	Environment string        `yaml:"environment" mapstructure:"environment"`
	Debug       bool          `yaml:"debug" mapstructure:"debug"`
	Logging     logger.Config `yaml:"logging" mapstructure:"logging"`
}

var validEnvironments = []string{"development", "staging", "production"}

// ApplyDefaults applies default values to the base configuration.
func (c *ServiceConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "promptkit"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
	c.Logging.ApplyDefaults()
}

// Validate validates the base configuration fields.
func (c *ServiceConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("config.name is required")
	}
	if !slices.Contains(validEnvironments, c.Environment) {
		return fmt.Errorf("config.environment must be one of [development, staging, production] (got: %s)", c.Environment)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	return nil
}

// Config is the full promptkit configuration.
type Config struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Moonshot      moonshot.Config      `yaml:"moonshot" mapstructure:"moonshot"`
	Ollama        ollama.Config        `yaml:"ollama" mapstructure:"ollama"`
	Server        server.Config        `yaml:"server" mapstructure:"server"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

// ApplyDefaults fills every section's defaults.
func (c *Config) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	c.Moonshot.ApplyDefaults()
	c.Ollama.ApplyDefaults()
	c.Server.ApplyDefaults()
	if c.Observability.ServiceName == "" {
		c.Observability.ServiceName = c.Name
	}
	if c.Observability.Environment == "" {
		c.Observability.Environment = c.Environment
	}
	c.Observability.ApplyDefaults()
}

// Validate validates every section. A missing Moonshot API key is not an
// error here; the chat nodes report it when they run.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Moonshot.Validate(); err != nil {
		return fmt.Errorf("config.moonshot: %w", err)
	}
	if err := c.Ollama.Validate(); err != nil {
		return fmt.Errorf("config.ollama: %w", err)
	}
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("config.server: %w", err)
	}
	if err := c.Observability.Validate(); err != nil {
		return fmt.Errorf("config.observability: %w", err)
	}
	return nil
}
