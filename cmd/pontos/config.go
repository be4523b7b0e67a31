package main

import (
	"fmt"

	"github.com/mbrinkhoff/pontos/config"
	"github.com/mbrinkhoff/pontos/github"
	"github.com/mbrinkhoff/pontos/observability"
)

// Config is the pontos command configuration. It is read from config.yml,
// .env files and the environment (GITHUB_TOKEN sets github.token).
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
	GitHub               github.Config        `yaml:"github" mapstructure:"github"`
	Telemetry            observability.Config `yaml:"telemetry" mapstructure:"telemetry"`
}

// ApplyDefaults fills unset fields of every section.
func (c *Config) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	c.GitHub.ApplyDefaults()
	c.Telemetry.ApplyDefaults()
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.GitHub.Validate(); err != nil {
		return fmt.Errorf("config.github: %w", err)
	}
	if err := c.Telemetry.Validate(); err != nil {
		return err
	}
	return nil
}

func loadConfig(configFile, envFile string, debug bool) (*Config, error) {
	var opts []config.LoaderOption
	if configFile != "" {
		opts = append(opts, config.WithConfigFile(configFile))
	}
	if envFile != "" {
		opts = append(opts, config.WithEnvFile(envFile))
	}

	cfg := &Config{}
	if err := config.LoadConfig("pontos", cfg, opts...); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if debug {
		cfg.Debug = true
		cfg.Logging.Level = "debug"
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
