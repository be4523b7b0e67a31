package github

import (
	"time"

	"github.com/mbrinkhoff/pontos/validation"
)

const (
	// DefaultAPIURL is the public GitHub REST endpoint.
	DefaultAPIURL = "https://api.github.com"
	// APIVersion is sent as X-GitHub-Api-Version on every request.
	APIVersion = "2022-11-28"

	defaultTimeout = 30 * time.Second
)

// Config holds the GitHub client settings.
type Config struct {
	// APIURL is the REST API base URL, e.g. https://ghe.example.com/api/v3.
	APIURL string `yaml:"api_url" mapstructure:"api_url" json:"api_url" validate:"required,url"`
	// Token is the bearer credential for regular API calls.
	Token string `yaml:"token" mapstructure:"token" json:"token"`
	// Timeout applies to every non-streaming call.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout" json:"timeout" validate:"gt=0"`
	// AppID and AppPrivateKeyFile enable GitHub App (JWT) authentication
	// for the Apps service.
	AppID             string `yaml:"app_id" mapstructure:"app_id" json:"app_id"`
	AppPrivateKeyFile string `yaml:"app_private_key_file" mapstructure:"app_private_key_file" json:"app_private_key_file"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.APIURL == "" {
		c.APIURL = DefaultAPIURL
	}
	if c.Timeout == 0 {
		c.Timeout = defaultTimeout
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	v := validation.New()
	v.Custom((c.AppID == "") == (c.AppPrivateKeyFile == ""), "app_private_key_file",
		"app_id and app_private_key_file must be set together")
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}
