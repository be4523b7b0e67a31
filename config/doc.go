// Package config loads pontos configuration from YAML files, .env files and
// environment variables.
//
// It uses Viper for file and environment handling. Environment variables
// map onto nested keys by splitting on underscores, so GITHUB_TOKEN sets
// github.token and LOG_LEVEL style variables reach the logging section
// through the usual variants.
//
// # Usage
//
//	var cfg Config
//	err := config.LoadConfig("pontos", &cfg, config.WithConfigFile(path))
package config
