// Package config manages the neurocron configuration file and its
// environment overrides. Precedence is flags > environment > file >
// defaults; flags are applied by the command layer, everything else
// is resolved by Load.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultAPIURL is the production platform endpoint.
const DefaultAPIURL = "https://api.neurocron.com"

// Config is the persisted global configuration. Environment variables
// override file values when set.
type Config struct {
	APIURL     string `yaml:"api_url" env:"NEUROCRON_API_URL"`
	DefaultOrg string `yaml:"default_org" env:"NEUROCRON_ORG"`
	Telemetry  bool   `yaml:"telemetry" env:"NEUROCRON_TELEMETRY"`
	LogLevel   string `yaml:"log_level" env:"NEUROCRON_LOG_LEVEL"`
	LogFormat  string `yaml:"log_format" env:"NEUROCRON_LOG_FORMAT"`
}

// Default returns a configuration populated with defaults only.
func Default() *Config {
	return &Config{
		APIURL:    DefaultAPIURL,
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Load resolves the effective configuration: defaults, then the YAML
// file if present, then environment variables (a .env file in the
// working directory is honored when it exists).
func Load() (*Config, error) {
	cfg := Default()

	path, err := FilePath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	// .env is optional; absence is not an error.
	_ = godotenv.Load()

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the global config file.
func (c *Config) Save() error {
	path, err := FilePath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}

	return nil
}

// Get returns the value of a configuration key in dot notation.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "api_url":
		return c.APIURL, nil
	case "default_org":
		return c.DefaultOrg, nil
	case "telemetry":
		return strconv.FormatBool(c.Telemetry), nil
	case "log_level":
		return c.LogLevel, nil
	case "log_format":
		return c.LogFormat, nil
	default:
		return "", fmt.Errorf("unknown config key: %s", key)
	}
}

// Set updates a configuration key in dot notation. The caller is
// responsible for persisting via Save.
func (c *Config) Set(key, value string) error {
	switch key {
	case "api_url":
		c.APIURL = value
	case "default_org":
		c.DefaultOrg = value
	case "telemetry":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("telemetry must be true or false, got %q", value)
		}
		c.Telemetry = b
	case "log_level":
		switch value {
		case "debug", "info", "warn", "error":
			c.LogLevel = value
		default:
			return fmt.Errorf("invalid log level %q (expected debug, info, warn, or error)", value)
		}
	case "log_format":
		switch value {
		case "text", "json":
			c.LogFormat = value
		default:
			return fmt.Errorf("invalid log format %q (expected text or json)", value)
		}
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

// Keys lists the settable configuration keys.
func Keys() []string {
	return []string{"api_url", "default_org", "telemetry", "log_level", "log_format"}
}
