package health

import (
	"context"
	"net/url"

	"github.com/neurocron/neurocron/internal/config"
)

// ConfigChecker verifies the global configuration loads and carries a
// usable API URL.
type ConfigChecker struct{}

// NewConfigChecker creates a new configuration health checker.
func NewConfigChecker() *ConfigChecker {
	return &ConfigChecker{}
}

// Name returns the name of this health check.
func (c *ConfigChecker) Name() string {
	return "config"
}

// Check loads the configuration and validates the API URL.
// Returns:
//   - Healthy if the configuration loads and the API URL parses
//   - Unhealthy if the file is malformed or the API URL is invalid
func (c *ConfigChecker) Check(ctx context.Context) *Result {
	path, err := config.FilePath()
	if err != nil {
		return Unhealthy("cannot resolve config directory").
			WithDetail("error", err.Error()).
			WithDetail("suggestion", "Check HOME and NEUROCRON_CONFIG_DIR")
	}

	cfg, err := config.Load()
	if err != nil {
		return Unhealthy("configuration failed to load").
			WithDetail("error", err.Error()).
			WithDetail("path", path).
			WithDetail("suggestion", "Run 'neurocron config view' to inspect the file")
	}

	parsed, err := url.Parse(cfg.APIURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return Unhealthy("api_url is not a valid URL").
			WithDetail("api_url", cfg.APIURL).
			WithDetail("suggestion", "Run 'neurocron config set api_url <url>'")
	}

	return Healthy("configuration is valid").
		WithDetail("path", path).
		WithDetail("api_url", cfg.APIURL).
		WithDetail("default_org", cfg.DefaultOrg).
		WithDetail("telemetry", cfg.Telemetry)
}
