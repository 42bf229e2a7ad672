package health

import (
	"context"

	"github.com/neurocron/neurocron/internal/platform"
)

// PlatformChecker verifies the platform API answers its health
// endpoint.
type PlatformChecker struct {
	client *platform.Client
}

// NewPlatformChecker creates a new platform API health checker.
func NewPlatformChecker(client *platform.Client) *PlatformChecker {
	return &PlatformChecker{client: client}
}

// Name returns the name of this health check.
func (c *PlatformChecker) Name() string {
	return "platform-api"
}

// Check calls GET /api/v1/health.
// Returns:
//   - Healthy if the endpoint answers 2xx
//   - Unhealthy if the endpoint errors or the transport fails
func (c *PlatformChecker) Check(ctx context.Context) *Result {
	status, err := c.client.Health(ctx)
	if err != nil {
		if code := platform.StatusOf(err); code != 0 {
			return Unhealthy("platform API reports failure").
				WithDetail("base_url", c.client.BaseURL).
				WithDetail("status", code).
				WithDetail("error", err.Error()).
				WithDetail("suggestion", "Check https://status.neurocron.com for incidents")
		}
		return Unhealthy("platform API unreachable").
			WithDetail("base_url", c.client.BaseURL).
			WithDetail("error", err.Error()).
			WithDetail("suggestion", "Verify the API URL with 'neurocron config get api_url'")
	}

	result := Healthy("platform API reachable").
		WithDetail("base_url", c.client.BaseURL).
		WithDetail("status", status.Status)
	if status.Version != "" {
		result = result.WithDetail("version", status.Version)
	}
	return result
}
