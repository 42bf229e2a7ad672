package platform

import "context"

// HealthStatus is the platform health endpoint response.
type HealthStatus struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// Health probes platform API reachability. Callers should pass a short
// context deadline; the endpoint is unauthenticated.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var status HealthStatus
	if err := c.get(ctx, "/api/v1/health", &status); err != nil {
		return nil, err
	}
	return &status, nil
}
