package health

import (
	"context"

	"github.com/neurocron/neurocron/internal/platform"
)

// StreamChecker verifies the notification stream endpoint accepts
// connections.
type StreamChecker struct {
	client *platform.Client
	orgID  string
}

// NewStreamChecker creates a new notification stream health checker.
// orgID may be empty when no organization is selected; the check is
// then reported as degraded rather than attempted.
func NewStreamChecker(client *platform.Client, orgID string) *StreamChecker {
	return &StreamChecker{client: client, orgID: orgID}
}

// Name returns the name of this health check.
func (c *StreamChecker) Name() string {
	return "notification-stream"
}

// Check opens the SSE endpoint and closes it immediately.
// Returns:
//   - Healthy if the stream accepts the connection
//   - Degraded if no organization is selected (check skipped)
//   - Unhealthy if the endpoint refuses or the transport fails
func (c *StreamChecker) Check(ctx context.Context) *Result {
	if c.orgID == "" {
		return Degraded("no organization selected, stream check skipped").
			WithDetail("suggestion", "Run 'neurocron org use <id>'")
	}

	resp, err := c.client.OpenNotificationStream(ctx, c.orgID)
	if err != nil {
		return Unhealthy("notification stream unreachable").
			WithDetail("org_id", c.orgID).
			WithDetail("error", err.Error()).
			WithDetail("suggestion", "Run 'neurocron auth status' to verify the session")
	}
	resp.Body.Close()

	return Healthy("notification stream reachable").
		WithDetail("org_id", c.orgID)
}
