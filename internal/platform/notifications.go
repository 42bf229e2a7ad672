package platform

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Notification types pushed by the platform.
const (
	NotificationInfo    = "info"
	NotificationSuccess = "success"
	NotificationWarning = "warning"
	NotificationError   = "error"
)

// Notification represents a platform notification.
type Notification struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Message     string    `json:"message,omitempty"`
	Read        bool      `json:"read"`
	ActionURL   string    `json:"action_url,omitempty"`
	ActionLabel string    `json:"action_label,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListNotifications retrieves the notifications for an organization,
// most recent first.
func (c *Client) ListNotifications(ctx context.Context, orgID string) ([]Notification, error) {
	var notifications []Notification
	if err := c.get(ctx, "/api/v1/notifications"+orgQuery(orgID), &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkNotificationRead marks a single notification as read.
func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	path := fmt.Sprintf("/api/v1/notifications/%s/read", id)
	return c.post(ctx, path, nil, nil)
}

// MarkAllNotificationsRead marks every notification for the organization
// as read.
func (c *Client) MarkAllNotificationsRead(ctx context.Context, orgID string) error {
	return c.post(ctx, "/api/v1/notifications/read-all"+orgQuery(orgID), nil, nil)
}

// DeleteNotification removes a notification. Mutations are POSTs on this
// API, deletes included.
func (c *Client) DeleteNotification(ctx context.Context, id string) error {
	path := fmt.Sprintf("/api/v1/notifications/%s/delete", id)
	return c.post(ctx, path, nil, nil)
}

// streamClient carries no global timeout: SSE responses stay open
// indefinitely and are bounded by the request context instead.
var streamClient = &http.Client{}

// OpenNotificationStream opens the live notification feed as a
// text/event-stream response. The caller owns the response body and
// must close it; cancelling ctx aborts the stream.
func (c *Client) OpenNotificationStream(ctx context.Context, orgID string) (*http.Response, error) {
	url := c.BaseURL + "/api/v1/notifications/stream" + orgQuery(orgID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := streamClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to perform request: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, parseResponse(resp, nil)
	}

	return resp, nil
}
