package platform

import (
	"context"
	"fmt"
	"time"
)

// AuditRun represents one site audit run.
type AuditRun struct {
	ID          string       `json:"id"`
	OrgID       string       `json:"org_id"`
	URL         string       `json:"url"`
	Status      string       `json:"status"`
	Score       int          `json:"score"`
	Findings    []AuditIssue `json:"findings,omitempty"`
	StartedAt   time.Time    `json:"started_at"`
	CompletedAt *time.Time   `json:"completed_at,omitempty"`
}

// AuditIssue is a single finding from a site audit.
type AuditIssue struct {
	Severity string `json:"severity"`
	Category string `json:"category"`
	Message  string `json:"message"`
	Page     string `json:"page,omitempty"`
}

// StartAuditRequest represents a request to start a site audit.
type StartAuditRequest struct {
	OrgID string `json:"org_id"`
	URL   string `json:"url"`
}

// ListAuditRuns retrieves past audit runs for an organization.
func (c *Client) ListAuditRuns(ctx context.Context, orgID string) ([]AuditRun, error) {
	var runs []AuditRun
	if err := c.get(ctx, "/api/v1/audit/runs"+orgQuery(orgID), &runs); err != nil {
		return nil, err
	}
	return runs, nil
}

// StartAudit starts a new site audit.
func (c *Client) StartAudit(ctx context.Context, orgID, url string) (*AuditRun, error) {
	req := StartAuditRequest{
		OrgID: orgID,
		URL:   url,
	}

	var run AuditRun
	if err := c.post(ctx, "/api/v1/audit/runs", req, &run); err != nil {
		return nil, err
	}
	return &run, nil
}

// GetAuditRun retrieves an audit run with its findings.
func (c *Client) GetAuditRun(ctx context.Context, runID string) (*AuditRun, error) {
	path := fmt.Sprintf("/api/v1/audit/runs/%s", runID)

	var run AuditRun
	if err := c.get(ctx, path, &run); err != nil {
		return nil, err
	}
	return &run, nil
}
