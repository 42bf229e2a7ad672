package platform

import (
	"context"
	"time"
)

// Persona represents a generated audience persona.
type Persona struct {
	ID          string    `json:"id"`
	OrgID       string    `json:"org_id"`
	Name        string    `json:"name"`
	Summary     string    `json:"summary"`
	Traits      []string  `json:"traits"`
	Channels    []string  `json:"channels"`
	SegmentSize int       `json:"segment_size"`
	CreatedAt   time.Time `json:"created_at"`
}

// GeneratePersonasRequest represents a persona generation request.
type GeneratePersonasRequest struct {
	OrgID       string `json:"org_id"`
	Description string `json:"description,omitempty"`
	Count       int    `json:"count,omitempty"`
}

// ListPersonas retrieves the existing personas for an organization.
func (c *Client) ListPersonas(ctx context.Context, orgID string) ([]Persona, error) {
	var personas []Persona
	if err := c.get(ctx, "/api/v1/audiences/personas"+orgQuery(orgID), &personas); err != nil {
		return nil, err
	}
	return personas, nil
}

// GeneratePersonas asks the platform to generate new personas from the
// organization's audience data.
func (c *Client) GeneratePersonas(ctx context.Context, req GeneratePersonasRequest) ([]Persona, error) {
	var personas []Persona
	if err := c.post(ctx, "/api/v1/audiences/personas/generate", req, &personas); err != nil {
		return nil, err
	}
	return personas, nil
}
