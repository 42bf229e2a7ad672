package platform

import "context"

// ChatRequest represents a message sent to the marketing copilot.
type ChatRequest struct {
	Content string `json:"content"`
	OrgID   string `json:"org_id"`
}

// ChatAction is an executable action the copilot proposes alongside its
// reply, such as creating a campaign it just drafted.
type ChatAction struct {
	Type  string            `json:"type"`
	Label string            `json:"label"`
	Args  map[string]string `json:"args,omitempty"`
}

// ChatResponse represents the copilot's reply.
type ChatResponse struct {
	Message     string       `json:"message"`
	Actions     []ChatAction `json:"actions,omitempty"`
	Suggestions []string     `json:"suggestions,omitempty"`
}

// SendChat sends a message to the copilot and returns its reply.
func (c *Client) SendChat(ctx context.Context, content, orgID string) (*ChatResponse, error) {
	req := ChatRequest{
		Content: content,
		OrgID:   orgID,
	}

	var chatResp ChatResponse
	if err := c.post(ctx, "/api/v1/copilot/chat", req, &chatResp); err != nil {
		return nil, err
	}
	return &chatResp, nil
}
