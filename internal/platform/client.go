// Package platform implements the typed HTTP client for the NeuroCron
// platform API. All endpoints live under /api/v1 and exchange JSON.
package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

// DefaultBaseURL is used when no API URL is configured.
const DefaultBaseURL = "https://api.neurocron.com"

// Client is the NeuroCron platform API client.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Token      string
}

// NewClient creates a new platform API client.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetToken sets the bearer token attached to subsequent requests.
func (c *Client) SetToken(token string) {
	c.Token = token
}

// APIError is a non-2xx response from the platform. Detail carries the
// server-provided message verbatim when the body had the expected
// {"detail": "..."} shape, otherwise a generic fallback.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	return e.Detail
}

// StatusOf returns the HTTP status carried by err, or 0 when err is not
// an APIError.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// doRequest performs a single HTTP request with authentication. No
// retries: every call is one attempt, cancelled by ctx.
func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to perform request: %w", err)
	}

	return resp, nil
}

// errorBody is the platform's error response shape.
type errorBody struct {
	Detail string `json:"detail"`
}

// parseResponse parses the response body into the target struct. Non-2xx
// responses become an *APIError carrying the server detail message.
func parseResponse(resp *http.Response, target interface{}) error {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)

		var errResp errorBody
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Detail != "" {
			return &APIError{Status: resp.StatusCode, Detail: errResp.Detail}
		}

		// Fallback when the body is not the expected shape.
		if len(body) > 0 {
			return &APIError{
				Status: resp.StatusCode,
				Detail: fmt.Sprintf("request failed with status %d: %s", resp.StatusCode, string(body)),
			}
		}
		return &APIError{
			Status: resp.StatusCode,
			Detail: fmt.Sprintf("request failed with status %d", resp.StatusCode),
		}
	}

	if target != nil {
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// get issues a GET and decodes the response into target.
func (c *Client) get(ctx context.Context, path string, target interface{}) error {
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return parseResponse(resp, target)
}

// post issues a POST with a JSON body and decodes the response into target.
func (c *Client) post(ctx context.Context, path string, body, target interface{}) error {
	resp, err := c.doRequest(ctx, http.MethodPost, path, body)
	if err != nil {
		return err
	}
	return parseResponse(resp, target)
}

// orgQuery builds the org_id query string appended to org-scoped reads.
func orgQuery(orgID string) string {
	q := url.Values{}
	q.Set("org_id", orgID)
	return "?" + q.Encode()
}
