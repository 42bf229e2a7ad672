package exitcode

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/neurocron/neurocron/internal/platform"
)

func TestExitCodes(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		expected int
	}{
		{"Success", Success, 0},
		{"GeneralError", GeneralError, 1},
		{"UsageError", UsageError, 2},
		{"ConfigError", ConfigError, 3},
		{"ValidationError", ValidationError, 4},
		{"AuthError", AuthError, 5},
		{"NetworkError", NetworkError, 6},
		{"NotFound", NotFound, 7},
		{"Timeout", Timeout, 8},
		{"Interrupted", Interrupted, 130},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.code != tt.expected {
				t.Errorf("Exit code %s = %d, want %d", tt.name, tt.code, tt.expected)
			}
		})
	}
}

func TestDetermineExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "nil error returns success",
			err:      nil,
			expected: Success,
		},
		{
			name:     "API 401 maps to auth error",
			err:      &platform.APIError{Status: http.StatusUnauthorized, Detail: "Invalid token"},
			expected: AuthError,
		},
		{
			name:     "API 403 maps to auth error",
			err:      &platform.APIError{Status: http.StatusForbidden, Detail: "Forbidden"},
			expected: AuthError,
		},
		{
			name:     "API 404 maps to not found",
			err:      &platform.APIError{Status: http.StatusNotFound, Detail: "Campaign not found"},
			expected: NotFound,
		},
		{
			name:     "API 504 maps to timeout",
			err:      &platform.APIError{Status: http.StatusGatewayTimeout, Detail: "upstream timed out"},
			expected: Timeout,
		},
		{
			name:     "API 500 falls through to general error",
			err:      &platform.APIError{Status: http.StatusInternalServerError, Detail: "boom"},
			expected: GeneralError,
		},
		{
			name:     "wrapped API error still maps by status",
			err:      fmt.Errorf("fetching dashboard: %w", &platform.APIError{Status: http.StatusUnauthorized, Detail: "expired"}),
			expected: AuthError,
		},
		{
			name:     "context deadline maps to timeout",
			err:      context.DeadlineExceeded,
			expected: Timeout,
		},
		{
			name:     "context cancellation maps to interrupted",
			err:      context.Canceled,
			expected: Interrupted,
		},
		{
			name:     "not logged in",
			err:      errors.New("not logged in"),
			expected: AuthError,
		},
		{
			name:     "invalid credentials",
			err:      errors.New("invalid email or password"),
			expected: AuthError,
		},
		{
			name:     "config error",
			err:      errors.New("invalid configuration: unknown log level"),
			expected: ConfigError,
		},
		{
			name:     "not found error",
			err:      errors.New("notification not found: n-1"),
			expected: NotFound,
		},
		{
			name:     "network error",
			err:      errors.New("network error: connection refused"),
			expected: NetworkError,
		},
		{
			name:     "transport failure",
			err:      errors.New("failed to perform request: dial tcp: no route to host"),
			expected: NetworkError,
		},
		{
			name:     "timeout text",
			err:      errors.New("request timeout after 30s"),
			expected: Timeout,
		},
		{
			name:     "usage error",
			err:      errors.New("unknown command \"launch\""),
			expected: UsageError,
		},
		{
			name:     "generic error",
			err:      errors.New("something odd happened"),
			expected: GeneralError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetermineExitCode(tt.err)
			if got != tt.expected {
				t.Errorf("DetermineExitCode(%v) = %d, want %d", tt.err, got, tt.expected)
			}
		})
	}
}

func TestGetExitCodeDescription(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{Success, "Success"},
		{GeneralError, "General error"},
		{AuthError, "Authentication error"},
		{NetworkError, "Network error"},
		{NotFound, "Resource not found"},
		{999, "Unknown error"},
	}

	for _, tt := range tests {
		if got := GetExitCodeDescription(tt.code); got != tt.want {
			t.Errorf("GetExitCodeDescription(%d) = %q, want %q", tt.code, got, tt.want)
		}
	}
}
