package errors

import (
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Authentication errors (AUTH-001 to AUTH-099)
	ErrCodeAuthInvalidCredentials ErrorCode = "AUTH-001"
	ErrCodeAuthNotLoggedIn        ErrorCode = "AUTH-002"
	ErrCodeAuthTokenRejected      ErrorCode = "AUTH-003"
	ErrCodeAuthRegisterFailed     ErrorCode = "AUTH-004"
	ErrCodeAuthRefreshFailed      ErrorCode = "AUTH-005"
	ErrCodeAuthSealedStore        ErrorCode = "AUTH-006"

	// Organization errors (ORG-001 to ORG-099)
	ErrCodeOrgNone         ErrorCode = "ORG-001"
	ErrCodeOrgLookupFailed ErrorCode = "ORG-002"
	ErrCodeOrgNotSelected  ErrorCode = "ORG-003"

	// API errors (API-001 to API-099)
	ErrCodeAPINetwork      ErrorCode = "API-001"
	ErrCodeAPIServer       ErrorCode = "API-002"
	ErrCodeAPIDecodeFailed ErrorCode = "API-003"

	// Notification errors (NOTIFY-001 to NOTIFY-099)
	ErrCodeNotifyConnectFailed ErrorCode = "NOTIFY-001"
	ErrCodeNotifyRejected      ErrorCode = "NOTIFY-002"
	ErrCodeNotifyNotFound      ErrorCode = "NOTIFY-003"

	// Config errors (CONFIG-001 to CONFIG-099)
	ErrCodeConfigNotFound    ErrorCode = "CONFIG-001"
	ErrCodeConfigInvalid     ErrorCode = "CONFIG-002"
	ErrCodeConfigWriteFailed ErrorCode = "CONFIG-003"

	// File I/O errors (IO-001 to IO-099)
	ErrCodeFileNotFound    ErrorCode = "IO-001"
	ErrCodeFileReadFailed  ErrorCode = "IO-002"
	ErrCodeFileWriteFailed ErrorCode = "IO-003"
	ErrCodeDirectoryFailed ErrorCode = "IO-004"
	ErrCodeFileUnmarshal   ErrorCode = "IO-005"
	ErrCodeFileMarshal     ErrorCode = "IO-006"
)

// NeuroCronError represents an enhanced error with code, suggestions, and documentation
type NeuroCronError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	DocsURL     string
	Cause       error
}

// Error implements the error interface
func (e *NeuroCronError) Error() string {
	var b strings.Builder

	// Error code and message
	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	// Add cause if present
	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	// Add suggestions
	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	// Add documentation link
	if e.DocsURL != "" {
		b.WriteString(fmt.Sprintf("\n\nDocumentation: %s", e.DocsURL))
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *NeuroCronError) Unwrap() error {
	return e.Cause
}

// New creates a new NeuroCronError
func New(code ErrorCode, message string) *NeuroCronError {
	return &NeuroCronError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new NeuroCronError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *NeuroCronError {
	return &NeuroCronError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *NeuroCronError) WithSuggestion(suggestion string) *NeuroCronError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *NeuroCronError) WithSuggestions(suggestions ...string) *NeuroCronError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// WithDocs adds a documentation URL to the error
func (e *NeuroCronError) WithDocs(url string) *NeuroCronError {
	e.DocsURL = url
	return e
}

// Common error constructors for frequently used errors

// NewInvalidCredentialsError creates an invalid login credentials error
func NewInvalidCredentialsError() *NeuroCronError {
	return New(ErrCodeAuthInvalidCredentials, "invalid email or password").
		WithSuggestion("Check your email address and password").
		WithSuggestion("Use 'neurocron auth register' if you don't have an account yet").
		WithDocs("https://github.com/neurocron/neurocron#authentication")
}

// NewNotLoggedInError creates a missing session error
func NewNotLoggedInError() *NeuroCronError {
	return New(ErrCodeAuthNotLoggedIn, "not logged in").
		WithSuggestion("Run 'neurocron auth login' to authenticate").
		WithDocs("https://github.com/neurocron/neurocron#authentication")
}

// NewTokenRejectedError creates a rejected token error
func NewTokenRejectedError(cause error) *NeuroCronError {
	return Wrap(ErrCodeAuthTokenRejected, "stored session token was rejected", cause).
		WithSuggestion("Run 'neurocron auth login' to re-authenticate").
		WithSuggestion("Run 'neurocron auth refresh' if you have a valid refresh token")
}

// NewRefreshFailedError creates a token refresh error
func NewRefreshFailedError(cause error) *NeuroCronError {
	return Wrap(ErrCodeAuthRefreshFailed, "token refresh failed", cause).
		WithSuggestion("Run 'neurocron auth login' to start a fresh session")
}

// NewSealedStoreError creates an error for unreadable sealed credentials
func NewSealedStoreError(cause error) *NeuroCronError {
	return Wrap(ErrCodeAuthSealedStore, "failed to unseal stored credentials", cause).
		WithSuggestion("Check the NEUROCRON_PASSPHRASE environment variable").
		WithSuggestion("Run 'neurocron auth login' to replace the stored credentials")
}

// NewOrgLookupError creates an organization lookup failure error.
// Distinct from the zero-organizations case: this means the request
// itself failed.
func NewOrgLookupError(cause error) *NeuroCronError {
	return Wrap(ErrCodeOrgLookupFailed, "organization lookup failed", cause).
		WithSuggestion("Run 'neurocron org list' to retry").
		WithSuggestion("Check your network connection and API URL")
}

// NewOrgNotSelectedError creates a missing organization selection error
func NewOrgNotSelectedError() *NeuroCronError {
	return New(ErrCodeOrgNotSelected, "no organization selected").
		WithSuggestion("Run 'neurocron org list' to see your organizations").
		WithSuggestion("Run 'neurocron org use <id>' to select a default").
		WithSuggestion("Run 'neurocron org create <name>' if you have none yet").
		WithDocs("https://github.com/neurocron/neurocron#organizations")
}

// NewNetworkError creates a network/transport failure error
func NewNetworkError(cause error) *NeuroCronError {
	return Wrap(ErrCodeAPINetwork, "network error", cause).
		WithSuggestion("Check your internet connection").
		WithSuggestion("Verify the API URL with 'neurocron config get api_url'").
		WithSuggestion("Run 'neurocron doctor' to diagnose connectivity")
}

// NewStreamConnectError creates a notification stream connection error
func NewStreamConnectError(cause error) *NeuroCronError {
	return Wrap(ErrCodeNotifyConnectFailed, "failed to connect notification stream", cause).
		WithSuggestion("Check your network connection").
		WithSuggestion("Run 'neurocron doctor' to verify the stream endpoint")
}

// NewNotificationNotFoundError creates an unknown notification error
func NewNotificationNotFoundError(id string) *NeuroCronError {
	return New(ErrCodeNotifyNotFound, fmt.Sprintf("notification not found: %s", id)).
		WithSuggestion("Run 'neurocron notifications list' to see current notifications")
}

// NewConfigNotFoundError creates a config file not found error
func NewConfigNotFoundError(path string) *NeuroCronError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithSuggestion("Run 'neurocron config set api_url <url>' to create one").
		WithSuggestion("Check if the file path is correct")
}

// NewConfigInvalidError creates a config validation error
func NewConfigInvalidError(details string, cause error) *NeuroCronError {
	return Wrap(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", details), cause).
		WithSuggestion("Run 'neurocron config view' to inspect the current configuration").
		WithSuggestion("Run 'neurocron config path' to locate the file")
}

// NewFileNotFoundError creates a file not found error
func NewFileNotFoundError(path string) *NeuroCronError {
	return New(ErrCodeFileNotFound, fmt.Sprintf("file not found: %s", path)).
		WithSuggestion("Check if the file path is correct").
		WithSuggestion("Verify the file exists and you have read permissions")
}

// NewFileUnmarshalError creates an unmarshal error
func NewFileUnmarshalError(path string, format string, cause error) *NeuroCronError {
	return Wrap(ErrCodeFileUnmarshal, fmt.Sprintf("failed to parse %s file: %s", format, path), cause).
		WithSuggestion("Check the file syntax and format").
		WithSuggestion(fmt.Sprintf("Ensure the file is valid %s", format))
}
