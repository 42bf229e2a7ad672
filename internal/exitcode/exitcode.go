package exitcode

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/neurocron/neurocron/internal/platform"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, missing args, etc.)
	UsageError = 2

	// ConfigError indicates an invalid or unreadable configuration
	ConfigError = 3

	// ValidationError indicates invalid input data
	ValidationError = 4

	// AuthError indicates an authentication or authorization failure
	AuthError = 5

	// NetworkError indicates a network connectivity issue
	NetworkError = 6

	// NotFound indicates a requested resource does not exist
	NotFound = 7

	// Timeout indicates an operation exceeded its deadline
	Timeout = 8

	// Interrupted indicates the user cancelled the operation
	Interrupted = 130
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	if err == nil {
		Exit(Success)
		return
	}

	code := DetermineExitCode(err)
	Exit(code)
}

// DetermineExitCode analyzes an error and returns the appropriate exit code.
// Platform API errors map by HTTP status; everything else falls back to
// error-text classification.
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}

	// Typed platform errors carry the HTTP status.
	switch platform.StatusOf(err) {
	case http.StatusUnauthorized, http.StatusForbidden:
		return AuthError
	case http.StatusNotFound:
		return NotFound
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return Timeout
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return Timeout
	}
	if errors.Is(err, context.Canceled) {
		return Interrupted
	}

	errMsg := strings.ToLower(err.Error())

	// Authentication errors
	if strings.Contains(errMsg, "authentication") || strings.Contains(errMsg, "unauthorized") {
		return AuthError
	}
	if strings.Contains(errMsg, "not logged in") || strings.Contains(errMsg, "token") {
		return AuthError
	}
	if strings.Contains(errMsg, "invalid email or password") {
		return AuthError
	}

	// Configuration errors
	if strings.Contains(errMsg, "configuration") || strings.Contains(errMsg, "config file") {
		return ConfigError
	}

	// Validation errors
	if strings.Contains(errMsg, "validation") || strings.Contains(errMsg, "invalid value") {
		return ValidationError
	}

	// Not-found errors
	if strings.Contains(errMsg, "not found") {
		return NotFound
	}

	// Timeouts before generic network classification
	if strings.Contains(errMsg, "timeout") || strings.Contains(errMsg, "deadline exceeded") {
		return Timeout
	}

	// Network errors
	if strings.Contains(errMsg, "network") || strings.Contains(errMsg, "connection") {
		return NetworkError
	}
	if strings.Contains(errMsg, "unreachable") || strings.Contains(errMsg, "failed to perform request") {
		return NetworkError
	}

	// Usage errors
	if strings.Contains(errMsg, "invalid flag") || strings.Contains(errMsg, "unknown command") {
		return UsageError
	}
	if strings.Contains(errMsg, "required flag") || strings.Contains(errMsg, "missing argument") {
		return UsageError
	}

	// Default to general error
	return GeneralError
}

// GetExitCodeDescription returns a human-readable description of an exit code
func GetExitCodeDescription(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case UsageError:
		return "Usage error (invalid flags or arguments)"
	case ConfigError:
		return "Configuration error"
	case ValidationError:
		return "Validation error"
	case AuthError:
		return "Authentication error"
	case NetworkError:
		return "Network error"
	case NotFound:
		return "Resource not found"
	case Timeout:
		return "Operation timed out"
	case Interrupted:
		return "Interrupted"
	default:
		return "Unknown error"
	}
}
