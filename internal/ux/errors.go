package ux

import (
	"fmt"
	"strings"
)

// ErrorWithSuggestion wraps an error with helpful recovery suggestions
type ErrorWithSuggestion struct {
	Err        error
	Suggestion string
}

// Error implements the error interface
func (e *ErrorWithSuggestion) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%v\n\n💡 Suggestion: %s", e.Err, e.Suggestion)
	}
	return e.Err.Error()
}

// Unwrap provides access to the underlying error
func (e *ErrorWithSuggestion) Unwrap() error {
	return e.Err
}

// NewErrorWithSuggestion creates a new error with a suggestion
func NewErrorWithSuggestion(err error, suggestion string) error {
	if err == nil {
		return nil
	}
	return &ErrorWithSuggestion{
		Err:        err,
		Suggestion: suggestion,
	}
}

// EnhanceError analyzes an error and adds contextual suggestions
func EnhanceError(err error) error {
	if err == nil {
		return nil
	}

	errMsg := err.Error()

	// Session errors
	if strings.Contains(errMsg, "not logged in") || strings.Contains(errMsg, "no stored credentials") {
		return NewErrorWithSuggestion(err,
			"Run 'neurocron auth login' to authenticate")
	}

	if strings.Contains(errMsg, "Invalid token") || strings.Contains(errMsg, "token was rejected") {
		return NewErrorWithSuggestion(err,
			"Your session expired. Run 'neurocron auth refresh' or 'neurocron auth login'")
	}

	// Sealed credential store
	if strings.Contains(errMsg, "unseal") || strings.Contains(errMsg, "passphrase") {
		return NewErrorWithSuggestion(err,
			"Check the NEUROCRON_PASSPHRASE environment variable matches the one used at login")
	}

	// Organization errors
	if strings.Contains(errMsg, "no organization selected") {
		return NewErrorWithSuggestion(err,
			"Run 'neurocron org list', then 'neurocron org use <id>' to pick a default organization")
	}

	if strings.Contains(errMsg, "organization lookup failed") {
		return NewErrorWithSuggestion(err,
			"The API could not list your organizations. Run 'neurocron doctor' to check connectivity")
	}

	// Network errors
	if strings.Contains(errMsg, "connection refused") || strings.Contains(errMsg, "no route to host") {
		return NewErrorWithSuggestion(err,
			"Check your network connection and the API URL ('neurocron config get api_url')")
	}

	if strings.Contains(errMsg, "failed to perform request") {
		return NewErrorWithSuggestion(err,
			"The platform API was unreachable. Run 'neurocron doctor' to diagnose")
	}

	// Permission errors
	if strings.Contains(errMsg, "permission denied") {
		return NewErrorWithSuggestion(err,
			"Check file permissions on your ~/.neurocron directory")
	}

	// Configuration errors
	if strings.Contains(errMsg, "invalid configuration") || strings.Contains(errMsg, "failed to parse config") {
		return NewErrorWithSuggestion(err,
			"Run 'neurocron config view' to inspect and 'neurocron config path' to locate the file")
	}

	// Plan/usage limits surfaced by the API
	if strings.Contains(errMsg, "limit reached") || strings.Contains(errMsg, "quota exceeded") {
		return NewErrorWithSuggestion(err,
			"Run 'neurocron billing usage' to review limits or 'neurocron billing plans' to upgrade")
	}

	return err
}

// FormatError provides consistent error formatting with context
func FormatError(err error, context string) error {
	if err == nil {
		return nil
	}

	enhanced := EnhanceError(err)
	if context != "" {
		return fmt.Errorf("%s: %w", context, enhanced)
	}
	return enhanced
}
