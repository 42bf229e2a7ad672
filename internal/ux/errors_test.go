package ux

import (
	"errors"
	"strings"
	"testing"
)

func TestNewErrorWithSuggestion(t *testing.T) {
	base := errors.New("boom")
	err := NewErrorWithSuggestion(base, "try again")

	if err == nil {
		t.Fatal("expected non-nil error")
	}

	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("error should contain original message, got %q", err.Error())
	}
	if !strings.Contains(err.Error(), "try again") {
		t.Errorf("error should contain suggestion, got %q", err.Error())
	}

	if !errors.Is(err, base) {
		t.Error("wrapped error should unwrap to the base error")
	}
}

func TestNewErrorWithSuggestion_NilError(t *testing.T) {
	if err := NewErrorWithSuggestion(nil, "irrelevant"); err != nil {
		t.Errorf("expected nil for nil input, got %v", err)
	}
}

func TestEnhanceError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		wantSuggestion string
	}{
		{
			name:           "not logged in",
			err:            errors.New("not logged in"),
			wantSuggestion: "neurocron auth login",
		},
		{
			name:           "rejected token",
			err:            errors.New("Invalid token"),
			wantSuggestion: "neurocron auth refresh",
		},
		{
			name:           "sealed store",
			err:            errors.New("failed to unseal stored credentials"),
			wantSuggestion: "NEUROCRON_PASSPHRASE",
		},
		{
			name:           "no organization selected",
			err:            errors.New("no organization selected"),
			wantSuggestion: "neurocron org use",
		},
		{
			name:           "organization lookup failed",
			err:            errors.New("organization lookup failed: 502"),
			wantSuggestion: "neurocron doctor",
		},
		{
			name:           "connection refused",
			err:            errors.New("dial tcp 127.0.0.1:443: connection refused"),
			wantSuggestion: "config get api_url",
		},
		{
			name:           "transport failure",
			err:            errors.New("failed to perform request: no such host"),
			wantSuggestion: "neurocron doctor",
		},
		{
			name:           "config parse",
			err:            errors.New("failed to parse config: yaml: line 3"),
			wantSuggestion: "neurocron config view",
		},
		{
			name:           "usage limit",
			err:            errors.New("campaign limit reached for plan"),
			wantSuggestion: "neurocron billing usage",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enhanced := EnhanceError(tt.err)
			if !strings.Contains(enhanced.Error(), tt.wantSuggestion) {
				t.Errorf("expected suggestion containing %q, got %q", tt.wantSuggestion, enhanced.Error())
			}
		})
	}
}

func TestEnhanceError_PassThrough(t *testing.T) {
	err := errors.New("some unrelated failure")
	enhanced := EnhanceError(err)
	if enhanced != err {
		t.Errorf("unrecognized errors should pass through unchanged")
	}
}

func TestFormatError(t *testing.T) {
	err := errors.New("not logged in")
	formatted := FormatError(err, "loading session")

	if !strings.Contains(formatted.Error(), "loading session:") {
		t.Errorf("expected context prefix, got %q", formatted.Error())
	}
	if !strings.Contains(formatted.Error(), "neurocron auth login") {
		t.Errorf("expected enhancement to apply, got %q", formatted.Error())
	}

	if FormatError(nil, "anything") != nil {
		t.Error("nil error should format to nil")
	}
}
