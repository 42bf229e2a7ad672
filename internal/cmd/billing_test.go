package cmd

import (
	"strings"
	"testing"
)

func TestUsageLine(t *testing.T) {
	tests := []struct {
		name  string
		used  int
		limit int
		want  string
	}{
		{"Campaigns", 3, 10, "3 of 10"},
		{"Copilot messages", 180, 200, "180 of 200"},
		{"Audit runs", 7, 0, "7 (unlimited)"},
		{"Audit runs", 2, -1, "2 (unlimited)"},
	}
	for _, tt := range tests {
		got := usageLine(tt.name, tt.used, tt.limit)
		if !strings.HasPrefix(got, tt.name+":") {
			t.Errorf("usageLine(%q, %d, %d) = %q, want prefix %q", tt.name, tt.used, tt.limit, got, tt.name+":")
		}
		if !strings.HasSuffix(got, tt.want) {
			t.Errorf("usageLine(%q, %d, %d) = %q, want suffix %q", tt.name, tt.used, tt.limit, got, tt.want)
		}
	}
}
