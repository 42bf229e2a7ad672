package cmd

import (
	"strings"
	"testing"
	"time"

	"github.com/neurocron/neurocron/internal/platform"
)

func TestNotificationLineUnread(t *testing.T) {
	n := platform.Notification{
		ID:        "ntf_1",
		Title:     "Campaign launched",
		CreatedAt: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
	}

	line := notificationLine(&n)
	if !strings.HasPrefix(line, "●") {
		t.Errorf("unread line = %q, want filled marker prefix", line)
	}
	if !strings.Contains(line, "2026-03-14 09:30") {
		t.Errorf("line = %q, want timestamp", line)
	}
	if !strings.Contains(line, "Campaign launched") {
		t.Errorf("line = %q, want title", line)
	}
}

func TestNotificationLineRead(t *testing.T) {
	n := platform.Notification{
		ID:        "ntf_2",
		Title:     "Weekly digest",
		Message:   "Opens are up 12%.",
		Read:      true,
		CreatedAt: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
	}

	line := notificationLine(&n)
	if !strings.HasPrefix(line, "○") {
		t.Errorf("read line = %q, want hollow marker prefix", line)
	}
	if !strings.Contains(line, "\n    Opens are up 12%.") {
		t.Errorf("line = %q, want indented message on a second line", line)
	}
}
