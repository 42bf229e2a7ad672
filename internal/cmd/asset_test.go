package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/neurocron/neurocron/internal/errors"
)

func TestDetectAssetKind(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"banner.png", "image"},
		{"hero.JPG", "image"},
		{"logo.svg", "image"},
		{"promo.mp4", "video"},
		{"teaser.MOV", "video"},
		{"tagline.txt", "copy"},
		{"noextension", "copy"},
	}
	for _, tt := range tests {
		if got := detectAssetKind(tt.path); got != tt.want {
			t.Errorf("detectAssetKind(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestFingerprintFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "banner.png")
	content := []byte("not really a png, but bytes are bytes")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	sum, size, err := fingerprintFile(path)
	if err != nil {
		t.Fatalf("fingerprintFile: %v", err)
	}
	if size != int64(len(content)) {
		t.Errorf("size = %d, want %d", size, len(content))
	}
	if len(sum) != 64 {
		t.Errorf("fingerprint length = %d, want 64 hex chars", len(sum))
	}

	again, _, err := fingerprintFile(path)
	if err != nil {
		t.Fatalf("second fingerprintFile: %v", err)
	}
	if again != sum {
		t.Errorf("fingerprint not deterministic: %q vs %q", sum, again)
	}
}

func TestFingerprintFileMissing(t *testing.T) {
	_, _, err := fingerprintFile(filepath.Join(t.TempDir(), "absent.png"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
	ncErr, ok := err.(*errors.NeuroCronError)
	if !ok {
		t.Fatalf("expected a NeuroCronError, got %T", err)
	}
	if ncErr.Code != errors.ErrCodeFileNotFound {
		t.Errorf("code = %s, want %s", ncErr.Code, errors.ErrCodeFileNotFound)
	}
}
