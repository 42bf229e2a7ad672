package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirHonorsOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)

	got, err := Dir()
	require.NoError(t, err)
	assert.Equal(t, dir, got)

	info, err := os.Stat(got)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestFilePaths(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)

	cfgPath, err := FilePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.yaml"), cfgPath)

	credPath, err := CredentialsPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "credentials.json"), credPath)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv(EnvConfigDir, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Empty(t, cfg.DefaultOrg)
	assert.False(t, cfg.Telemetry)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoadReadsFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)

	content := "api_url: https://staging.neurocron.com\ndefault_org: org-42\nlog_level: debug\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0600))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://staging.neurocron.com", cfg.APIURL)
	assert.Equal(t, "org-42", cfg.DefaultOrg)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat, "unset keys keep defaults")
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)

	content := "api_url: https://staging.neurocron.com\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0600))
	t.Setenv("NEUROCRON_API_URL", "http://localhost:8080")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", cfg.APIURL)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("api_url: [broken"), 0600))

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv(EnvConfigDir, t.TempDir())

	cfg := Default()
	cfg.DefaultOrg = "org-7"
	cfg.Telemetry = true
	require.NoError(t, cfg.Save())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "org-7", loaded.DefaultOrg)
	assert.True(t, loaded.Telemetry)
}

func TestGetSet(t *testing.T) {
	cfg := Default()

	tests := []struct {
		key   string
		value string
	}{
		{"api_url", "http://localhost:9999"},
		{"default_org", "org-1"},
		{"telemetry", "true"},
		{"log_level", "warn"},
		{"log_format", "json"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			require.NoError(t, cfg.Set(tt.key, tt.value))
			got, err := cfg.Get(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.value, got)
		})
	}
}

func TestSetRejectsInvalidValues(t *testing.T) {
	cfg := Default()

	assert.Error(t, cfg.Set("telemetry", "maybe"))
	assert.Error(t, cfg.Set("log_level", "loud"))
	assert.Error(t, cfg.Set("log_format", "xml"))
	assert.Error(t, cfg.Set("nonexistent", "x"))

	_, err := cfg.Get("nonexistent")
	assert.Error(t, err)
}

func TestKeysCoverAllGetters(t *testing.T) {
	cfg := Default()
	for _, key := range Keys() {
		_, err := cfg.Get(key)
		assert.NoError(t, err, "key %s should be gettable", key)
	}
}
