package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnvConfigDir overrides the default configuration directory.
const EnvConfigDir = "NEUROCRON_CONFIG_DIR"

// Dir returns the neurocron configuration directory, creating it when
// missing. Defaults to ~/.neurocron; NEUROCRON_CONFIG_DIR overrides.
func Dir() (string, error) {
	dir := os.Getenv(EnvConfigDir)
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(home, ".neurocron")
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return dir, nil
}

// FilePath returns the path of the global configuration file.
func FilePath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// CredentialsPath returns the path of the persisted session file.
func CredentialsPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "credentials.json"), nil
}
