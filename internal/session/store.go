// Package session owns the authenticated session: the on-disk
// credential store, the manager that tracks who is logged in, and the
// route guard that gates protected surfaces on session state.
package session

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/neurocron/neurocron/internal/config"
	"github.com/neurocron/neurocron/internal/errors"
	"github.com/neurocron/neurocron/internal/platform"
	"github.com/neurocron/neurocron/internal/security"
)

// EnvPassphrase enables sealing of the persisted session. When set,
// Save encrypts the record and Load transparently decrypts it.
const EnvPassphrase = "NEUROCRON_PASSPHRASE"

// sealMagic prefixes sealed credential files so Load can tell them
// apart from plaintext JSON.
var sealMagic = []byte("NEUROCRON-SEALED-V1\n")

// Credentials is the persisted session record.
type Credentials struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	Email        string         `json:"email"`
	User         *platform.User `json:"user,omitempty"`
	SavedAt      time.Time      `json:"saved_at"`
}

// Store persists credentials between process runs.
type Store struct {
	path string
}

// NewStore creates a store rooted at the configuration directory.
func NewStore() (*Store, error) {
	path, err := config.CredentialsPath()
	if err != nil {
		return nil, err
	}
	return &Store{path: path}, nil
}

// NewStoreAt creates a store at an explicit path.
func NewStoreAt(path string) *Store {
	return &Store{path: path}
}

// Path returns the absolute path of the credentials file.
func (s *Store) Path() string {
	return s.path
}

// Save writes the credentials atomically with 0600 permissions. When
// NEUROCRON_PASSPHRASE is set the record is sealed before writing.
func (s *Store) Save(creds *Credentials) error {
	if creds.SavedAt.IsZero() {
		creds.SavedAt = time.Now()
	}

	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}

	if passphrase := os.Getenv(EnvPassphrase); passphrase != "" {
		sealed, err := security.Seal(data, passphrase)
		if err != nil {
			return fmt.Errorf("failed to seal credentials: %w", err)
		}
		data = append(append([]byte{}, sealMagic...), sealed...)
	}

	return s.writeAtomic(data)
}

// writeAtomic writes via a temp file in the same directory followed by
// a rename, so a crash mid-write never leaves a truncated record.
func (s *Store) writeAtomic(data []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create credentials directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".credentials-*")
	if err != nil {
		return fmt.Errorf("failed to create temp credentials file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write credentials: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to set credentials permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp credentials file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace credentials file: %w", err)
	}

	return nil
}

// Load reads the persisted credentials. A missing file returns a
// not-logged-in error; a sealed file that cannot be decrypted returns a
// sealed-store error.
func (s *Store) Load() (*Credentials, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotLoggedInError()
		}
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	if bytes.HasPrefix(data, sealMagic) {
		passphrase := os.Getenv(EnvPassphrase)
		if passphrase == "" {
			return nil, errors.NewSealedStoreError(fmt.Errorf("credentials are sealed but %s is not set", EnvPassphrase))
		}
		plain, err := security.Unseal(data[len(sealMagic):], passphrase)
		if err != nil {
			return nil, errors.NewSealedStoreError(err)
		}
		data = plain
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, errors.NewFileUnmarshalError(s.path, "JSON", err)
	}

	return &creds, nil
}

// Clear removes the credentials file. A missing file is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove credentials file: %w", err)
	}
	return nil
}
