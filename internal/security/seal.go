// Package security provides passphrase-based sealing for data at rest.
// The credential store uses it to encrypt the persisted session when a
// passphrase is configured.
package security

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// saltSize is the length of the random PBKDF2 salt in bytes.
	saltSize = 16

	// keyIterations is the PBKDF2 iteration count.
	keyIterations = 100000

	// keySize is the derived AES-256 key length in bytes.
	keySize = 32
)

// Seal encrypts plaintext with AES-256-GCM using a key derived from the
// passphrase via PBKDF2 (SHA-256). The random salt and nonce are
// prefixed to the returned ciphertext, so Unseal needs only the
// passphrase.
func Seal(plaintext []byte, passphrase string) ([]byte, error) {
	if passphrase == "" {
		return nil, fmt.Errorf("passphrase must not be empty")
	}

	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	key := pbkdf2.Key([]byte(passphrase), salt, keyIterations, keySize, sha256.New)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := make([]byte, 0, saltSize+len(nonce)+len(plaintext)+gcm.Overhead())
	sealed = append(sealed, salt...)
	sealed = append(sealed, nonce...)
	sealed = gcm.Seal(sealed, nonce, plaintext, nil)

	return sealed, nil
}

// Unseal decrypts data produced by Seal. It fails when the passphrase
// is wrong or the data was tampered with.
func Unseal(sealed []byte, passphrase string) ([]byte, error) {
	if passphrase == "" {
		return nil, fmt.Errorf("passphrase must not be empty")
	}

	if len(sealed) < saltSize {
		return nil, fmt.Errorf("sealed data too short")
	}

	salt, rest := sealed[:saltSize], sealed[saltSize:]
	key := pbkdf2.Key([]byte(passphrase), salt, keyIterations, keySize, sha256.New)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonceSize := gcm.NonceSize()
	if len(rest) < nonceSize {
		return nil, fmt.Errorf("sealed data too short")
	}

	nonce, ciphertext := rest[:nonceSize], rest[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt: %w", err)
	}

	return plaintext, nil
}
