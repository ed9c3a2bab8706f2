// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/pbkdf2"

	"github.com/jeranaias/webmatic-tui/internal/util"
)

// =============================================================================
// CONSTANTS
// =============================================================================

// encryptedPrefix marks a stored value as encrypted:
// ENC:base64(salt|nonce|ciphertext).
const encryptedPrefix = "ENC:"

const (
	nonceSize = 12 // AES-GCM nonce (96 bits)
	keySize   = 32 // AES-256
	saltSize  = 16

	// pbkdf2Iterations stretches the machine key before use. The key file
	// is random to begin with, so this mainly decouples the file format
	// from the cipher key.
	pbkdf2Iterations = 10000
)

var (
	// ErrInvalidCiphertext indicates the stored credential is malformed.
	ErrInvalidCiphertext = errors.New("invalid stored credential format")
	// ErrDecryptionFailed indicates the credential could not be decrypted
	// (wrong machine key or tampered file).
	ErrDecryptionFailed = errors.New("credential decryption failed")
)

// =============================================================================
// CREDENTIAL STORE
// =============================================================================

// CredStore persists the bearer credential across restarts. The token is
// encrypted at rest with AES-256-GCM under a random per-machine key held
// next to it with 0600 permissions: not a substitute for OS keychains, but
// it keeps the raw token out of plain text files and backups.
type CredStore struct {
	// Dir is the directory holding the credential and key files.
	Dir string
}

// NewCredStore creates a store rooted at dir, creating it if needed.
func NewCredStore(dir string) (*CredStore, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create credential dir: %w", err)
	}
	return &CredStore{Dir: dir}, nil
}

func (c *CredStore) tokenPath() string { return filepath.Join(c.Dir, "credential") }
func (c *CredStore) keyPath() string   { return filepath.Join(c.Dir, "credential.key") }

// Save encrypts and persists the token atomically.
func (c *CredStore) Save(token string) error {
	key, err := c.machineKey()
	if err != nil {
		return err
	}

	sealed, err := seal([]byte(token), key)
	if err != nil {
		return err
	}
	return util.AtomicWriteFile(c.tokenPath(), []byte(sealed), 0600)
}

// Load returns the stored token, or "" when none is stored. A corrupt or
// undecryptable credential is treated as absent after being removed, so a
// damaged file can never wedge startup.
func (c *CredStore) Load() (string, error) {
	data, err := os.ReadFile(c.tokenPath())
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}

	key, err := c.machineKey()
	if err != nil {
		return "", err
	}

	token, err := open(strings.TrimSpace(string(data)), key)
	if err != nil {
		c.Clear()
		return "", nil
	}
	return string(token), nil
}

// Clear removes the stored credential. Missing files are not an error.
func (c *CredStore) Clear() {
	os.Remove(c.tokenPath())
}

// machineKey loads the per-machine key material, generating it on first use.
func (c *CredStore) machineKey() ([]byte, error) {
	data, err := os.ReadFile(c.keyPath())
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		data = make([]byte, keySize)
		if _, err := io.ReadFull(rand.Reader, data); err != nil {
			return nil, fmt.Errorf("failed to generate machine key: %w", err)
		}
		if err := util.AtomicWriteFile(c.keyPath(), data, 0600); err != nil {
			return nil, err
		}
	}
	return data, nil
}

// =============================================================================
// AES-256-GCM SEALING
// =============================================================================

// seal encrypts plaintext and encodes it as ENC:base64(salt|nonce|ct).
func seal(plaintext, keyMaterial []byte) (string, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", err
	}

	gcm, err := newGCM(keyMaterial, salt)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, nonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	ciphertext := gcm.Seal(nil, nonce, plaintext, nil)
	blob := append(append(salt, nonce...), ciphertext...)
	return encryptedPrefix + base64.StdEncoding.EncodeToString(blob), nil
}

// open decrypts a value produced by seal.
func open(value string, keyMaterial []byte) ([]byte, error) {
	if !strings.HasPrefix(value, encryptedPrefix) {
		return nil, ErrInvalidCiphertext
	}
	blob, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(value, encryptedPrefix))
	if err != nil {
		return nil, ErrInvalidCiphertext
	}
	if len(blob) < saltSize+nonceSize+1 {
		return nil, ErrInvalidCiphertext
	}

	salt := blob[:saltSize]
	nonce := blob[saltSize : saltSize+nonceSize]
	ciphertext := blob[saltSize+nonceSize:]

	gcm, err := newGCM(keyMaterial, salt)
	if err != nil {
		return nil, err
	}

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return plaintext, nil
}

// newGCM derives the cipher key from the machine key and salt.
func newGCM(keyMaterial, salt []byte) (cipher.AEAD, error) {
	key := pbkdf2.Key(keyMaterial, salt, pbkdf2Iterations, keySize, sha256.New)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
