// Package auth issues and checks editor credentials.
package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// KeySize is the PASETO v4 symmetric key length in bytes.
const KeySize = 32

// KeyFile is the key's file name inside the data directory.
const KeyFile = "token.key"

// LoadOrGenerateKey returns the token key stored hex-encoded in
// <dataPath>/token.key, creating the file with a fresh key on first run.
func LoadOrGenerateKey(dataPath string) ([]byte, error) {
	keyPath := filepath.Join(dataPath, KeyFile)

	//#nosec G304 -- path is under the configured data directory
	if raw, err := os.ReadFile(keyPath); err == nil {
		key, err := hex.DecodeString(strings.TrimSpace(string(raw)))
		if err != nil {
			return nil, fmt.Errorf("invalid token key format: %w", err)
		}
		if len(key) != KeySize {
			return nil, fmt.Errorf("invalid token key length: expected %d bytes, got %d", KeySize, len(key))
		}
		return key, nil
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read token key: %w", err)
	}

	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate token key: %w", err)
	}

	if err := os.MkdirAll(dataPath, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := os.WriteFile(keyPath, []byte(hex.EncodeToString(key)), 0o600); err != nil {
		return nil, fmt.Errorf("failed to save token key: %w", err)
	}

	return key, nil
}
