package clientconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/Ryuseikaiz/Ichu-Database/internal/editor"
)

// SessionFile persists the editor session as TOML. It implements
// editor.SessionStore.
type SessionFile struct {
	Path string
}

type sessionRecord struct {
	Username  string    `toml:"username"`
	Token     string    `toml:"token"`
	ExpiresAt time.Time `toml:"expires_at,omitzero"`
}

// DefaultSessionFile returns the session file under Dir.
func DefaultSessionFile() *SessionFile {
	return &SessionFile{Path: filepath.Join(Dir(), "session.toml")}
}

// Load returns the stored session, or nil when none is stored.
func (f *SessionFile) Load() (*editor.Session, error) {
	var rec sessionRecord
	if _, err := toml.DecodeFile(f.Path, &rec); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode session file: %w", err)
	}
	if rec.Token == "" {
		return nil, nil
	}
	return &editor.Session{Username: rec.Username, Token: rec.Token, ExpiresAt: rec.ExpiresAt}, nil
}

// Save writes the session with owner-only permissions.
func (f *SessionFile) Save(s *editor.Session) error {
	return writeTOML(f.Path, sessionRecord{Username: s.Username, Token: s.Token, ExpiresAt: s.ExpiresAt}, 0o600)
}

// Clear removes the session file. A missing file is not an error.
func (f *SessionFile) Clear() error {
	if err := os.Remove(f.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}
