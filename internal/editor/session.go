// Package editor holds the client's card collection and applies edits and
// deletes to it optimistically, reconciling with the remote store.
package editor

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	apperr "github.com/Ryuseikaiz/Ichu-Database/internal/errors"
)

// Session is the held editor credential.
type Session struct {
	Username  string
	Token     string
	ExpiresAt time.Time
}

// SessionStore persists the session between runs.
type SessionStore interface {
	Load() (*Session, error)
	Save(*Session) error
	Clear() error
}

// Authenticator checks credentials against the remote store.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*Session, error)
}

// SessionGate holds the current session. Mutations are only reachable
// while it holds one.
type SessionGate struct {
	mu      sync.RWMutex
	current *Session
	auth    Authenticator
	store   SessionStore
	logger  *slog.Logger
}

// NewSessionGate creates a gate and restores any persisted session.
// store may be nil, in which case sessions live only in memory.
func NewSessionGate(auth Authenticator, store SessionStore, logger *slog.Logger) (*SessionGate, error) {
	if logger == nil {
		logger = slog.Default()
	}
	g := &SessionGate{auth: auth, store: store, logger: logger}
	if store == nil {
		return g, nil
	}

	s, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}
	if s != nil {
		g.current = s
		logger.Debug("Session restored", "username", s.Username)
	}
	return g, nil
}

// Current returns a copy of the held session, or nil.
func (g *SessionGate) Current() *Session {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if g.current == nil {
		return nil
	}
	s := *g.current
	return &s
}

// CanMutate reports whether edit and delete are enabled, which needs a held
// session that carries a token.
func (g *SessionGate) CanMutate() bool {
	_, err := g.token()
	return err == nil
}

// Login asks the remote store for a session and holds it. A rejected login
// fails with INVALID_CREDENTIALS and leaves the previous session in place.
func (g *SessionGate) Login(ctx context.Context, username, password string) (*Session, error) {
	s, err := g.auth.Login(ctx, username, password)
	if err != nil {
		switch apperr.CodeOf(err) {
		case apperr.CodeInvalidCredentials, apperr.CodeUnauthorized:
			return nil, apperr.InvalidCredentials("Invalid username or password").WithCause(err)
		}
		return nil, err
	}

	if g.store != nil {
		if err := g.store.Save(s); err != nil {
			return nil, fmt.Errorf("save session: %w", err)
		}
	}

	g.mu.Lock()
	g.current = s
	g.mu.Unlock()

	g.logger.Info("Logged in", "username", s.Username)
	cp := *s
	return &cp, nil
}

// Logout drops the held session and its persisted copy.
func (g *SessionGate) Logout() error {
	g.mu.Lock()
	g.current = nil
	g.mu.Unlock()

	if g.store == nil {
		return nil
	}
	if err := g.store.Clear(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// token returns the credential for a mutating call.
func (g *SessionGate) token() (string, error) {
	s := g.Current()
	if s == nil || s.Token == "" {
		return "", errNoSession
	}
	return s.Token, nil
}

var errNoSession = apperr.Unauthorized("Please login to make changes.")
