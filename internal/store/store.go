// Package store persists cards and editor accounts in Badger.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dgraph-io/badger/v4"

	"github.com/Ryuseikaiz/Ichu-Database/internal/domain"
)

// Store wraps a Badger database instance.
//
// The connection is opened lazily by EnsureConnected and shared by every
// caller afterwards. Close releases it; a closed store cannot reconnect.
type Store struct {
	path     string
	inMemory bool
	logger   *slog.Logger

	mu     sync.Mutex
	db     *badger.DB
	closed bool

	Cards   *Entity[domain.Card]
	Editors *Entity[domain.Editor]
}

// Option configures a Store.
type Option func(*Store)

// InMemory keeps all data in memory. The path is ignored.
func InMemory() Option {
	return func(s *Store) { s.inMemory = true }
}

// Open creates a Store without connecting. The first operation, or an
// explicit EnsureConnected, opens the database.
func Open(path string, logger *slog.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Store{path: path, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	s.initCards()
	s.initEditors()
	return s
}

// New creates a Store and connects immediately.
func New(path string, logger *slog.Logger, opts ...Option) (*Store, error) {
	s := Open(path, logger, opts...)
	if err := s.EnsureConnected(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

// EnsureConnected opens the database if it is not open yet.
// Concurrent callers share a single connection attempt.
func (s *Store) EnsureConnected(ctx context.Context) error {
	_, err := s.conn(ctx)
	return err
}

// Connected reports whether the database is currently open.
func (s *Store) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db != nil
}

func (s *Store) conn(ctx context.Context) (*badger.DB, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrClosed
	}
	if s.db != nil {
		return s.db, nil
	}

	opts := badger.DefaultOptions(s.path)
	if s.inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.Logger = nil            // Disable Badger's internal logging
	opts.SyncWrites = true       // Ensure writes are synced to disk to prevent corruption on crashes
	opts.CompactL0OnClose = true // Compact L0 tables on close for faster startup

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}
	s.db = db

	s.logger.Info("Badger database opened successfully", "path", s.path, "in_memory", s.inMemory)
	return db, nil
}

// Close gracefully closes the database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	if s.db == nil {
		return nil
	}

	s.logger.Info("Closing database connection")
	db := s.db
	s.db = nil
	return db.Close()
}

// Ping verifies the database answers a read transaction.
func (s *Store) Ping(ctx context.Context) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}
	return db.View(func(*badger.Txn) error { return nil })
}

// get retrieves a value by key.
func (s *Store) get(ctx context.Context, key []byte, dest any) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}
	return db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, dest)
		})
	})
}

// set stores a value by key.
func (s *Store) set(ctx context.Context, key []byte, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	db, err := s.conn(ctx)
	if err != nil {
		return err
	}
	return db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
}
