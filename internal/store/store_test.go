package store_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ryuseikaiz/Ichu-Database/internal/domain"
	"github.com/Ryuseikaiz/Ichu-Database/internal/store"
)

func TestOpen_ConnectsLazily(t *testing.T) {
	s := store.Open(filepath.Join(t.TempDir(), "db"), nil)
	t.Cleanup(func() { _ = s.Close() })

	assert.False(t, s.Connected())

	// Concurrent first use shares one connection.
	var wg sync.WaitGroup
	for range 8 {
		wg.Go(func() {
			assert.NoError(t, s.EnsureConnected(context.Background()))
		})
	}
	wg.Wait()

	assert.True(t, s.Connected())
	assert.NoError(t, s.Ping(context.Background()))
}

func TestStore_ClosedCannotReconnect(t *testing.T) {
	s, err := store.New("", nil, store.InMemory())
	require.NoError(t, err)

	require.NoError(t, s.Close())
	require.NoError(t, s.Close(), "closing twice is fine")

	err = s.EnsureConnected(context.Background())
	assert.ErrorIs(t, err, store.ErrClosed)

	_, err = s.ListCards(context.Background())
	assert.ErrorIs(t, err, store.ErrClosed)
}

func TestEnsureConnected_CancelledContext(t *testing.T) {
	s := store.Open("", nil, store.InMemory())
	t.Cleanup(func() { _ = s.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.EnsureConnected(ctx), context.Canceled)
	assert.False(t, s.Connected())
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db")
	ctx := context.Background()

	s, err := store.New(path, nil)
	require.NoError(t, err)
	require.NoError(t, s.CreateCard(ctx, &domain.Card{ID: "card-1", Name: "Kokoro"}))
	require.NoError(t, s.Close())

	s, err = store.New(path, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	got, err := s.GetCard(ctx, "card-1")
	require.NoError(t, err)
	assert.Equal(t, "Kokoro", got.Name)
}

func TestEditors_ByUsername(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	ed := &domain.Editor{ID: "editor-1", Username: "Admin", PasswordHash: "hash"}
	require.NoError(t, s.SaveEditor(ctx, ed))

	got, err := s.GetEditorByUsername(ctx, " admin ")
	require.NoError(t, err)
	assert.Equal(t, "editor-1", got.ID)

	ed.PasswordHash = "rotated"
	require.NoError(t, s.SaveEditor(ctx, ed), "saving again updates")

	got, err = s.GetEditorByUsername(ctx, "ADMIN")
	require.NoError(t, err)
	assert.Equal(t, "rotated", got.PasswordHash)

	_, err = s.GetEditorByUsername(ctx, "someone")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
