package store_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperr "github.com/Ryuseikaiz/Ichu-Database/internal/errors"
	"github.com/Ryuseikaiz/Ichu-Database/internal/store"
)

type TestEntity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func setupTestStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.New(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func newIndexedEntity(s *store.Store) *store.Entity[TestEntity] {
	return store.NewEntity[TestEntity](s, "test:").
		WithIndexTransform("email",
			func(e *TestEntity) []string { return []string{strings.ToLower(e.Email)} },
			strings.ToLower,
		)
}

func TestEntity_Create_Success(t *testing.T) {
	s := setupTestStore(t)
	entity := store.NewEntity[TestEntity](s, "test:")

	testData := &TestEntity{ID: "1", Name: "Kokoro Hanabusa", Email: "kokoro@example.com"}
	require.NoError(t, entity.Create(context.Background(), "1", testData))

	retrieved, err := entity.Get(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, testData, retrieved)
}

func TestEntity_Create_AlreadyExists(t *testing.T) {
	s := setupTestStore(t)
	entity := store.NewEntity[TestEntity](s, "test:")

	testData := &TestEntity{ID: "1", Name: "Kokoro Hanabusa"}
	require.NoError(t, entity.Create(context.Background(), "1", testData))

	err := entity.Create(context.Background(), "1", testData)
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrAlreadyExists)
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestEntity_Create_IndexConflict(t *testing.T) {
	s := setupTestStore(t)
	entity := newIndexedEntity(s)
	ctx := context.Background()

	require.NoError(t, entity.Create(ctx, "1", &TestEntity{ID: "1", Email: "a@example.com"}))

	err := entity.Create(ctx, "2", &TestEntity{ID: "2", Email: "A@example.com"})
	assert.ErrorIs(t, err, store.ErrAlreadyExists)

	_, err = entity.Get(ctx, "2")
	assert.ErrorIs(t, err, store.ErrNotFound, "failed create should not leave a record")
}

func TestEntity_Get_NotFound(t *testing.T) {
	s := setupTestStore(t)
	entity := store.NewEntity[TestEntity](s, "test:")

	_, err := entity.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestEntity_GetByIndex_Transform(t *testing.T) {
	s := setupTestStore(t)
	entity := newIndexedEntity(s)
	ctx := context.Background()

	require.NoError(t, entity.Create(ctx, "1", &TestEntity{ID: "1", Email: "Seiya@Example.com"}))

	got, err := entity.GetByIndex(ctx, "email", "SEIYA@example.COM")
	require.NoError(t, err)
	assert.Equal(t, "1", got.ID)

	_, err = entity.GetByIndex(ctx, "email", "nobody@example.com")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestEntity_Update_ReindexesAndRejectsConflicts(t *testing.T) {
	s := setupTestStore(t)
	entity := newIndexedEntity(s)
	ctx := context.Background()

	require.NoError(t, entity.Create(ctx, "1", &TestEntity{ID: "1", Email: "old@example.com"}))
	require.NoError(t, entity.Create(ctx, "2", &TestEntity{ID: "2", Email: "taken@example.com"}))

	require.NoError(t, entity.Update(ctx, "1", &TestEntity{ID: "1", Email: "new@example.com"}))

	_, err := entity.GetByIndex(ctx, "email", "old@example.com")
	assert.ErrorIs(t, err, store.ErrNotFound, "old index entry should be removed")

	got, err := entity.GetByIndex(ctx, "email", "new@example.com")
	require.NoError(t, err)
	assert.Equal(t, "1", got.ID)

	err = entity.Update(ctx, "1", &TestEntity{ID: "1", Email: "taken@example.com"})
	assert.ErrorIs(t, err, store.ErrAlreadyExists)

	// Keeping its own key is not a conflict.
	assert.NoError(t, entity.Update(ctx, "1", &TestEntity{ID: "1", Name: "renamed", Email: "new@example.com"}))
}

func TestEntity_Update_NotFound(t *testing.T) {
	s := setupTestStore(t)
	entity := store.NewEntity[TestEntity](s, "test:")

	err := entity.Update(context.Background(), "missing", &TestEntity{ID: "missing"})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestEntity_Delete(t *testing.T) {
	s := setupTestStore(t)
	entity := newIndexedEntity(s)
	ctx := context.Background()

	require.NoError(t, entity.Create(ctx, "1", &TestEntity{ID: "1", Email: "a@example.com"}))
	require.NoError(t, entity.Delete(ctx, "1"))

	_, err := entity.Get(ctx, "1")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = entity.GetByIndex(ctx, "email", "a@example.com")
	assert.ErrorIs(t, err, store.ErrNotFound)

	assert.ErrorIs(t, entity.Delete(ctx, "1"), store.ErrNotFound)
}

func TestEntity_ListAndCount_SkipIndexKeys(t *testing.T) {
	s := setupTestStore(t)
	entity := newIndexedEntity(s)
	ctx := context.Background()

	for i := range 5 {
		id := fmt.Sprint(i)
		require.NoError(t, entity.Create(ctx, id, &TestEntity{ID: id, Email: id + "@example.com"}))
	}

	var ids []string
	for e, err := range entity.List(ctx) {
		require.NoError(t, err)
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"0", "1", "2", "3", "4"}, ids)

	n, err := entity.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestEntity_List_CancelledContext(t *testing.T) {
	s := setupTestStore(t)
	entity := store.NewEntity[TestEntity](s, "test:")
	require.NoError(t, entity.Create(context.Background(), "1", &TestEntity{ID: "1"}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, err := range entity.List(ctx) {
		assert.True(t, errors.Is(err, context.Canceled))
	}
}

func TestEntity_Replace(t *testing.T) {
	s := setupTestStore(t)
	entity := newIndexedEntity(s)
	ctx := context.Background()

	require.NoError(t, entity.Create(ctx, "old", &TestEntity{ID: "old", Email: "old@example.com"}))

	err := entity.Replace(ctx,
		[]string{"a", "b"},
		[]*TestEntity{{ID: "a", Email: "a@example.com"}, {ID: "b", Email: "b@example.com"}},
	)
	require.NoError(t, err)

	_, err = entity.Get(ctx, "old")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = entity.GetByIndex(ctx, "email", "old@example.com")
	assert.ErrorIs(t, err, store.ErrNotFound, "index entries are dropped with the records")

	got, err := entity.GetByIndex(ctx, "email", "b@example.com")
	require.NoError(t, err)
	assert.Equal(t, "b", got.ID)
}

func TestEntity_Replace_MismatchedLengths(t *testing.T) {
	s := setupTestStore(t)
	entity := store.NewEntity[TestEntity](s, "test:")

	err := entity.Replace(context.Background(), []string{"a"}, nil)
	assert.Error(t, err)
}
