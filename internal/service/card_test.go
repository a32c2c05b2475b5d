package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ryuseikaiz/Ichu-Database/internal/domain"
	apperr "github.com/Ryuseikaiz/Ichu-Database/internal/errors"
)

func seedCards(t *testing.T, ts *testServices, cards ...domain.Card) {
	t.Helper()
	for i := range cards {
		require.NoError(t, ts.store.CreateCard(context.Background(), &cards[i]))
	}
}

func TestCardService_GetUpdateDelete(t *testing.T) {
	ts := setupServices(t)
	ctx := context.Background()
	seedCards(t, ts, domain.Card{ID: "card-1", Name: "Kokoro", Stats: domain.Stats{Wild: "100"}})

	got, err := ts.cards.Get(ctx, "card-1")
	require.NoError(t, err)
	assert.Equal(t, "Kokoro", got.Name)

	edited := got.Clone()
	edited.Stats.Wild = "3,201"
	updated, err := ts.cards.Update(ctx, "card-1", &edited)
	require.NoError(t, err)
	assert.Equal(t, "3,201", updated.Stats.Wild)

	require.NoError(t, ts.cards.Delete(ctx, "card-1"))

	_, err = ts.cards.Get(ctx, "card-1")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.ErrorIs(t, ts.cards.Delete(ctx, "card-1"), apperr.ErrNotFound)
}

func TestCardService_UpdateValidation(t *testing.T) {
	ts := setupServices(t)
	ctx := context.Background()
	seedCards(t, ts, domain.Card{ID: "card-1", Name: "Kokoro"})

	_, err := ts.cards.Update(ctx, "card-1", &domain.Card{Name: ""})
	require.ErrorIs(t, err, apperr.ErrValidation)

	_, err = ts.cards.Update(ctx, "card-1", &domain.Card{Name: "Kokoro", Stats: domain.Stats{Pop: "a lot"}})
	require.ErrorIs(t, err, apperr.ErrValidation)

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Details, "stats.pop")

	_, err = ts.cards.Update(ctx, "card-missing", &domain.Card{Name: "Ghost"})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCardService_Export(t *testing.T) {
	ts := setupServices(t)
	seedCards(t, ts, domain.Card{ID: "card-1", Name: "Kokoro"})

	data, err := ts.cards.Export(context.Background())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(data), "[\n    {\n        \"id\": \"card-1\""), "four-space indent: %s", data)

	var cards []domain.Card
	require.NoError(t, json.Unmarshal(data, &cards))
	require.Len(t, cards, 1)
}

func TestCardService_Import(t *testing.T) {
	ts := setupServices(t)
	ctx := context.Background()
	seedCards(t, ts, domain.Card{ID: "card-old", Name: "Old"})

	result, err := ts.cards.Import(ctx, "ichu_cards.json", []domain.Card{
		{ID: "card-1", Name: "One"},
		{ID: "card-1", Name: "One again"},
		{ID: "card-2", Name: ""},
		{ID: "", Name: "No id"},
		{ID: "card-3", Name: "Three", Stats: domain.Stats{Wild: "1,000"}},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Imported)
	require.Len(t, result.Skipped, 3)
	assert.Equal(t, 1, result.Skipped[0].Index)
	assert.ErrorIs(t, result.Skipped[0].Reason, apperr.ErrConflict)
	assert.ErrorIs(t, result.Skipped[1].Reason, apperr.ErrValidation)

	cards, err := ts.cards.List(ctx)
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, "card-1", cards[0].ID)
	assert.Equal(t, "card-3", cards[1].ID)
}
