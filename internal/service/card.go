package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Ryuseikaiz/Ichu-Database/internal/domain"
	apperr "github.com/Ryuseikaiz/Ichu-Database/internal/errors"
	"github.com/Ryuseikaiz/Ichu-Database/internal/store"
	"github.com/Ryuseikaiz/Ichu-Database/internal/validation"
)

// ExportFilename is the attachment name used by Export.
const ExportFilename = "ichu_cards.json"

// CardService reads and edits the card collection.
type CardService struct {
	store     *store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewCardService creates a new card service.
func NewCardService(store *store.Store, validator *validation.Validator, logger *slog.Logger) *CardService {
	return &CardService{
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

// List returns the whole collection. Filtering, sorting and paging are
// left to the client.
func (s *CardService) List(ctx context.Context) ([]domain.Card, error) {
	cards, err := s.store.ListCards(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	return cards, nil
}

// Get returns one card.
func (s *CardService) Get(ctx context.Context, id string) (*domain.Card, error) {
	card, err := s.store.GetCard(ctx, id)
	if err != nil {
		return nil, cardError(err, id)
	}
	return card, nil
}

// Update replaces the editable fields of card id and returns the stored card.
func (s *CardService) Update(ctx context.Context, id string, edited *domain.Card) (*domain.Card, error) {
	if err := s.validator.Validate(edited); err != nil {
		return nil, err
	}

	card, err := s.store.UpdateCard(ctx, id, edited)
	if err != nil {
		return nil, cardError(err, id)
	}

	s.logger.Info("card updated", "card_id", id, "name", card.Name)
	return card, nil
}

// Delete removes card id.
func (s *CardService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteCard(ctx, id); err != nil {
		return cardError(err, id)
	}

	s.logger.Info("card deleted", "card_id", id)
	return nil
}

// Export returns the collection as JSON indented with four spaces.
func (s *CardService) Export(ctx context.Context) ([]byte, error) {
	cards, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "    ")
	if err := enc.Encode(cards); err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}
	return buf.Bytes(), nil
}

// ImportResult summarizes an Import call.
type ImportResult struct {
	Imported int
	Skipped  []SkippedCard
}

// SkippedCard is an input record that failed validation.
type SkippedCard struct {
	Index  int
	Name   string
	Reason error
}

// Import replaces the collection with cards. Invalid records and repeated
// ids are skipped and reported; the rest are stored.
func (s *CardService) Import(ctx context.Context, source string, cards []domain.Card) (*ImportResult, error) {
	result := &ImportResult{}
	valid := make([]domain.Card, 0, len(cards))
	seen := make(map[string]bool, len(cards))

	for i := range cards {
		c := cards[i]
		var reason error
		switch {
		case c.ID == "":
			reason = apperr.Validation("id is required")
		case seen[c.ID]:
			reason = apperr.Conflictf("duplicate id %s", c.ID)
		default:
			reason = s.validator.Validate(&c)
		}
		if reason != nil {
			result.Skipped = append(result.Skipped, SkippedCard{Index: i, Name: c.Name, Reason: reason})
			s.logger.Warn("skipping card", "index", i, "name", c.Name, "error", reason)
			continue
		}
		seen[c.ID] = true
		valid = append(valid, c)
	}

	if err := s.store.ReplaceAllCards(ctx, source, valid); err != nil {
		return nil, err
	}
	result.Imported = len(valid)
	return result, nil
}

func cardError(err error, id string) error {
	if errors.Is(err, store.ErrNotFound) {
		return apperr.NotFoundf("card %s not found", id)
	}
	return err
}
