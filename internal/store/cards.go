package store

import (
	"context"
	"fmt"
	"time"

	"github.com/Ryuseikaiz/Ichu-Database/internal/domain"
)

const (
	cardPrefix    = "card:"
	importInfoKey = "meta:import"
)

// ImportInfo records the last bulk import.
type ImportInfo struct {
	Source     string    `json:"source"`
	Count      int       `json:"count"`
	ImportedAt time.Time `json:"imported_at"`
}

func (s *Store) initCards() {
	s.Cards = NewEntity[domain.Card](s, cardPrefix)
}

// ListCards returns every card in id order.
func (s *Store) ListCards(ctx context.Context) ([]domain.Card, error) {
	cards := make([]domain.Card, 0)
	for card, err := range s.Cards.List(ctx) {
		if err != nil {
			return nil, fmt.Errorf("list cards: %w", err)
		}
		cards = append(cards, *card)
	}
	return cards, nil
}

// GetCard returns one card. Returns ErrNotFound for an unknown id.
func (s *Store) GetCard(ctx context.Context, id string) (*domain.Card, error) {
	return s.Cards.Get(ctx, id)
}

// CreateCard stores a new card, filling in timestamps.
func (s *Store) CreateCard(ctx context.Context, card *domain.Card) error {
	if card.CreatedAt.IsZero() {
		card.InitTimestamps()
	}
	return s.Cards.Create(ctx, card.ID, card)
}

// UpdateCard replaces the editable fields of the stored card with those of
// edited and returns the stored result. Returns ErrNotFound for an unknown id.
func (s *Store) UpdateCard(ctx context.Context, id string, edited *domain.Card) (*domain.Card, error) {
	card, err := s.Cards.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	card.ApplyEdit(edited)
	card.Touch()

	if err := s.Cards.Update(ctx, id, card); err != nil {
		return nil, err
	}
	return card, nil
}

// DeleteCard removes a card. Returns ErrNotFound for an unknown id.
func (s *Store) DeleteCard(ctx context.Context, id string) error {
	return s.Cards.Delete(ctx, id)
}

// CountCards returns the collection size.
func (s *Store) CountCards(ctx context.Context) (int, error) {
	return s.Cards.Count(ctx)
}

// ReplaceAllCards clears the collection and inserts cards, then records the
// import. Cards without timestamps get the import time.
func (s *Store) ReplaceAllCards(ctx context.Context, source string, cards []domain.Card) error {
	now := time.Now()
	ids := make([]string, len(cards))
	ptrs := make([]*domain.Card, len(cards))
	for i := range cards {
		c := &cards[i]
		if c.CreatedAt.IsZero() {
			c.CreatedAt = now
			c.UpdatedAt = now
		}
		ids[i] = c.ID
		ptrs[i] = c
	}

	if err := s.Cards.Replace(ctx, ids, ptrs); err != nil {
		return fmt.Errorf("replace cards: %w", err)
	}

	info := ImportInfo{Source: source, Count: len(cards), ImportedAt: now}
	if err := s.set(ctx, []byte(importInfoKey), info); err != nil {
		return fmt.Errorf("record import: %w", err)
	}

	s.logger.Info("cards replaced", "count", len(cards), "source", source)
	return nil
}

// LastImport returns the last import record, or ErrNotFound if the
// collection was never imported.
func (s *Store) LastImport(ctx context.Context) (*ImportInfo, error) {
	var info ImportInfo
	if err := s.get(ctx, []byte(importInfoKey), &info); err != nil {
		return nil, err
	}
	return &info, nil
}
