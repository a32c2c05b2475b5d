package editor

import (
	"slices"
	"sync"

	"github.com/Ryuseikaiz/Ichu-Database/internal/domain"
	apperr "github.com/Ryuseikaiz/Ichu-Database/internal/errors"
)

// Collection is the client's in-memory card list. Readers always see the
// latest committed value, optimistic or confirmed.
type Collection struct {
	mu      sync.RWMutex
	cards   []domain.Card
	version uint64
}

// NewCollection creates a collection holding copies of cards.
func NewCollection(cards []domain.Card) *Collection {
	return &Collection{cards: cloneCards(cards)}
}

// Cards returns a copy of the current cards in collection order.
func (c *Collection) Cards() []domain.Card {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneCards(c.cards)
}

// Len returns the number of cards.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cards)
}

// Get returns a copy of card id.
func (c *Collection) Get(id string) (domain.Card, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if i := c.indexOf(id); i >= 0 {
		return c.cards[i].Clone(), true
	}
	return domain.Card{}, false
}

// Replace swaps in a freshly fetched collection.
func (c *Collection) Replace(cards []domain.Card) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cards = cloneCards(cards)
	c.version++
}

// Version increases on every change.
func (c *Collection) Version() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}

func (c *Collection) indexOf(id string) int {
	return slices.IndexFunc(c.cards, func(card domain.Card) bool { return card.ID == id })
}

// BeginEdit snapshots the collection and optimistically replaces the card
// with the same id as edited.
func (c *Collection) BeginEdit(edited *domain.Card) (*Tx, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(edited.ID)
	if i < 0 {
		return nil, apperr.NotFoundf("card %s not found", edited.ID)
	}

	tx := c.begin(edited.ID, i)
	next := slices.Clone(c.cards)
	next[i] = edited.Clone()
	c.cards = next
	c.version++
	tx.applied = c.version
	return tx, nil
}

// BeginDelete snapshots the collection and optimistically removes card id.
func (c *Collection) BeginDelete(id string) (*Tx, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return nil, apperr.NotFoundf("card %s not found", id)
	}

	tx := c.begin(id, i)
	c.cards = slices.Delete(slices.Clone(c.cards), i, i+1)
	c.version++
	tx.applied = c.version
	return tx, nil
}

// begin must be called with c.mu held.
func (c *Collection) begin(id string, index int) *Tx {
	return &Tx{
		coll:     c,
		id:       id,
		index:    index,
		prev:     c.cards[index].Clone(),
		snapshot: cloneCards(c.cards),
	}
}

func cloneCards(cards []domain.Card) []domain.Card {
	out := make([]domain.Card, len(cards))
	for i := range cards {
		out[i] = cards[i].Clone()
	}
	return out
}
