package editor

import (
	"slices"

	"github.com/Ryuseikaiz/Ichu-Database/internal/domain"
)

// Tx is one optimistic change to a Collection. It ends with exactly one
// Commit or Rollback; later calls are no-ops.
type Tx struct {
	coll     *Collection
	id       string
	index    int
	prev     domain.Card
	snapshot []domain.Card
	applied  uint64
	done     bool
}

// ID returns the card the transaction changes.
func (tx *Tx) ID() string { return tx.id }

// Snapshot returns the collection as it was before the change.
func (tx *Tx) Snapshot() []domain.Card {
	return cloneCards(tx.snapshot)
}

// Commit confirms the change. For an edit, stored is the authoritative
// card returned by the remote store and replaces the optimistic one.
// Pass nil for a delete.
func (tx *Tx) Commit(stored *domain.Card) {
	c := tx.coll
	c.mu.Lock()
	defer c.mu.Unlock()

	if tx.done {
		return
	}
	tx.done = true

	if stored == nil {
		return
	}
	if i := c.indexOf(stored.ID); i >= 0 {
		next := slices.Clone(c.cards)
		next[i] = stored.Clone()
		c.cards = next
		c.version++
	}
}

// Rollback undoes the change. When nothing else touched the collection
// since the change was applied, the snapshot is restored as is. Otherwise
// only this card is put back, at its old position.
func (tx *Tx) Rollback() {
	c := tx.coll
	c.mu.Lock()
	defer c.mu.Unlock()

	if tx.done {
		return
	}
	tx.done = true

	if c.version == tx.applied {
		c.cards = cloneCards(tx.snapshot)
		c.version++
		return
	}

	next := slices.Clone(c.cards)
	if i := c.indexOf(tx.id); i >= 0 {
		next[i] = tx.prev.Clone()
	} else {
		next = slices.Insert(next, min(tx.index, len(next)), tx.prev.Clone())
	}
	c.cards = next
	c.version++
}
