package editor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Ryuseikaiz/Ichu-Database/internal/domain"
	apperr "github.com/Ryuseikaiz/Ichu-Database/internal/errors"
)

// DeletePrompt is the question put to the user before a delete.
const DeletePrompt = "Are you sure you want to delete this card?"

// Coordinator errors.
var (
	ErrBusy      = apperr.Conflict("A change to this card is already in progress.")
	ErrCancelled = apperr.Cancelled("Delete cancelled.")

	errNoCard = apperr.Validation("No card to save.")
)

// Messages shown for remote failures.
const (
	msgUnauthorized = "Unauthorized. Please login again."
	msgUpdateFailed = "Failed to update card"
	msgDeleteFailed = "Failed to delete card"
)

// RemoteStore is the catalog API as the coordinator needs it.
type RemoteStore interface {
	Authenticator
	List(ctx context.Context) ([]domain.Card, error)
	Update(ctx context.Context, token string, card *domain.Card) (*domain.Card, error)
	Delete(ctx context.Context, token, id string) error
}

// Confirmer asks the user to approve a destructive action.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) (bool, error)

// Confirm implements Confirmer.
func (f ConfirmFunc) Confirm(prompt string) (bool, error) { return f(prompt) }

// Op names a mutation.
type Op string

// Mutations.
const (
	OpEdit   Op = "edit"
	OpDelete Op = "delete"
)

// MutationError is returned by SubmitEdit and SubmitDelete. The collection
// is back in its prior state whenever one is returned.
type MutationError struct {
	Op     Op
	CardID string
	Err    error
}

func (e *MutationError) Error() string {
	return fmt.Sprintf("%s card %s: %v", e.Op, e.CardID, e.Err)
}

func (e *MutationError) Unwrap() error { return e.Err }

// Coordinator applies edits and deletes optimistically and reconciles them
// with the remote store. At most one change per card is in flight.
type Coordinator struct {
	coll   *Collection
	remote RemoteStore
	gate   *SessionGate
	logger *slog.Logger

	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewCoordinator creates a coordinator over coll.
func NewCoordinator(coll *Collection, remote RemoteStore, gate *SessionGate, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{
		coll:     coll,
		remote:   remote,
		gate:     gate,
		logger:   logger,
		inflight: make(map[string]struct{}),
	}
}

// Collection returns the coordinated collection.
func (c *Coordinator) Collection() *Collection { return c.coll }

// Refresh replaces the collection with the remote one.
func (c *Coordinator) Refresh(ctx context.Context) error {
	cards, err := c.remote.List(ctx)
	if err != nil {
		return err
	}
	c.coll.Replace(cards)
	c.logger.Debug("Collection refreshed", "cards", len(cards))
	return nil
}

// SubmitEdit replaces the card with edited's id. The edit shows in the
// collection immediately; the store's answer then replaces it, or the
// collection reverts if the store refuses.
func (c *Coordinator) SubmitEdit(ctx context.Context, edited *domain.Card) (*domain.Card, error) {
	if edited == nil {
		return nil, &MutationError{Op: OpEdit, Err: errNoCard}
	}
	token, err := c.gate.token()
	if err != nil {
		return nil, &MutationError{Op: OpEdit, CardID: edited.ID, Err: err}
	}
	if !c.acquire(edited.ID) {
		return nil, &MutationError{Op: OpEdit, CardID: edited.ID, Err: ErrBusy}
	}
	defer c.release(edited.ID)

	tx, err := c.coll.BeginEdit(edited)
	if err != nil {
		return nil, &MutationError{Op: OpEdit, CardID: edited.ID, Err: err}
	}

	stored, err := c.remote.Update(ctx, token, edited)
	if err != nil {
		tx.Rollback()
		c.logger.Warn("Edit reverted", "card_id", edited.ID, "error", err)
		return nil, &MutationError{Op: OpEdit, CardID: edited.ID, Err: remoteError(err, msgUpdateFailed)}
	}

	tx.Commit(stored)
	c.logger.Debug("Edit confirmed", "card_id", stored.ID)
	return stored, nil
}

// SubmitDelete removes card id after confirm approves. A declined
// confirmation returns ErrCancelled without touching anything.
func (c *Coordinator) SubmitDelete(ctx context.Context, id string, confirm Confirmer) error {
	token, err := c.gate.token()
	if err != nil {
		return &MutationError{Op: OpDelete, CardID: id, Err: err}
	}
	if !c.acquire(id) {
		return &MutationError{Op: OpDelete, CardID: id, Err: ErrBusy}
	}
	defer c.release(id)

	if confirm == nil {
		return &MutationError{Op: OpDelete, CardID: id, Err: ErrCancelled}
	}
	ok, err := confirm.Confirm(DeletePrompt)
	if err != nil {
		return &MutationError{Op: OpDelete, CardID: id, Err: err}
	}
	if !ok {
		return &MutationError{Op: OpDelete, CardID: id, Err: ErrCancelled}
	}

	tx, err := c.coll.BeginDelete(id)
	if err != nil {
		return &MutationError{Op: OpDelete, CardID: id, Err: err}
	}

	if err := c.remote.Delete(ctx, token, id); err != nil {
		tx.Rollback()
		c.logger.Warn("Delete reverted", "card_id", id, "error", err)
		return &MutationError{Op: OpDelete, CardID: id, Err: remoteError(err, msgDeleteFailed)}
	}

	tx.Commit(nil)
	c.logger.Debug("Delete confirmed", "card_id", id)
	return nil
}

func (c *Coordinator) acquire(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, busy := c.inflight[id]; busy {
		return false
	}
	c.inflight[id] = struct{}{}
	return true
}

func (c *Coordinator) release(id string) {
	c.mu.Lock()
	delete(c.inflight, id)
	c.mu.Unlock()
}

// remoteError sorts a store failure into UNAUTHORIZED, NOT_FOUND or
// REMOTE_ERROR.
func remoteError(err error, fallback string) error {
	switch apperr.CodeOf(err) {
	case apperr.CodeUnauthorized, apperr.CodeTokenExpired, apperr.CodeInvalidCredentials:
		return apperr.Wrap(err, apperr.CodeUnauthorized, msgUnauthorized)
	case apperr.CodeNotFound:
		return apperr.Wrap(err, apperr.CodeNotFound, "This card no longer exists.")
	default:
		return apperr.Wrap(err, apperr.CodeRemote, fallback)
	}
}

// UserMessage renders a coordinator error for display. Cancellations
// render as the empty string.
func UserMessage(err error) string {
	if err == nil || errors.Is(err, ErrCancelled) {
		return ""
	}

	msg := err.Error()
	var ae *apperr.Error
	if errors.As(err, &ae) {
		msg = ae.Message
	}

	var me *MutationError
	if errors.As(err, &me) {
		switch me.Op {
		case OpEdit:
			return "Error saving card: " + msg
		case OpDelete:
			return "Error deleting card: " + msg
		}
	}
	return msg
}
