package store

import (
	"context"
	"errors"
	"strings"

	"github.com/Ryuseikaiz/Ichu-Database/internal/domain"
)

func normalizeUsername(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// initEditors indexes editors by case-insensitive username.
func (s *Store) initEditors() {
	s.Editors = NewEntity[domain.Editor](s, "editor:").
		WithIndexTransform("username",
			func(e *domain.Editor) []string {
				return []string{normalizeUsername(e.Username)}
			},
			normalizeUsername,
		)
}

// GetEditorByUsername looks an editor up by username, ignoring case.
func (s *Store) GetEditorByUsername(ctx context.Context, username string) (*domain.Editor, error) {
	return s.Editors.GetByIndex(ctx, "username", username)
}

// SaveEditor creates the editor or replaces the stored one with the same id.
func (s *Store) SaveEditor(ctx context.Context, e *domain.Editor) error {
	err := s.Editors.Update(ctx, e.ID, e)
	if errors.Is(err, ErrNotFound) {
		return s.Editors.Create(ctx, e.ID, e)
	}
	return err
}
