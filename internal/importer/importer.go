package importer

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Ryuseikaiz/Ichu-Database/internal/domain"
	"github.com/Ryuseikaiz/Ichu-Database/internal/id"
)

// ErrEmptySource is returned when the source file holds no cards.
var ErrEmptySource = errors.New("source contains no cards")

// Decode reads a JSON array of source cards.
func Decode(r io.Reader) ([]SourceCard, error) {
	var cards []SourceCard
	if err := json.NewDecoder(r).Decode(&cards); err != nil {
		return nil, fmt.Errorf("decode cards: %w", err)
	}
	if len(cards) == 0 {
		return nil, ErrEmptySource
	}
	return cards, nil
}

// ReadFile decodes the source file at path.
func ReadFile(path string) ([]SourceCard, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Decode(f)
}

// Convert collapses a source card into a catalog card.
//
// Only the idolized etoile row survives; a card without one gets all
// stats "0". The id is derived from the wiki URL so re-imports keep ids
// stable. Cards without a URL get a fresh random id.
func Convert(src *SourceCard) domain.Card {
	cardID := id.FromURL(src.URL)
	if cardID == "" {
		cardID = id.MustGenerate(id.PrefixCard)
	}

	stats := domain.Stats{}
	if e := src.Stats.Idolized.Etoile; e != nil {
		stats = domain.Stats{
			Wild: strings.TrimSpace(e.Wild),
			Pop:  strings.TrimSpace(e.Pop),
			Cool: strings.TrimSpace(e.Cool),
		}
	}

	return domain.Card{
		ID:          cardID,
		Name:        strings.TrimSpace(src.Name),
		URL:         strings.TrimSpace(src.URL),
		Images:      src.Images,
		Skill:       convertSkill(src.Skill),
		LeaderSkill: convertSkill(src.LeaderSkill),
		Stats:       stats.Normalized(),
		StatIcons:   src.StatIcons,
	}
}

func convertSkill(s *domain.Skill) *domain.Skill {
	if s == nil {
		return nil
	}
	out := &domain.Skill{
		Name:        strings.TrimSpace(s.Name),
		Description: htmlToText(strings.TrimSpace(s.Description)),
		Icon:        s.Icon,
	}
	if *out == (domain.Skill{}) {
		return nil
	}
	return out
}

// ConvertAll converts every source card, preserving order.
func ConvertAll(src []SourceCard, logger *slog.Logger) []domain.Card {
	if logger == nil {
		logger = slog.Default()
	}

	cards := make([]domain.Card, 0, len(src))
	for i := range src {
		c := Convert(&src[i])
		if src[i].Stats.Idolized.Etoile == nil {
			logger.Debug("card has no etoile stats", "name", c.Name)
		}
		cards = append(cards, c)
	}
	return cards
}
