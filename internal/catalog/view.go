package catalog

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Ryuseikaiz/Ichu-Database/internal/domain"
)

// Direction is a sort direction.
type Direction string

// Sort directions.
const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// ViewState is the caller-owned description of what the user is looking at.
type ViewState struct {
	Search    string
	Category  Category
	SortKey   domain.StatKey
	Direction Direction
	Page      int
	Density   Density
}

// DefaultView returns the initial view: every card by total, highest first.
func DefaultView() ViewState {
	return ViewState{
		Category:  CategoryAll,
		SortKey:   domain.StatTotal,
		Direction: Descending,
		Page:      1,
		Density:   DensityTable,
	}
}

// ToggleSort switches to key. Selecting the current key while descending
// flips to ascending; anything else sorts descending.
func (vs *ViewState) ToggleSort(key domain.StatKey) {
	if vs.SortKey == key && vs.Direction == Descending {
		vs.Direction = Ascending
	} else {
		vs.Direction = Descending
	}
	vs.SortKey = key
}

// PageSize returns the page size for the view's density.
func (vs ViewState) PageSize() int {
	return vs.Density.PageSize()
}

// ParseSortKey validates a sort key name.
func ParseSortKey(s string) (domain.StatKey, error) {
	k := domain.StatKey(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case domain.StatWild, domain.StatPop, domain.StatCool, domain.StatTotal:
		return k, nil
	}
	return "", fmt.Errorf("unknown sort key %q (want wild, pop, cool or total)", s)
}

// ParseDirection validates a direction name.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(strings.ToLower(strings.TrimSpace(s))); d {
	case Ascending, Descending:
		return d, nil
	}
	return "", fmt.Errorf("unknown sort direction %q (want asc or desc)", s)
}

// Apply filters and orders cards for display. It never mutates cards.
//
// Search matches a substring of the name or of either skill's name or
// description after lower-casing both sides. Lower-casing is not folding:
// "ss" does not match "Straße". The category filter keeps cards whose skill
// classifies as vs.Category. The sort is stable, so cards with equal values
// keep their input order in both directions.
func Apply(cards []domain.Card, vs ViewState) []domain.Card {
	lower := cases.Lower(language.Und)
	needle := lower.String(vs.Search)

	type keyed struct {
		card domain.Card
		val  int
	}

	sortKey := vs.SortKey
	if sortKey == "" {
		sortKey = domain.StatTotal
	}

	kept := make([]keyed, 0, len(cards))
	for i := range cards {
		c := &cards[i]
		if needle != "" && !matchesSearch(c, needle, lower) {
			continue
		}
		if vs.Category != "" && vs.Category != CategoryAll && Classify(c.Skill) != vs.Category {
			continue
		}
		kept = append(kept, keyed{card: *c, val: ValueOf(c.Stats, sortKey)})
	}

	slices.SortStableFunc(kept, func(a, b keyed) int {
		if vs.Direction == Ascending {
			return cmp.Compare(a.val, b.val)
		}
		return cmp.Compare(b.val, a.val)
	})

	out := make([]domain.Card, len(kept))
	for i := range kept {
		out[i] = kept[i].card
	}
	return out
}

func matchesSearch(c *domain.Card, needle string, lower cases.Caser) bool {
	fields := []string{c.Name}
	for _, s := range []*domain.Skill{c.Skill, c.LeaderSkill} {
		if s != nil {
			fields = append(fields, s.Name, s.Description)
		}
	}
	for _, f := range fields {
		if f != "" && strings.Contains(lower.String(f), needle) {
			return true
		}
	}
	return false
}
