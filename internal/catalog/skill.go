package catalog

import (
	"fmt"
	"strings"

	"github.com/Ryuseikaiz/Ichu-Database/internal/domain"
)

// Category is the heuristic skill type used for filtering.
type Category string

// Skill categories.
const (
	CategoryScore   Category = "score"
	CategoryPerfect Category = "perfect"
	CategoryHealer  Category = "healer"
	CategoryWild    Category = "wild"
	CategoryPop     Category = "pop"
	CategoryCool    Category = "cool"
	CategorySupport Category = "support"
	CategoryOther   Category = "other"

	// CategoryAll disables the category filter. Classify never returns it.
	CategoryAll Category = "all"
)

// Categories lists every category Classify can return, in rule order.
var Categories = []Category{
	CategoryScore, CategoryPerfect, CategoryHealer,
	CategoryWild, CategoryPop, CategoryCool,
	CategorySupport, CategoryOther,
}

// ParseCategory validates a category name. "all" is accepted.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if c == CategoryAll {
		return c, nil
	}
	for _, known := range Categories {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown skill category %q", s)
}

type rule struct {
	category Category
	phrases  []string
}

// rules are evaluated in order; the first match wins.
var rules = []rule{
	{CategoryScore, []string{"score boost", "score increased", "score value", "total score is increased"}},
	{CategoryPerfect, []string{"tap judgment", "changed to perfect", "disregarded"}},
	{CategoryHealer, []string{"stamina is restored", "restored by", "restore"}},
	{CategoryWild, []string{"wild is increased", "wild attribute is boosted"}},
	{CategoryPop, []string{"pop is increased", "pop attribute is boosted"}},
	{CategoryCool, []string{"cool is increased", "cool attribute is boosted"}},
	{CategorySupport, []string{"exp earned", "affection points", "coins earned", "bonding points"}},
}

const genericBoost = "attribute is boosted"

// Classify returns the category of skill. A nil skill or one without a
// description is CategoryOther.
func Classify(skill *domain.Skill) Category {
	if skill == nil || skill.Description == "" {
		return CategoryOther
	}
	desc := strings.ToLower(skill.Description)

	for _, r := range rules {
		for _, p := range r.phrases {
			if strings.Contains(desc, p) {
				return r.category
			}
		}
	}

	// Team boosts phrased as "The Team's COOL Attribute is boosted".
	if strings.Contains(desc, genericBoost) {
		switch {
		case strings.Contains(desc, "wild"):
			return CategoryWild
		case strings.Contains(desc, "pop"):
			return CategoryPop
		case strings.Contains(desc, "cool"):
			return CategoryCool
		}
		return CategorySupport
	}

	return CategoryOther
}
