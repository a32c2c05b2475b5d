package catalog

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Ryuseikaiz/Ichu-Database/internal/domain"
)

// StatBarMax is the value at which a stat bar renders full.
const StatBarMax = 13000

// MaxStat is the largest stat ParseStat reads. Larger text is a fallback,
// which keeps the sum of three stats well inside int.
const MaxStat = 999_999_999_999

var groupPrinter = message.NewPrinter(language.English)

// ParseStat converts stored stat text to a non-negative integer.
// Grouping commas and surrounding space are ignored and leading digits are
// read the way a lenient integer parse would ("12abc" reads as 12). The bool
// reports whether the text was not a clean number, i.e. whether the value is
// a fallback. Empty text is a plain 0, not a fallback. Values above
// MaxStat read as a 0 fallback.
func ParseStat(raw string) (int, bool) {
	s := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if s == "" {
		return 0, false
	}

	neg := false
	i := 0
	if s[0] == '+' || s[0] == '-' {
		neg = s[0] == '-'
		i++
	}

	start := i
	n := 0
	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		n = n*10 + int(s[i]-'0')
		if n > MaxStat {
			return 0, true
		}
	}

	if i == start {
		return 0, true
	}
	if neg {
		return 0, true
	}
	return n, i != len(s)
}

// ValueOf returns the integer value of key in stats.
// StatTotal is the sum of the three attributes; unknown keys are 0.
func ValueOf(stats domain.Stats, key domain.StatKey) int {
	if key == domain.StatTotal {
		total := 0
		for _, k := range domain.AttributeKeys {
			total += ValueOf(stats, k)
		}
		return total
	}
	n, _ := ParseStat(stats.Raw(key))
	return n
}

// Total is shorthand for ValueOf(stats, StatTotal).
func Total(stats domain.Stats) int {
	return ValueOf(stats, domain.StatTotal)
}

// Format renders the stat total with grouping separators, e.g. "12,345".
func Format(stats domain.Stats) string {
	return FormatInt(Total(stats))
}

// FormatInt renders n with grouping separators.
func FormatInt(n int) string {
	return groupPrinter.Sprintf("%d", n)
}

// BarPercent returns how full a stat bar is for value, clamped to [0, 100].
func BarPercent(raw string, max int) int {
	if max <= 0 {
		return 0
	}
	n, _ := ParseStat(raw)
	pct := n * 100 / max
	if pct > 100 {
		return 100
	}
	return pct
}

// Fallback describes a stat whose text could not be read cleanly.
type Fallback struct {
	CardID string
	Key    domain.StatKey
	Raw    string
	Value  int
}

// Fallbacks lists every stat in cards that resolved through a fallback.
// Callers log these at debug level; they are never shown to users.
func Fallbacks(cards []domain.Card) []Fallback {
	var out []Fallback
	for i := range cards {
		for _, k := range domain.AttributeKeys {
			raw := cards[i].Stats.Raw(k)
			if n, fell := ParseStat(raw); fell {
				out = append(out, Fallback{CardID: cards[i].ID, Key: k, Raw: raw, Value: n})
			}
		}
	}
	return out
}
