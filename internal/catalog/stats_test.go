package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Ryuseikaiz/Ichu-Database/internal/domain"
)

func TestParseStat(t *testing.T) {
	tests := []struct {
		raw      string
		want     int
		fallback bool
	}{
		{"", 0, false},
		{"0", 0, false},
		{"1,234", 1234, false},
		{" 12,345 ", 12345, false},
		{"+42", 42, false},
		{"abc", 0, true},
		{"12abc", 12, true},
		{"-500", 0, true},
		{"99999999999999999999999", 0, true},
		{"999,999,999,999", MaxStat, false},
		{"1,000,000,000,000", 0, true},
		{"9223372036854775799", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, fell := ParseStat(tt.raw)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.fallback, fell)
		})
	}
}

func TestValueOf_CommaGroupedAndMissing(t *testing.T) {
	stats := domain.Stats{Wild: "1,234", Cool: "500"}

	assert.Equal(t, 1234, ValueOf(stats, domain.StatWild))
	assert.Equal(t, 0, ValueOf(stats, domain.StatPop))
	assert.Equal(t, 500, ValueOf(stats, domain.StatCool))
	assert.Equal(t, 1734, ValueOf(stats, domain.StatTotal))
	assert.Equal(t, 0, ValueOf(stats, domain.StatKey("charm")))
}

func TestValueOf_TotalNeverNegative(t *testing.T) {
	huge := domain.Stats{Wild: "9223372036854775799", Pop: "9223372036854775799", Cool: "0"}
	assert.Equal(t, 0, Total(huge))
	assert.Equal(t, "0", Format(huge))

	maxed := domain.Stats{Wild: "999999999999", Pop: "999999999999", Cool: "999999999999"}
	assert.Equal(t, 3*MaxStat, Total(maxed))
	assert.Positive(t, Total(maxed))
}

func TestFormat_MatchesSortValue(t *testing.T) {
	stats := domain.Stats{Wild: "4,321", Pop: "4,000", Cool: "4,100"}

	assert.Equal(t, 12421, Total(stats))
	assert.Equal(t, "12,421", Format(stats))
	assert.Equal(t, "0", Format(domain.Stats{}))
}

func TestBarPercent(t *testing.T) {
	assert.Equal(t, 50, BarPercent("6,500", StatBarMax))
	assert.Equal(t, 100, BarPercent("20000", StatBarMax))
	assert.Equal(t, 0, BarPercent("n/a", StatBarMax))
	assert.Equal(t, 0, BarPercent("100", 0))
}

func TestFallbacks(t *testing.T) {
	cards := []domain.Card{
		{ID: "a", Stats: domain.Stats{Wild: "1,000", Pop: "??", Cool: "0"}},
		{ID: "b", Stats: domain.Stats{Wild: "12x"}},
	}

	got := Fallbacks(cards)

	assert.Equal(t, []Fallback{
		{CardID: "a", Key: domain.StatPop, Raw: "??", Value: 0},
		{CardID: "b", Key: domain.StatWild, Raw: "12x", Value: 12},
	}, got)
}
