package catalog

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/Ryuseikaiz/Ichu-Database/internal/domain"
)

func manyCards(n int) []domain.Card {
	out := make([]domain.Card, n)
	for i := range out {
		out[i] = card(fmt.Sprintf("c%03d", i), fmt.Sprint(i%7*100), fmt.Sprint(i%3*10), "0")
	}
	return out
}

func TestPage_TotalPages(t *testing.T) {
	tests := []struct {
		count, size, want int
	}{
		{0, 50, 1},
		{1, 50, 1},
		{50, 50, 1},
		{51, 50, 2},
		{100, 24, 5},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d/%d", tt.count, tt.size), func(t *testing.T) {
			_, total := Page(manyCards(tt.count), 1, tt.size)
			assert.Equal(t, tt.want, total)
		})
	}
}

func TestPage_OutOfRangeIsEmpty(t *testing.T) {
	items, total := Page(manyCards(10), 3, 5)
	assert.Empty(t, items)
	assert.Equal(t, 2, total)

	items, _ = Page(manyCards(10), 0, 5)
	assert.Empty(t, items)
}

func TestPage_ConcatenationReconstructsView(t *testing.T) {
	for _, density := range []Density{DensityTable, DensityGrid} {
		t.Run(string(density), func(t *testing.T) {
			vs := DefaultView()
			vs.Density = density
			ordered := Apply(manyCards(137), vs)

			_, total := Page(ordered, 1, vs.PageSize())
			var joined []domain.Card
			for p := 1; p <= total; p++ {
				items, _ := Page(ordered, p, vs.PageSize())
				joined = append(joined, items...)
			}

			if diff := cmp.Diff(ids(ordered), ids(joined)); diff != "" {
				t.Errorf("pages do not reconstruct the view (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDensity_PageSize(t *testing.T) {
	assert.Equal(t, 50, DensityTable.PageSize())
	assert.Equal(t, 24, DensityGrid.PageSize())
	assert.Equal(t, 50, Density("").PageSize())
}

func TestClampPage(t *testing.T) {
	assert.Equal(t, 1, ClampPage(0, 3))
	assert.Equal(t, 3, ClampPage(9, 3))
	assert.Equal(t, 2, ClampPage(2, 3))
	assert.Equal(t, 1, ClampPage(5, 0))
}

func TestParseDensity(t *testing.T) {
	d, err := ParseDensity(" Grid ")
	assert.NoError(t, err)
	assert.Equal(t, DensityGrid, d)

	_, err = ParseDensity("cozy")
	assert.Error(t, err)
}
