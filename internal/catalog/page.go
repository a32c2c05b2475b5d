package catalog

import (
	"fmt"
	"strings"

	"github.com/Ryuseikaiz/Ichu-Database/internal/domain"
)

// Density is the display layout, which fixes the page size.
type Density string

// Display densities.
const (
	DensityTable Density = "table"
	DensityGrid  Density = "grid"
)

// Page sizes per density.
const (
	PageSizeTable = 50
	PageSizeGrid  = 24
)

// PageSize returns the number of cards shown per page.
func (d Density) PageSize() int {
	if d == DensityGrid {
		return PageSizeGrid
	}
	return PageSizeTable
}

// ParseDensity validates a density name.
func ParseDensity(s string) (Density, error) {
	switch d := Density(strings.ToLower(strings.TrimSpace(s))); d {
	case DensityTable, DensityGrid:
		return d, nil
	}
	return "", fmt.Errorf("unknown density %q (want table or grid)", s)
}

// Page returns the 1-based page pageIndex of cards and the total page count,
// which is at least 1. An out-of-range index yields an empty page; callers
// clamp with ClampPage first. A pageSize below 1 puts everything on one page.
func Page(cards []domain.Card, pageIndex, pageSize int) ([]domain.Card, int) {
	if pageSize < 1 {
		pageSize = max(len(cards), 1)
	}

	total := TotalPages(len(cards), pageSize)
	if pageIndex < 1 {
		return []domain.Card{}, total
	}

	start := (pageIndex - 1) * pageSize
	if start >= len(cards) {
		return []domain.Card{}, total
	}
	end := min(start+pageSize, len(cards))
	return cards[start:end], total
}

// TotalPages returns ceil(count/pageSize), at least 1.
func TotalPages(count, pageSize int) int {
	if pageSize < 1 || count == 0 {
		return 1
	}
	return (count + pageSize - 1) / pageSize
}

// ClampPage keeps page within [1, totalPages].
func ClampPage(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	return min(max(page, 1), totalPages)
}
