package analytics

import (
	"sort"
	"strconv"

	"github.com/animesense/animesense-server/internal/domain"
)

// CrossTab is a two-key frequency grid over genre rows. The grid is
// complete: every (genre, label) combination observed anywhere in the
// input has a cell, zero-filled when that pairing never occurs. Genres and
// labels are sorted ascending.
type CrossTab struct {
	Genres []string
	Labels []string
	Counts map[string]map[string]int
}

// NewCrossTab tabulates genre rows against a secondary label selected by
// labelOf.
func NewCrossTab(rows []*domain.GenreRow, labelOf func(*domain.GenreRow) string) *CrossTab {
	genreSet := make(map[string]bool)
	labelSet := make(map[string]bool)
	counts := make(map[string]map[string]int)

	for _, g := range rows {
		label := labelOf(g)
		genreSet[g.Genre] = true
		labelSet[label] = true
		if counts[g.Genre] == nil {
			counts[g.Genre] = make(map[string]int)
		}
		counts[g.Genre][label]++
	}

	ct := &CrossTab{
		Genres: sortedKeys(genreSet),
		Labels: sortedKeys(labelSet),
		Counts: counts,
	}

	// Zero-fill absent combinations so the grid is dense.
	for _, genre := range ct.Genres {
		if ct.Counts[genre] == nil {
			ct.Counts[genre] = make(map[string]int)
		}
		for _, label := range ct.Labels {
			if _, ok := ct.Counts[genre][label]; !ok {
				ct.Counts[genre][label] = 0
			}
		}
	}
	return ct
}

// Count returns one cell of the grid.
func (ct *CrossTab) Count(genre, label string) int {
	return ct.Counts[genre][label]
}

// HasLabel reports whether the label column exists in the grid.
func (ct *CrossTab) HasLabel(label string) bool {
	for _, l := range ct.Labels {
		if l == label {
			return true
		}
	}
	return false
}

// RowTotal sums one genre's row across all labels.
func (ct *CrossTab) RowTotal(genre string) int {
	total := 0
	for _, label := range ct.Labels {
		total += ct.Counts[genre][label]
	}
	return total
}

// Ratio returns the cell count divided by its row total, 0 for an empty
// row.
func (ct *CrossTab) Ratio(genre, label string) float64 {
	total := ct.RowTotal(genre)
	if total == 0 {
		return 0
	}
	return float64(ct.Counts[genre][label]) / float64(total)
}

// MaxRatioGenre returns the genre whose row has the highest ratio for the
// given label. Ties go to the lexicographically smaller genre, which is
// the iteration order of the sorted genre list.
func (ct *CrossTab) MaxRatioGenre(label string) (string, bool) {
	if len(ct.Genres) == 0 || !ct.HasLabel(label) {
		return "", false
	}
	best := ct.Genres[0]
	bestRatio := ct.Ratio(best, label)
	for _, genre := range ct.Genres[1:] {
		if r := ct.Ratio(genre, label); r > bestRatio {
			best, bestRatio = genre, r
		}
	}
	return best, true
}

// LabelTotals sums each label column across all genres, returned in
// descending-total order with ascending-label tie-break.
func (ct *CrossTab) LabelTotals() []domain.LabelCount {
	totals := make(map[string]int, len(ct.Labels))
	for _, genre := range ct.Genres {
		for _, label := range ct.Labels {
			totals[label] += ct.Counts[genre][label]
		}
	}
	return sortCounts(totals)
}

// Header returns the CSV header for the persisted grid: the genre key
// column followed by one column per label.
func (ct *CrossTab) Header() []string {
	return append([]string{"genre"}, ct.Labels...)
}

// RowCells returns the CSV rows for the persisted grid, one per genre in
// sorted order.
func (ct *CrossTab) RowCells() [][]string {
	rows := make([][]string, 0, len(ct.Genres))
	for _, genre := range ct.Genres {
		row := make([]string, 0, len(ct.Labels)+1)
		row = append(row, genre)
		for _, label := range ct.Labels {
			row = append(row, strconv.Itoa(ct.Counts[genre][label]))
		}
		rows = append(rows, row)
	}
	return rows
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
