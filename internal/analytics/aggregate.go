// Package analytics computes the frequency and ratio aggregates served by
// the query endpoints and consumed by the insight report.
//
// Every aggregate is deterministic: wherever counts tie, the
// lexicographically smaller key wins, so "dominant sentiment" and "top
// genre" never depend on map iteration order.
package analytics

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/animesense/animesense-server/internal/domain"
)

// CountByLabel groups values by label and returns (label, count) pairs
// sorted by descending count, ties broken by ascending label.
func CountByLabel(values []string) []domain.LabelCount {
	counts := make(map[string]int)
	for _, v := range values {
		counts[v]++
	}
	return sortCounts(counts)
}

// Shares normalizes counts into proportions. The proportions sum to 1.0
// over all present labels.
func Shares(counts []domain.LabelCount) map[string]float64 {
	total := 0
	for _, c := range counts {
		total += c.Count
	}
	if total == 0 {
		return map[string]float64{}
	}

	shares := make(map[string]float64, len(counts))
	for _, c := range counts {
		shares[c.Label] = float64(c.Count) / float64(total)
	}
	return shares
}

// TopGenres counts genre rows per genre and returns up to limit pairs,
// most frequent first.
func TopGenres(rows []*domain.GenreRow, limit int) []domain.LabelCount {
	names := make([]string, len(rows))
	for i, g := range rows {
		names[i] = g.Genre
	}
	counts := CountByLabel(names)
	if limit > 0 && len(counts) > limit {
		counts = counts[:limit]
	}
	return counts
}

// Dominant returns the label with the highest count, which after sorting
// is simply the first entry.
func Dominant(counts []domain.LabelCount) (domain.LabelCount, bool) {
	if len(counts) == 0 {
		return domain.LabelCount{}, false
	}
	return counts[0], true
}

// MeanRating averages the parseable ratings, ignoring blank and
// non-numeric cells. ok is false when no rating parses.
func MeanRating(records []*domain.Record) (float64, bool) {
	var ratings []float64
	for _, r := range records {
		if v, ok := r.RatingValue(); ok {
			ratings = append(ratings, v)
		}
	}
	if len(ratings) == 0 {
		return 0, false
	}
	return stat.Mean(ratings, nil), true
}

// TypeMean is the mean rating of one type category.
type TypeMean struct {
	Type string
	Mean float64
}

// BestRatedType returns the type category with the highest mean rating.
// Records without a type or without a parseable rating are excluded; ok is
// false when nothing qualifies. Ties go to the lexicographically smaller
// type name.
func BestRatedType(records []*domain.Record) (TypeMean, bool) {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, r := range records {
		if r.Type == "" || r.Type == domain.Unknown {
			continue
		}
		v, ok := r.RatingValue()
		if !ok {
			continue
		}
		sums[r.Type] += v
		counts[r.Type]++
	}
	if len(counts) == 0 {
		return TypeMean{}, false
	}

	types := make([]string, 0, len(counts))
	for typ := range counts {
		types = append(types, typ)
	}
	sort.Strings(types)

	best := TypeMean{Type: types[0], Mean: sums[types[0]] / float64(counts[types[0]])}
	for _, typ := range types[1:] {
		mean := sums[typ] / float64(counts[typ])
		if mean > best.Mean {
			best = TypeMean{Type: typ, Mean: mean}
		}
	}
	return best, true
}

// sortCounts flattens a count map into descending-count order with
// ascending-label tie-break.
func sortCounts(counts map[string]int) []domain.LabelCount {
	out := make([]domain.LabelCount, 0, len(counts))
	for label, count := range counts {
		out = append(out, domain.LabelCount{Label: label, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}
