package dataset

import (
	"strings"

	"github.com/animesense/animesense-server/internal/domain"
)

// ExpandGenres explodes the multi-valued genre column into one row per
// (record, genre) pair. Records without genre data produce no rows; all
// other fields are copied unchanged. The split separator is exactly
// comma-space, so the row count for a genre equals the number of records
// listing it.
func ExpandGenres(records []*domain.Record) []*domain.GenreRow {
	var rows []*domain.GenreRow
	for _, r := range records {
		if !r.HasGenre() {
			continue
		}
		for _, genre := range strings.Split(r.Genre, domain.GenreSeparator) {
			rows = append(rows, &domain.GenreRow{
				AnimeID:   r.AnimeID,
				Name:      r.Name,
				Genre:     genre,
				Type:      r.Type,
				Episodes:  r.Episodes,
				Rating:    r.Rating,
				Members:   r.Members,
				Sentiment: r.Sentiment,
				Emotion:   r.Emotion,
			})
		}
	}
	return rows
}
