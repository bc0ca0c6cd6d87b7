package dataset

import (
	"math"
	"strconv"

	"github.com/animesense/animesense-server/internal/domain"
)

// SanitizeCell maps a raw CSV cell to a JSON-safe value: a blank cell
// becomes the Unknown sentinel, an infinite numeric value becomes "0".
// Already-clean cells pass through unchanged, so sanitizing twice is a
// no-op.
func SanitizeCell(cell string) string {
	if cell == "" {
		return domain.Unknown
	}
	if v, err := strconv.ParseFloat(cell, 64); err == nil && math.IsInf(v, 0) {
		return "0"
	}
	return cell
}

// SanitizeRecord sanitizes every field of a record in place.
func SanitizeRecord(r *domain.Record) {
	r.Name = SanitizeCell(r.Name)
	r.Genre = SanitizeCell(r.Genre)
	r.Type = SanitizeCell(r.Type)
	r.Episodes = SanitizeCell(r.Episodes)
	r.Rating = SanitizeCell(r.Rating)
	r.Members = SanitizeCell(r.Members)
	r.Sentiment = SanitizeCell(r.Sentiment)
	r.Emotion = SanitizeCell(r.Emotion)
}

// SanitizeGenreRow sanitizes every field of a genre row in place.
func SanitizeGenreRow(g *domain.GenreRow) {
	g.Name = SanitizeCell(g.Name)
	g.Genre = SanitizeCell(g.Genre)
	g.Type = SanitizeCell(g.Type)
	g.Episodes = SanitizeCell(g.Episodes)
	g.Rating = SanitizeCell(g.Rating)
	g.Members = SanitizeCell(g.Members)
	g.Sentiment = SanitizeCell(g.Sentiment)
	g.Emotion = SanitizeCell(g.Emotion)
}
