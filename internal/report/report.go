// Package report renders the four-line insight summary persisted after
// every pipeline run.
package report

import (
	"fmt"
	"strings"

	"github.com/animesense/animesense-server/internal/analytics"
	"github.com/animesense/animesense-server/internal/domain"
)

// Fallback sentences, emitted when an aggregate carries no signal.
const (
	fallbackSentiment = "- No sentiment data available."
	fallbackGenres    = "- Not enough data to compare positive/negative genres."
	fallbackEmotion   = "- No strong emotional signals detected in the dataset."
	fallbackType      = "- No type-level insights available."
)

// Build renders the report from the labeled record table and its genre
// expansion. Four sentences, one per line: dominant sentiment, most
// positive/negative genres, leading emotion, best-rated type. Each
// degrades to a fixed fallback rather than failing.
func Build(records []*domain.Record, genreRows []*domain.GenreRow) string {
	lines := []string{
		sentimentLine(records),
		genreLine(genreRows),
		emotionLine(genreRows),
		typeLine(records),
	}
	return strings.Join(lines, "\n") + "\n"
}

func sentimentLine(records []*domain.Record) string {
	labels := make([]string, len(records))
	for i, r := range records {
		labels[i] = r.Sentiment
	}
	counts := analytics.CountByLabel(labels)
	dominant, ok := analytics.Dominant(counts)
	if !ok {
		return fallbackSentiment
	}
	pct := analytics.Shares(counts)[dominant.Label] * 100
	return fmt.Sprintf("- **%s** dominates (%.1f%%), showing how fans generally feel.", dominant.Label, pct)
}

func genreLine(genreRows []*domain.GenreRow) string {
	ct := analytics.NewCrossTab(genreRows, func(g *domain.GenreRow) string { return g.Sentiment })
	if !ct.HasLabel(domain.SentimentPositive) || !ct.HasLabel(domain.SentimentNegative) {
		return fallbackGenres
	}
	mostPositive, _ := ct.MaxRatioGenre(domain.SentimentPositive)
	mostNegative, _ := ct.MaxRatioGenre(domain.SentimentNegative)
	return fmt.Sprintf("- **%s** tends to have the most positive sentiment, while **%s** leans negative.", mostPositive, mostNegative)
}

func emotionLine(genreRows []*domain.GenreRow) string {
	ct := analytics.NewCrossTab(genreRows, func(g *domain.GenreRow) string { return g.Emotion })
	totals := ct.LabelTotals()
	if len(totals) == 0 {
		return fallbackEmotion
	}
	return fmt.Sprintf("- The leading emotion across anime titles is **%s**, shaping audience expectations.", totals[0].Label)
}

func typeLine(records []*domain.Record) string {
	best, ok := analytics.BestRatedType(records)
	if !ok {
		return fallbackType
	}
	return fmt.Sprintf("- On average, **%s** are rated highest (%.2f).", best.Type, best.Mean)
}
