package service

import (
	"log/slog"
	"time"

	"github.com/animesense/animesense-server/internal/analytics"
	"github.com/animesense/animesense-server/internal/dataset"
	"github.com/animesense/animesense-server/internal/domain"
)

// MissingReportText is served when no report artifact exists yet.
const MissingReportText = "Insights not yet generated. Run the pipeline."

// InsightStats is the live-recomputed stats bundle accompanying the report.
type InsightStats struct {
	TotalAnime            int                `json:"total_anime"`
	AvgRating             *float64           `json:"avg_rating,omitempty"`
	SentimentDistribution map[string]float64 `json:"sentiment_distribution"`
	TopGenre              string             `json:"top_genre,omitempty"`
}

// InsightSummary bundles the persisted report with stats recomputed from the
// current record table. When the table cannot be loaded, only Markdown and
// Error are populated.
type InsightSummary struct {
	Markdown    string         `json:"markdown"`
	LastUpdated string         `json:"last_updated,omitempty"`
	Error       string         `json:"error,omitempty"`
	Stats       *InsightStats  `json:"stats,omitempty"`
	Sentiments  map[string]int `json:"sentiments,omitempty"`
	Emotions    map[string]int `json:"emotions,omitempty"`
	Genres      map[string]int `json:"genres,omitempty"`
}

// InsightService serves the report text plus live dataset statistics.
type InsightService struct {
	store  *dataset.Store
	logger *slog.Logger
}

// NewInsightService creates a new insight service.
func NewInsightService(store *dataset.Store, logger *slog.Logger) *InsightService {
	return &InsightService{
		store:  store,
		logger: logger,
	}
}

// Summary never fails: a missing report falls back to a fixed notice, and a
// record-load failure is reported inside the payload rather than raised.
func (s *InsightService) Summary() *InsightSummary {
	out := &InsightSummary{Markdown: MissingReportText}

	if text, mtime, err := s.store.ReadReport(); err == nil {
		out.Markdown = text
		out.LastUpdated = mtime.UTC().Format(time.RFC3339)
	}

	table, err := s.store.LoadRecords()
	if err != nil {
		s.logger.Warn("insight stats unavailable", "error", err)
		out.Error = "Failed to load dataset: " + err.Error()
		return out
	}

	stats := &InsightStats{
		TotalAnime:            len(table.Records),
		SentimentDistribution: map[string]float64{},
	}
	if mean, ok := analytics.MeanRating(table.Records); ok {
		stats.AvgRating = &mean
	}

	sentiments := make([]string, 0, len(table.Records))
	for _, r := range table.Records {
		sentiments = append(sentiments, r.Sentiment)
	}
	sentimentCounts := analytics.CountByLabel(sentiments)
	stats.SentimentDistribution = analytics.Shares(sentimentCounts)
	out.Sentiments = countMap(sentimentCounts)

	if table.HasEmotion {
		emotions := make([]string, 0, len(table.Records))
		for _, r := range table.Records {
			emotions = append(emotions, r.Emotion)
		}
		out.Emotions = countMap(analytics.CountByLabel(emotions))
	}

	genreCounts := analytics.TopGenres(s.store.LoadGenres(), 10)
	out.Genres = countMap(genreCounts)
	if top, ok := analytics.Dominant(genreCounts); ok {
		stats.TopGenre = top.Label
	}

	out.Stats = stats
	return out
}

func countMap(counts []domain.LabelCount) map[string]int {
	out := make(map[string]int, len(counts))
	for _, c := range counts {
		out[c.Label] = c.Count
	}
	return out
}
