package service

import (
	"log/slog"
	"os"

	"github.com/animesense/animesense-server/internal/analytics"
	"github.com/animesense/animesense-server/internal/dataset"
	"github.com/animesense/animesense-server/internal/domain"
)

// DefaultListLimit caps a record listing when the caller does not.
const DefaultListLimit = 100000

// DefaultGenreLimit is the top-genre truncation applied when the caller
// does not supply one.
const DefaultGenreLimit = 50

// CatalogService serves filtered record listings, label distributions and
// the persisted trend tables. Every call reads fresh from disk; there is no
// caching layer between requests and the artifacts.
type CatalogService struct {
	store  *dataset.Store
	logger *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(store *dataset.Store, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		store:  store,
		logger: logger,
	}
}

// RecordFilter narrows a record listing. Zero-valued optional fields match
// everything.
type RecordFilter struct {
	Limit     int
	Sentiment string
	MinRating float64
	MaxRating float64
	Type      string
	Genre     string
}

// DefaultFilter returns the filter applied when a caller supplies nothing.
func DefaultFilter() RecordFilter {
	return RecordFilter{
		Limit:     DefaultListLimit,
		MinRating: 0,
		MaxRating: 10,
	}
}

// ListRecords loads the freshest derived table and applies the filter.
// Records whose rating does not parse are dropped before the bound check,
// so they never appear in a listing regardless of the bounds.
func (s *CatalogService) ListRecords(filter RecordFilter) ([]*domain.Record, error) {
	table, err := s.store.LoadRecords()
	if err != nil {
		return nil, err
	}
	if filter.Limit <= 0 {
		filter.Limit = DefaultListLimit
	}

	out := make([]*domain.Record, 0, len(table.Records))
	for _, r := range table.Records {
		rating, ok := r.RatingValue()
		if !ok || rating < filter.MinRating || rating > filter.MaxRating {
			continue
		}
		if filter.Sentiment != "" && r.Sentiment != filter.Sentiment {
			continue
		}
		if filter.Type != "" && r.Type != filter.Type {
			continue
		}
		out = append(out, r)
	}

	if filter.Genre != "" {
		out = s.filterByGenre(out, filter.Genre)
	}

	if len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

// filterByGenre keeps records whose id appears in the genre-expansion table
// under the given genre. The join is by id because the listing table's own
// genre column holds the unsplit comma-separated value.
func (s *CatalogService) filterByGenre(records []*domain.Record, genre string) []*domain.Record {
	ids := make(map[int]bool)
	for _, row := range s.store.LoadGenres() {
		if row.Genre == genre {
			ids[row.AnimeID] = true
		}
	}

	out := make([]*domain.Record, 0, len(records))
	for _, r := range records {
		if ids[r.AnimeID] {
			out = append(out, r)
		}
	}
	return out
}

// SentimentDistribution returns sentiment label counts over the full table.
func (s *CatalogService) SentimentDistribution() ([]domain.LabelCount, error) {
	table, err := s.store.LoadRecords()
	if err != nil {
		return nil, err
	}
	labels := make([]string, 0, len(table.Records))
	for _, r := range table.Records {
		labels = append(labels, r.Sentiment)
	}
	return analytics.CountByLabel(labels), nil
}

// EmotionDistribution returns emotion label counts, or an empty slice when
// the loaded table predates emotion derivation.
func (s *CatalogService) EmotionDistribution() ([]domain.LabelCount, error) {
	table, err := s.store.LoadRecords()
	if err != nil {
		return nil, err
	}
	if !table.HasEmotion {
		return []domain.LabelCount{}, nil
	}
	labels := make([]string, 0, len(table.Records))
	for _, r := range table.Records {
		labels = append(labels, r.Emotion)
	}
	return analytics.CountByLabel(labels), nil
}

// TopGenres returns up to limit genre frequencies from the genre-expansion
// table. Like the table itself, it fails open to empty.
func (s *CatalogService) TopGenres(limit int) []domain.LabelCount {
	if limit <= 0 {
		limit = DefaultGenreLimit
	}
	return analytics.TopGenres(s.store.LoadGenres(), limit)
}

// OpinionTrends passes through the persisted genre-by-sentiment table.
// A missing artifact yields an empty slice, not an error.
func (s *CatalogService) OpinionTrends() ([]map[string]any, error) {
	return s.trendTable(dataset.OpinionTrendsFile)
}

// EmotionTrends passes through the persisted genre-by-emotion table.
func (s *CatalogService) EmotionTrends() ([]map[string]any, error) {
	return s.trendTable(dataset.EmotionTrendsFile)
}

func (s *CatalogService) trendTable(name string) ([]map[string]any, error) {
	table, err := s.store.ReadTable(name)
	if err != nil {
		if os.IsNotExist(err) {
			return []map[string]any{}, nil
		}
		return nil, err
	}
	return table.Records(), nil
}
