package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/animesense/animesense-server/internal/domain"
	"github.com/animesense/animesense-server/internal/service"
)

func (s *Server) registerCatalogRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listSentiments",
		Method:      http.MethodGet,
		Path:        "/api/sentiments",
		Summary:     "List records",
		Description: "Returns sentiment-labeled records, optionally filtered",
		Tags:        []string{"Catalog"},
	}, s.handleListSentiments)

	huma.Register(s.api, huma.Operation{
		OperationID: "sentimentDistribution",
		Method:      http.MethodGet,
		Path:        "/api/sentiment-distribution",
		Summary:     "Sentiment distribution",
		Description: "Returns sentiment label counts over the whole catalog",
		Tags:        []string{"Catalog"},
	}, s.handleSentimentDistribution)

	huma.Register(s.api, huma.Operation{
		OperationID: "emotionDistribution",
		Method:      http.MethodGet,
		Path:        "/api/emotion-distribution",
		Summary:     "Emotion distribution",
		Description: "Returns emotion label counts over the whole catalog",
		Tags:        []string{"Catalog"},
	}, s.handleEmotionDistribution)

	huma.Register(s.api, huma.Operation{
		OperationID: "topGenres",
		Method:      http.MethodGet,
		Path:        "/api/genres-top",
		Summary:     "Top genres",
		Description: "Returns the most frequent genres",
		Tags:        []string{"Catalog"},
	}, s.handleTopGenres)

	huma.Register(s.api, huma.Operation{
		OperationID: "opinionTrends",
		Method:      http.MethodGet,
		Path:        "/api/opinion-trends",
		Summary:     "Opinion trends",
		Description: "Returns the genre-by-sentiment count table",
		Tags:        []string{"Trends"},
	}, s.handleOpinionTrends)

	huma.Register(s.api, huma.Operation{
		OperationID: "emotionTrends",
		Method:      http.MethodGet,
		Path:        "/api/emotion-trends",
		Summary:     "Emotion trends",
		Description: "Returns the genre-by-emotion count table",
		Tags:        []string{"Trends"},
	}, s.handleEmotionTrends)
}

// === DTOs ===

// ListSentimentsInput contains filter parameters for listing records.
type ListSentimentsInput struct {
	Limit     int     `query:"limit" default:"100000" minimum:"1" doc:"Maximum rows returned"`
	Sentiment string  `query:"sentiment" doc:"Exact sentiment label"`
	MinRating float64 `query:"min_rating" default:"0" doc:"Inclusive lower rating bound"`
	MaxRating float64 `query:"max_rating" default:"10" doc:"Inclusive upper rating bound"`
	AnimeType string  `query:"anime_type" doc:"Exact type, e.g. TV or Movie"`
	Genre     string  `query:"genre" doc:"Genre name, matched via the genre expansion table"`
}

// ListSentimentsOutput wraps the record listing for Huma.
type ListSentimentsOutput struct {
	Body []*domain.Record
}

// SentimentCount is one row of the sentiment distribution.
type SentimentCount struct {
	Sentiment string `json:"sentiment" doc:"Sentiment label"`
	Count     int    `json:"count" doc:"Records with this label"`
}

// SentimentDistributionOutput wraps the sentiment distribution for Huma.
type SentimentDistributionOutput struct {
	Body []SentimentCount
}

// EmotionCount is one row of the emotion distribution.
type EmotionCount struct {
	Emotion string `json:"emotion" doc:"Emotion label"`
	Count   int    `json:"count" doc:"Records with this label"`
}

// EmotionDistributionOutput wraps the emotion distribution for Huma.
type EmotionDistributionOutput struct {
	Body []EmotionCount
}

// TopGenresInput contains parameters for the genre frequency listing.
type TopGenresInput struct {
	Limit int `query:"limit" default:"50" minimum:"1" doc:"Maximum genres returned"`
}

// GenreCount is one row of the genre frequency listing.
type GenreCount struct {
	Genre string `json:"genre" doc:"Genre name"`
	Count int    `json:"count" doc:"Expanded rows with this genre"`
}

// TopGenresOutput wraps the genre frequency listing for Huma.
type TopGenresOutput struct {
	Body []GenreCount
}

// TrendsOutput wraps a cross-tabulation table for Huma. Columns vary with
// the labels observed in the data, so rows stay dynamic.
type TrendsOutput struct {
	Body []map[string]any
}

// === Handlers ===

func (s *Server) handleListSentiments(_ context.Context, input *ListSentimentsInput) (*ListSentimentsOutput, error) {
	records, err := s.services.Catalog.ListRecords(service.RecordFilter{
		Limit:     input.Limit,
		Sentiment: input.Sentiment,
		MinRating: input.MinRating,
		MaxRating: input.MaxRating,
		Type:      input.AnimeType,
		Genre:     input.Genre,
	})
	if err != nil {
		return nil, err
	}
	return &ListSentimentsOutput{Body: records}, nil
}

func (s *Server) handleSentimentDistribution(_ context.Context, _ *struct{}) (*SentimentDistributionOutput, error) {
	counts, err := s.services.Catalog.SentimentDistribution()
	if err != nil {
		return nil, err
	}
	out := make([]SentimentCount, 0, len(counts))
	for _, c := range counts {
		out = append(out, SentimentCount{Sentiment: c.Label, Count: c.Count})
	}
	return &SentimentDistributionOutput{Body: out}, nil
}

func (s *Server) handleEmotionDistribution(_ context.Context, _ *struct{}) (*EmotionDistributionOutput, error) {
	counts, err := s.services.Catalog.EmotionDistribution()
	if err != nil {
		return nil, err
	}
	out := make([]EmotionCount, 0, len(counts))
	for _, c := range counts {
		out = append(out, EmotionCount{Emotion: c.Label, Count: c.Count})
	}
	return &EmotionDistributionOutput{Body: out}, nil
}

func (s *Server) handleTopGenres(_ context.Context, input *TopGenresInput) (*TopGenresOutput, error) {
	counts := s.services.Catalog.TopGenres(input.Limit)
	out := make([]GenreCount, 0, len(counts))
	for _, c := range counts {
		out = append(out, GenreCount{Genre: c.Label, Count: c.Count})
	}
	return &TopGenresOutput{Body: out}, nil
}

func (s *Server) handleOpinionTrends(_ context.Context, _ *struct{}) (*TrendsOutput, error) {
	rows, err := s.services.Catalog.OpinionTrends()
	if err != nil {
		return nil, err
	}
	return &TrendsOutput{Body: rows}, nil
}

func (s *Server) handleEmotionTrends(_ context.Context, _ *struct{}) (*TrendsOutput, error) {
	rows, err := s.services.Catalog.EmotionTrends()
	if err != nil {
		return nil, err
	}
	return &TrendsOutput{Body: rows}, nil
}
