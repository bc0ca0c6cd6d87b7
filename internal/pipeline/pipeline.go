// Package pipeline runs the full derive-aggregate-report sequence over the
// raw catalog, replacing the persisted artifacts.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/animesense/animesense-server/internal/analytics"
	"github.com/animesense/animesense-server/internal/dataset"
	"github.com/animesense/animesense-server/internal/domain"
	"github.com/animesense/animesense-server/internal/nlp"
	"github.com/animesense/animesense-server/internal/report"
)

// Pipeline derives labels, expands genres, writes the trend tables and
// renders the insight report, all from one pass over the raw catalog.
type Pipeline struct {
	store    *dataset.Store
	detector *nlp.EmotionDetector
	logger   *slog.Logger
}

// New creates a pipeline over the given store and emotion detector.
func New(store *dataset.Store, detector *nlp.EmotionDetector, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		store:    store,
		detector: detector,
		logger:   logger,
	}
}

// Run executes the whole pipeline. Artifacts are written stage by stage in
// dependency order, so a failure part-way leaves earlier artifacts fresh
// and later ones stale; readers tolerate that window.
//
// The genre-expansion cache file is deliberately not rewritten here: it is
// a compute-if-absent artifact owned by the record store, regenerated only
// when missing.
func (p *Pipeline) Run(ctx context.Context) error {
	records, err := p.store.LoadRaw()
	if err != nil {
		return err
	}
	p.logger.Info("pipeline started", "records", len(records))

	// Stage 1: sentiment from rating thresholds.
	for _, r := range records {
		r.Sentiment = nlp.RatingToSentiment(r.Rating)
	}
	if err := p.store.SaveSentiment(records); err != nil {
		return fmt.Errorf("sentiment stage: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	// Stage 2: emotion from title polarity.
	for _, r := range records {
		r.Emotion = p.detector.Detect(r.Name)
	}
	if err := p.store.SaveEmotions(records); err != nil {
		return fmt.Errorf("emotion stage: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	// Stage 3: unified column set.
	if err := p.store.SaveUnified(records); err != nil {
		return fmt.Errorf("unified stage: %w", err)
	}

	// Stage 4: genre expansion and cross-tabulations.
	rows := dataset.ExpandGenres(records)

	opinion := analytics.NewCrossTab(rows, func(g *domain.GenreRow) string { return g.Sentiment })
	if err := p.store.WriteTable(dataset.OpinionTrendsFile, opinion.Header(), opinion.RowCells()); err != nil {
		return fmt.Errorf("opinion trends stage: %w", err)
	}

	emotion := analytics.NewCrossTab(rows, func(g *domain.GenreRow) string { return g.Emotion })
	if err := p.store.WriteTable(dataset.EmotionTrendsFile, emotion.Header(), emotion.RowCells()); err != nil {
		return fmt.Errorf("emotion trends stage: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	// Stage 5: insight report.
	if err := p.store.WriteReport(report.Build(records, rows)); err != nil {
		return fmt.Errorf("report stage: %w", err)
	}

	p.logger.Info("pipeline finished",
		"records", len(records),
		"genre_rows", len(rows),
		"genres", len(opinion.Genres),
	)
	return nil
}
