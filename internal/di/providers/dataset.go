package providers

import (
	"fmt"
	"os"

	"github.com/samber/do/v2"

	"github.com/animesense/animesense-server/internal/config"
	"github.com/animesense/animesense-server/internal/dataset"
	"github.com/animesense/animesense-server/internal/logger"
	"github.com/animesense/animesense-server/internal/nlp"
	"github.com/animesense/animesense-server/internal/pipeline"
)

// ProvideStore provides the artifact store over the data directory.
func ProvideStore(i do.Injector) (*dataset.Store, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if err := os.MkdirAll(cfg.Data.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	return dataset.New(cfg.Data.Dir, log.Logger), nil
}

// ProvideEmotionDetector provides the lexicon-backed emotion detector.
func ProvideEmotionDetector(i do.Injector) (*nlp.EmotionDetector, error) {
	return nlp.NewEmotionDetector(nlp.NewVaderScorer()), nil
}

// ProvideTracker provides the shared refresh status store.
func ProvideTracker(i do.Injector) (*pipeline.Tracker, error) {
	return pipeline.NewTracker(), nil
}

// ProvidePipeline provides the derive-aggregate-report pipeline.
func ProvidePipeline(i do.Injector) (*pipeline.Pipeline, error) {
	store := do.MustInvoke[*dataset.Store](i)
	detector := do.MustInvoke[*nlp.EmotionDetector](i)
	log := do.MustInvoke[*logger.Logger](i)

	return pipeline.New(store, detector, log.Logger), nil
}
