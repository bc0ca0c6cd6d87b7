// Command prepare runs the full derive-aggregate-report pipeline once and
// exits. Useful for seeding the data directory before starting the server,
// or for cron-driven refreshes.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/animesense/animesense-server/internal/dataset"
	"github.com/animesense/animesense-server/internal/logger"
	"github.com/animesense/animesense-server/internal/nlp"
	"github.com/animesense/animesense-server/internal/pipeline"
)

func main() {
	dataDir := flag.String("data-dir", "data", "Directory holding the raw catalog and derived artifacts")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(*logLevel),
		Environment: "development",
	})

	if err := os.MkdirAll(*dataDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "create data directory: %v\n", err)
		os.Exit(1)
	}

	store := dataset.New(*dataDir, log.Logger)
	p := pipeline.New(store, nlp.NewEmotionDetector(nlp.NewVaderScorer()), log.Logger)

	if err := p.Run(context.Background()); err != nil {
		log.Error("pipeline failed", "error", err)
		os.Exit(1)
	}

	log.Info("pipeline complete", "data_dir", *dataDir)
}
