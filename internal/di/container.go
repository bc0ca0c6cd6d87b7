// Package di provides dependency injection configuration for the AnimeSense server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/animesense/animesense-server/internal/config"
	"github.com/animesense/animesense-server/internal/dataset"
	"github.com/animesense/animesense-server/internal/di/providers"
	"github.com/animesense/animesense-server/internal/logger"
	"github.com/animesense/animesense-server/internal/nlp"
	"github.com/animesense/animesense-server/internal/pipeline"
	"github.com/animesense/animesense-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Dataset layer
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideEmotionDetector)
	do.Provide(injector, providers.ProvideTracker)
	do.Provide(injector, providers.ProvidePipeline)

	// Business services
	do.Provide(injector, providers.ProvideCatalogService)
	do.Provide(injector, providers.ProvideInsightService)
	do.Provide(injector, providers.ProvideRefreshService)

	// Workers
	do.Provide(injector, providers.ProvideArtifactWatcher)

	// Server
	do.Provide(injector, providers.ProvideRefreshLimiter)
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*dataset.Store](injector)
	_ = do.MustInvoke[*nlp.EmotionDetector](injector)
	_ = do.MustInvoke[*pipeline.Tracker](injector)
	_ = do.MustInvoke[*pipeline.Pipeline](injector)

	_ = do.MustInvoke[*service.CatalogService](injector)
	_ = do.MustInvoke[*service.InsightService](injector)
	_ = do.MustInvoke[*service.RefreshService](injector)

	_ = do.MustInvoke[*providers.ArtifactWatcherHandle](injector)
	_ = do.MustInvoke[*providers.RefreshLimiterHandle](injector)
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
