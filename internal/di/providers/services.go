package providers

import (
	"github.com/samber/do/v2"

	"github.com/animesense/animesense-server/internal/dataset"
	"github.com/animesense/animesense-server/internal/logger"
	"github.com/animesense/animesense-server/internal/pipeline"
	"github.com/animesense/animesense-server/internal/service"
)

// ProvideCatalogService provides the catalog query service.
func ProvideCatalogService(i do.Injector) (*service.CatalogService, error) {
	store := do.MustInvoke[*dataset.Store](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCatalogService(store, log.Logger), nil
}

// ProvideInsightService provides the insight report service.
func ProvideInsightService(i do.Injector) (*service.InsightService, error) {
	store := do.MustInvoke[*dataset.Store](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewInsightService(store, log.Logger), nil
}

// ProvideRefreshService provides the background refresh service.
func ProvideRefreshService(i do.Injector) (*service.RefreshService, error) {
	p := do.MustInvoke[*pipeline.Pipeline](i)
	tracker := do.MustInvoke[*pipeline.Tracker](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewRefreshService(p, tracker, log.Logger), nil
}
