package api

import (
	"github.com/animesense/animesense-server/internal/service"
)

// Services groups the business logic services used by the API server.
type Services struct {
	Catalog *service.CatalogService
	Insight *service.InsightService
	Refresh *service.RefreshService
}
