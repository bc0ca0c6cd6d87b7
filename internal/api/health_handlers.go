package api

import (
	"context"
	"net/http"
	"os"

	"github.com/danielgtaylor/huma/v2"

	"github.com/animesense/animesense-server/internal/dataset"
)

func (s *Server) registerHealthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "healthCheck",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Description: "Returns server health status with artifact checks",
		Tags:        []string{"Health"},
	}, s.handleHealthCheck)
}

// ComponentHealth describes the health of a single component.
type ComponentHealth struct {
	Status  string `json:"status" doc:"Component status: healthy or degraded"`
	Message string `json:"message,omitempty" doc:"Additional status information"`
}

// HealthResponse contains health check data in API responses.
type HealthResponse struct {
	Status     string                     `json:"status" doc:"Overall status: healthy or degraded"`
	Components map[string]ComponentHealth `json:"components" doc:"Individual component statuses"`
}

// HealthOutput wraps the health response for Huma.
type HealthOutput struct {
	Body HealthResponse
}

// The service has no database; health is a matter of which derived
// artifacts exist on disk. A fresh install with no pipeline run yet is
// degraded, not unhealthy.
func (s *Server) handleHealthCheck(_ context.Context, _ *struct{}) (*HealthOutput, error) {
	components := map[string]ComponentHealth{
		"dataset": s.checkDataset(),
		"report":  s.checkReport(),
	}

	overall := "healthy"
	for _, c := range components {
		if c.Status != "healthy" {
			overall = "degraded"
		}
	}

	return &HealthOutput{
		Body: HealthResponse{
			Status:     overall,
			Components: components,
		},
	}, nil
}

func (s *Server) checkDataset() ComponentHealth {
	for _, name := range []string{dataset.EmotionFile, dataset.SentimentFile} {
		if _, err := os.Stat(s.store.Path(name)); err == nil {
			return ComponentHealth{Status: "healthy"}
		}
	}
	return ComponentHealth{
		Status:  "degraded",
		Message: "no derived dataset; run the pipeline",
	}
}

func (s *Server) checkReport() ComponentHealth {
	if _, err := os.Stat(s.store.Path(dataset.ReportFile)); err == nil {
		return ComponentHealth{Status: "healthy"}
	}
	return ComponentHealth{
		Status:  "degraded",
		Message: "insight report not generated yet",
	}
}
