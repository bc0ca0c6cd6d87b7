package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/animesense/animesense-server/internal/service"
)

func (s *Server) registerInsightRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getInsights",
		Method:      http.MethodGet,
		Path:        "/api/insights",
		Summary:     "Insights",
		Description: "Returns the insight report with live dataset statistics",
		Tags:        []string{"Insights"},
	}, s.handleGetInsights)
}

// InsightsOutput wraps the insight summary for Huma.
type InsightsOutput struct {
	Body *service.InsightSummary
}

func (s *Server) handleGetInsights(_ context.Context, _ *struct{}) (*InsightsOutput, error) {
	return &InsightsOutput{Body: s.services.Insight.Summary()}, nil
}
