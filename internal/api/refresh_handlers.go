package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/animesense/animesense-server/internal/domain"
)

func (s *Server) registerRefreshRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "refreshData",
		Method:      http.MethodPost,
		Path:        "/api/refresh-data",
		Summary:     "Refresh data",
		Description: "Starts a background pipeline run over the raw catalog",
		Tags:        []string{"Refresh"},
	}, s.handleRefreshData)

	huma.Register(s.api, huma.Operation{
		OperationID: "refreshStatus",
		Method:      http.MethodGet,
		Path:        "/api/refresh-status",
		Summary:     "Refresh status",
		Description: "Returns the current refresh job status",
		Tags:        []string{"Refresh"},
	}, s.handleRefreshStatus)
}

// RefreshResponse acknowledges a refresh trigger.
type RefreshResponse struct {
	Status string `json:"status" doc:"started or already_running"`
}

// RefreshOutput wraps the refresh acknowledgment for Huma.
type RefreshOutput struct {
	Body RefreshResponse
}

// RefreshStatusOutput wraps the refresh status snapshot for Huma.
type RefreshStatusOutput struct {
	Body domain.RefreshStatus
}

func (s *Server) handleRefreshData(_ context.Context, _ *struct{}) (*RefreshOutput, error) {
	return &RefreshOutput{Body: RefreshResponse{Status: s.services.Refresh.Trigger()}}, nil
}

func (s *Server) handleRefreshStatus(_ context.Context, _ *struct{}) (*RefreshStatusOutput, error) {
	return &RefreshStatusOutput{Body: s.services.Refresh.Status()}, nil
}
