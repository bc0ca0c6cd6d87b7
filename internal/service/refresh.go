package service

import (
	"context"
	"log/slog"

	"github.com/animesense/animesense-server/internal/domain"
	"github.com/animesense/animesense-server/internal/id"
	"github.com/animesense/animesense-server/internal/pipeline"
)

// Refresh trigger outcomes.
const (
	RefreshStarted        = "started"
	RefreshAlreadyRunning = "already_running"
)

// RefreshService triggers background pipeline runs and reports their state.
// A trigger while a run is in flight is a no-op.
type RefreshService struct {
	pipeline *pipeline.Pipeline
	tracker  *pipeline.Tracker
	logger   *slog.Logger
}

// NewRefreshService creates a new refresh service.
func NewRefreshService(p *pipeline.Pipeline, tracker *pipeline.Tracker, logger *slog.Logger) *RefreshService {
	return &RefreshService{
		pipeline: p,
		tracker:  tracker,
		logger:   logger,
	}
}

// Trigger starts a background pipeline run and returns immediately. The run
// outlives the triggering request, so it gets its own context; there is no
// cancellation once started.
func (s *RefreshService) Trigger() string {
	jobID := id.MustGenerate("job")
	if !s.tracker.Begin(jobID) {
		s.logger.Info("refresh already running")
		return RefreshAlreadyRunning
	}

	s.logger.Info("refresh started", "job_id", jobID)
	go func() {
		err := s.pipeline.Run(context.Background())
		s.tracker.Finish(err)
		if err != nil {
			s.logger.Error("refresh failed", "job_id", jobID, "error", err)
			return
		}
		s.logger.Info("refresh finished", "job_id", jobID)
	}()
	return RefreshStarted
}

// Status returns the current refresh status snapshot.
func (s *RefreshService) Status() domain.RefreshStatus {
	return s.tracker.Status()
}
