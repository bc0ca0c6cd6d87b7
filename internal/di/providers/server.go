package providers

import (
	"context"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/animesense/animesense-server/internal/api"
	"github.com/animesense/animesense-server/internal/config"
	"github.com/animesense/animesense-server/internal/dataset"
	"github.com/animesense/animesense-server/internal/logger"
	"github.com/animesense/animesense-server/internal/ratelimit"
	"github.com/animesense/animesense-server/internal/service"
)

// RefreshLimiterHandle wraps the refresh rate limiter with Shutdownable.
type RefreshLimiterHandle struct {
	*ratelimit.KeyedRateLimiter
}

// Shutdown implements do.Shutdownable.
func (h *RefreshLimiterHandle) Shutdown() error {
	h.Stop()
	return nil
}

// ProvideRefreshLimiter provides the per-IP refresh trigger limiter.
func ProvideRefreshLimiter(i do.Injector) (*RefreshLimiterHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)

	limiter := api.NewRefreshLimiter(cfg.Refresh.RatePerMinute, cfg.Refresh.Burst)
	return &RefreshLimiterHandle{KeyedRateLimiter: limiter}, nil
}

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	store := do.MustInvoke[*dataset.Store](i)
	limiterHandle := do.MustInvoke[*RefreshLimiterHandle](i)

	services := &api.Services{
		Catalog: do.MustInvoke[*service.CatalogService](i),
		Insight: do.MustInvoke[*service.InsightService](i),
		Refresh: do.MustInvoke[*service.RefreshService](i),
	}

	handler := api.NewServer(store, services, limiterHandle.KeyedRateLimiter, log.Logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in background
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()

	log.Info("Server running", "addr", srv.Addr)

	return &HTTPServerHandle{Server: srv}, nil
}
