// Package api provides the HTTP API server and handlers for the AnimeSense service.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/animesense/animesense-server/internal/dataset"
	"github.com/animesense/animesense-server/internal/ratelimit"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store          *dataset.Store
	services       *Services
	router         *chi.Mux
	api            huma.API
	refreshLimiter *ratelimit.KeyedRateLimiter
	logger         *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured. The
// refresh limiter throttles pipeline triggers per client IP; pass nil to
// disable throttling.
func NewServer(store *dataset.Store, services *Services, refreshLimiter *ratelimit.KeyedRateLimiter, logger *slog.Logger) *Server {
	s := &Server{
		store:          store,
		services:       services,
		router:         chi.NewRouter(),
		refreshLimiter: refreshLimiter,
		logger:         logger,
	}

	s.setupMiddleware()

	humaConfig := huma.DefaultConfig("AnimeSense API", "1.0.0")
	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler()

	s.registerHealthRoutes()
	s.registerCatalogRoutes()
	s.registerInsightRoutes()
	s.registerRefreshRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(s.refreshLimitMiddleware)

	// The dashboard frontend is served from a different origin.
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}
