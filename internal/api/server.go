// Package api provides the HTTP API server and handlers for the rent estimator.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/loyerparis/loyer-server/internal/cache"
	"github.com/loyerparis/loyer-server/internal/config"
	"github.com/loyerparis/loyer-server/internal/ratelimit"
)

// ModelInfo is the read-only view of the loaded model used by health checks.
type ModelInfo interface {
	NumTrees() int
	NumFeature() int
	Objective() string
}

// EncoderInfo is the read-only view of the loaded encoder used by health checks.
type EncoderInfo interface {
	Width() int
}

// Artifacts groups the loaded artifacts reported by the health endpoint.
// Cache is nil when caching is disabled.
type Artifacts struct {
	Model   ModelInfo
	Encoder EncoderInfo
	Cache   *cache.Cache
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	cfg       *config.Config
	services  *Services
	artifacts Artifacts
	limiter   *ratelimit.KeyedRateLimiter
	router    *chi.Mux
	api       huma.API
	logger    *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
// limiter may be nil to disable rate limiting.
func NewServer(cfg *config.Config, services *Services, artifacts Artifacts, limiter *ratelimit.KeyedRateLimiter, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	router := chi.NewRouter()

	s := &Server{
		cfg:       cfg,
		services:  services,
		artifacts: artifacts,
		limiter:   limiter,
		router:    router,
		logger:    logger,
	}

	s.setupMiddleware()

	humaConfig := huma.DefaultConfig(APITitle, APIVersion)
	humaConfig.Info.Description = "Estimates the monthly rent of a Paris apartment from its neighborhood, construction period, furnishing, room count and area."
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

	s.api = humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s.registerRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// API returns the huma API, used by tests and OpenAPI export.
func (s *Server) API() huma.API {
	return s.api
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)

	origins := []string{"*"}
	if s.cfg != nil && len(s.cfg.Server.CORSOrigins) > 0 {
		origins = s.cfg.Server.CORSOrigins
	}
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{"Retry-After", middleware.RequestIDHeader},
		MaxAge:         300,
	}))

	if s.limiter != nil {
		s.router.Use(RateLimitMiddleware(s.limiter, s.logger, "/health", "/metrics"))
	}
}

// registerRoutes configures all HTTP routes.
func (s *Server) registerRoutes() {
	s.registerHealthRoutes()
	s.registerEstimateRoutes()
	s.registerLegacyRoutes()

	s.router.Handle("/metrics", promhttp.Handler())
}
