package server

import (
	"log/slog"
	"net/http"

	"sales-dashboard/internal/errors"
	"sales-dashboard/internal/handlers"
	"sales-dashboard/internal/metrics"
	"sales-dashboard/internal/middleware"
	"sales-dashboard/internal/observability"
	"sales-dashboard/internal/services"
)

type Server struct {
	analytics    *services.Analytics
	mux          *http.ServeMux
	logger       *slog.Logger
	metrics      *metrics.Metrics
	pageHandlers *handlers.PageHandlers
	apiHandlers  *handlers.APIHandlers
	sseHandlers  *handlers.SSEHandlers
}

type Option func(*Server)

// WithMetrics instruments every route and exposes GET /metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

func NewServer(analytics *services.Analytics, logger *slog.Logger, opts ...Option) *Server {
	s := &Server{
		analytics:    analytics,
		mux:          http.NewServeMux(),
		logger:       logger,
		pageHandlers: handlers.NewPageHandlers(analytics, logger),
		apiHandlers:  handlers.NewAPIHandlers(analytics, logger),
		sseHandlers:  handlers.NewSSEHandlers(analytics, logger),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Dashboard page and operations
	s.handle("GET /{$}", s.pageHandlers.HandleDashboard)
	s.handle("GET /health", s.apiHandlers.HandleHealth)
	s.handle("GET /admin/stats", s.apiHandlers.HandleStats)
	if s.metrics != nil {
		s.mux.Handle("GET /metrics", s.metrics.Handler())
	}

	// JSON API
	s.handle("GET /api/options", s.apiHandlers.HandleOptions)
	s.handle("GET /api/dashboard", s.apiHandlers.HandleDashboard)
	s.handle("GET /api/metrics", s.apiHandlers.HandleMetrics)
	s.handle("GET /api/quarterly", s.apiHandlers.HandleQuarterly)
	s.handle("GET /api/treemap", s.apiHandlers.HandleTreemap)
	s.handle("GET /api/discount-profit", s.apiHandlers.HandleDiscountProfit)
	s.handle("GET /api/clusters", s.apiHandlers.HandleClusters)
	s.handle("GET /api/customers", s.apiHandlers.HandleCustomers)

	// Datastar SSE
	s.handle("GET /sse/refresh", s.sseHandlers.HandleRefresh)

	s.handle("/", s.handleNotFound)
}

func (s *Server) handle(pattern string, h http.HandlerFunc) {
	if s.metrics == nil {
		s.mux.Handle(pattern, h)
		return
	}
	s.mux.Handle(pattern, middleware.Instrument(s.metrics, pattern, h))
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	errors.WriteError(w, s.logger, errors.NotFound("no route for "+r.URL.Path), observability.GetRequestID(r.Context()))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
