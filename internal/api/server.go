package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hookwell/hookwell/internal/events"
	"github.com/hookwell/hookwell/internal/intake"
	"github.com/hookwell/hookwell/internal/metrics"
	"github.com/hookwell/hookwell/internal/store"
)

// EventIntake defines the interface for admitting incoming deliveries
type EventIntake interface {
	Handle(req intake.Request) intake.Result
}

// EventStore defines the read, delete and clear surface over stored events
type EventStore interface {
	Get(id string) (store.Event, bool)
	Delete(id string) bool
	Query(page, limit int, source, eventType string) ([]store.Event, int)
	Count() int
	Capacity() int
	Clear()
}

// Config holds API server configuration
type Config struct {
	Listen       string
	MaxBodyBytes int64
	// AdminToken guards the administrative clear endpoint. When empty the
	// endpoint is never registered.
	AdminToken string
}

// Server represents the HTTP API server
type Server struct {
	config    Config
	guard     EventIntake
	store     EventStore
	hub       *events.Hub
	logger    *slog.Logger
	server    *http.Server
	startedAt time.Time
}

// New creates a new API server instance
func New(config Config, guard EventIntake, eventStore EventStore, hub *events.Hub, logger *slog.Logger) *Server {
	if config.MaxBodyBytes <= 0 {
		config.MaxBodyBytes = 1048576
	}
	metrics.StoreCapacity.Set(float64(eventStore.Capacity()))
	return &Server{
		config:    config,
		guard:     guard,
		store:     eventStore,
		hub:       hub,
		logger:    logger,
		startedAt: time.Now(),
	}
}

// Start starts the HTTP server (blocking)
func (s *Server) Start(ctx context.Context) error {
	router := s.setupRoutes()

	s.server = &http.Server{
		Addr:         s.config.Listen,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Minute, // Long enough for idle /events streams
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("API server starting", "listen", s.config.Listen)

	// Run server in a goroutine
	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Wait for context cancellation or server error
	select {
	case <-ctx.Done():
		s.logger.Info("API server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return ctx.Err()
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	}
}

// setupRoutes configures the HTTP router
func (s *Server) setupRoutes() *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)

	// Intake and read API.
	r.Post("/webhooks", s.handleIntake)
	r.Get("/webhooks", s.handleListEvents)
	r.Get("/webhooks/{eventID}", s.handleGetEvent)
	r.Delete("/webhooks/{eventID}", s.handleDeleteEvent)

	// Unauthenticated ops endpoints.
	r.Get("/healthz", s.handleHealthz)
	r.Get("/events", s.handleEvents)
	r.Get("/openapi.json", s.handleOpenAPI)
	r.Handle("/metrics", promhttp.Handler())

	// The administrative surface only exists when a token is configured.
	if s.config.AdminToken != "" {
		r.Group(func(r chi.Router) {
			r.Use(s.adminAuthMiddleware)
			r.Delete("/admin/events", s.handleAdminClear)
		})
	}

	return r
}

// loggingMiddleware logs HTTP requests and records per-route latency
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		elapsed := time.Since(start)
		pattern := chi.RouteContext(r.Context()).RoutePattern()
		if pattern == "" {
			pattern = "unmatched"
		}
		metrics.RequestDuration.WithLabelValues(r.Method, pattern).Observe(elapsed.Seconds())

		s.logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", elapsed.Milliseconds(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
