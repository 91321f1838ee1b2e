package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/marine-obs-service/internal/domain"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// ObservationSource serves the most recent normalized observation and the
// terminal error from the most recent failed refresh.
type ObservationSource interface {
	Latest() (domain.Observation, bool)
	LastFailure() error
}

// Server exposes the observation API plus health, readiness, and metrics
// HTTP endpoints.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /v1/observation, /healthz, /readyz,
// and /metrics routes.
func NewServer(addr, stationID string, source ObservationSource, ready ReadinessChecker, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}

	mux.HandleFunc("GET /v1/observation", handleObservation(stationID, source))
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// observationEnvelope is the API response shape: a success flag, the station
// the service is bound to, and either the observation or error details.
type observationEnvelope struct {
	Success     bool                `json:"success"`
	StationID   string              `json:"station_id"`
	Data        *domain.Observation `json:"data,omitempty"`
	Error       string              `json:"error,omitempty"`
	Diagnostics *domain.Diagnostics `json:"diagnostics,omitempty"`
}

func handleObservation(stationID string, source ObservationSource) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		if obs, ok := source.Latest(); ok {
			writeJSON(w, http.StatusOK, observationEnvelope{
				Success:   true,
				StationID: stationID,
				Data:      &obs,
			})
			return
		}

		env := observationEnvelope{
			Success:   false,
			StationID: stationID,
			Error:     "no observation ingested yet",
		}
		if err := source.LastFailure(); err != nil {
			env.Error = err.Error()
			var pf *domain.ParseFailure
			if errors.As(err, &pf) {
				env.Diagnostics = &pf.Diag
			}
		}
		writeJSON(w, http.StatusServiceUnavailable, env)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort health response
}
