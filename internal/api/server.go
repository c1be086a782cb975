// Package api provides the HTTP server for the tracker.
// It exposes the activity flows and statistics as JSON and serves the page
// shell through the offline asset cache.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vedantadhau820-alt/IdentityOS/internal/app"
	"github.com/vedantadhau820-alt/IdentityOS/internal/core/session"
	"github.com/vedantadhau820-alt/IdentityOS/internal/ports/primary"
)

// Services holds the primary ports the server drives.
type Services struct {
	Identity  primary.IdentityService
	Today     primary.TodayService
	Stats     primary.StatsService
	Profile   primary.ProfileService
	History   primary.HistoryService
	Stability primary.StabilityService
	Workout   primary.WorkoutService
	Social    primary.SocialService
	Observer  primary.ObserverService
	Assets    primary.AssetService
}

// Server is the tracker HTTP API server.
type Server struct {
	svc            Services
	logger         *slog.Logger
	metricsEnabled bool
	static         http.Handler // page shell origin (nil if not set)
	timeout        time.Duration
}

// NewServer creates a new API server.
func NewServer(svc Services, logger *slog.Logger) *Server {
	return &Server{svc: svc, logger: logger, timeout: 30 * time.Second}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// SetStatic sets the handler that serves page shell files on a cache miss.
func (s *Server) SetStatic(h http.Handler) { s.static = h }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/today", s.handleToday)
		r.Get("/whoami", s.handleWhoami)
		r.Get("/stats", s.handleStats)
		r.Get("/profile", s.handleProfile)
		r.Get("/history", s.handleHistory)

		r.Post("/stability/start", s.handleStabilityStart)
		r.Get("/stability/phase", s.handleStabilityPhase)
		r.Post("/stability/submit", s.handleStabilitySubmit)

		r.Post("/workout/start", s.handleWorkoutStart)
		r.Get("/workout/elapsed", s.handleWorkoutElapsed)
		r.Post("/workout/finish", s.handleWorkoutFinish)

		r.Post("/social/start", s.handleSocialStart)
		r.Post("/social/reflect", s.handleSocialReflect)
		r.Post("/social/submit", s.handleSocialSubmit)

		r.Post("/observer/start", s.handleObserverStart)
		r.Get("/observer/countdown", s.handleObserverCountdown)
		r.Post("/observer/submit", s.handleObserverSubmit)

		r.Get("/assets", s.handleAssetStatus)
	})

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	if s.static != nil {
		r.With(CacheMiddleware(s.svc.Assets, s.logger)).Get("/*", s.static.ServeHTTP)
	}

	return r
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, errType, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"type":    errType,
		},
	})
}

// writeServiceError maps a service error onto a status code.
func writeServiceError(w http.ResponseWriter, err error) {
	var verr *session.ValidationError
	var gerr *session.GuardError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, "invalid_request", verr.Error())
	case errors.As(err, &gerr):
		writeError(w, http.StatusConflict, "conflict", gerr.Error())
	case errors.Is(err, app.ErrWriteNotConfirmed):
		writeError(w, http.StatusBadGateway, "write_not_confirmed", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "error", err.Error())
	}
}

// decodeBody decodes an optional JSON body into v. An empty body leaves v untouched.
func decodeBody(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
