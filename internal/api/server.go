// Package api provides the HTTP server for Senior Strength.
// It exposes the progress REST API, manual job triggers, and the
// notification dispatch endpoint.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/phildaponte/senior-strength/internal/app/notify"
	"github.com/phildaponte/senior-strength/internal/app/progress"
	"github.com/phildaponte/senior-strength/internal/app/report"
	"github.com/phildaponte/senior-strength/internal/app/sentiment"
	"github.com/phildaponte/senior-strength/internal/health"
	"github.com/phildaponte/senior-strength/internal/infra/sqlite"
)

// Server is the Senior Strength HTTP API server.
type Server struct {
	db             *sqlite.DB
	progress       *progress.Service
	analyzer       *sentiment.Analyzer
	detector       *notify.InactivityDetector
	digests        *report.Composer
	dispatcher     *notify.Dispatcher
	health         *health.Checker
	version        string
	metricsEnabled bool
}

// NewServer creates a new API server.
func NewServer(db *sqlite.DB, svc *progress.Service, analyzer *sentiment.Analyzer, detector *notify.InactivityDetector, digests *report.Composer, dispatcher *notify.Dispatcher, version string) *Server {
	return &Server{
		db:         db,
		progress:   svc,
		analyzer:   analyzer,
		detector:   detector,
		digests:    digests,
		dispatcher: dispatcher,
		version:    version,
	}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// SetHealth attaches the periodic health checker to /health.
func (s *Server) SetHealth(h *health.Checker) { s.health = h }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if s.health == nil {
			writeJSON(w, http.StatusOK, map[string]string{
				"status": "ok",
			})
			return
		}
		status := http.StatusOK
		label := "ok"
		if !s.health.IsHealthy() {
			status = http.StatusServiceUnavailable
			label = "degraded"
		}
		writeJSON(w, status, map[string]interface{}{
			"status": label,
			"checks": s.health.Statuses(),
		})
	})

	r.Get("/api/version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"version": s.version,
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/logs", s.handleRecordLog)

		r.Route("/users/{id}", func(r chi.Router) {
			r.Get("/progress", s.handleProgress)
			r.Get("/calendar", s.handleCalendar)
			r.Get("/journal", s.handleJournal)
			r.Post("/streak/reconcile", s.handleReconcile)
		})

		r.Route("/jobs", func(r chi.Router) {
			r.Post("/weekly-digest", s.handleWeeklyDigest)
			r.Post("/inactivity-scan", s.handleInactivityScan)
		})

		r.Post("/notifications/push", s.handleDispatchPush)
	})

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
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
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"type":    "error",
		},
	})
}

// corsMiddleware adds CORS headers for the mobile client's dev tooling.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
