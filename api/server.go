/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the chi router, middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request for tracing
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. zerolog:    Structured request logging
  4. CORS:       Cross-origin requests for the dashboard frontend

ROUTE GROUPS:
  /api/employees/*   Employee + trip management, compliance queries
  /api/trips/*       Trip deletion
  /api/compliance/*  Stateless evaluation (audit/export path)
  /metrics           Prometheus metrics (cache hit rates)

SECURITY NOTE:
  No authentication middleware. Auth and multi-tenant access control
  belong to the surrounding application, not this service.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// NewRouter creates a router with all routes configured. The handler's
// cache is registered on a private prometheus registry exposed at
// /metrics.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(h.Log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.ListEmployees)
			r.Post("/", h.CreateEmployee)
			r.Get("/{id}", h.GetEmployee)
			r.Get("/{id}/trips", h.ListTrips)
			r.Post("/{id}/trips", h.CreateTrip)
			r.Get("/{id}/compliance", h.GetCompliance)
			r.Get("/{id}/compliance/calendar", h.GetCalendar)
			r.Get("/{id}/safe-entry", h.GetSafeEntry)
			r.Get("/{id}/summary", h.GetSummary)
		})

		r.Route("/trips", func(r chi.Router) {
			r.Delete("/{id}", h.DeleteTrip)
		})

		r.Route("/compliance", func(r chi.Router) {
			r.Post("/evaluate", h.Evaluate)
			r.Get("/overview", h.GetRiskOverview)
		})

		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Get("/current", h.GetCurrentScenario)
			r.Post("/load", h.LoadScenario)
		})
	})

	registry := prometheus.NewRegistry()
	registry.MustRegister(h.Cache)
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	return r
}

// requestLogger logs one structured line per request.
func requestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Str("request_id", middleware.GetReqID(r.Context())).
				Msg("request")
		})
	}
}
