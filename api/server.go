/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request for tracing
  2. Logger:     Request logging
  3. Recoverer:  Panic recovery (500 instead of crash)
  4. Metrics:    Prometheus request counters and latency
  5. CORS:       Cross-origin requests from the planning UI

ROUTE GROUPS:
  /api/policies           Policy listing
  /api/datasets/*         Dataset management
  /api/scenarios          Scenario sources
  /api/orders             Batch scheduling
  /api/simulate           Source + scheduling in one call
  /api/schedules/*        Manual edit recompute
  /api/compare            Side-by-side policies
  /api/Get*, /api/Sim*    Legacy endpoint names
  /healthz, /metrics      Operations

CORS:
  Any origin may call the API, as the legacy endpoints allowed. Only
  GET, POST, DELETE and OPTIONS are accepted.

SECURITY NOTE:
  No authentication middleware. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(h.Metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Api-Key"},
		MaxAge:         300,
	}))

	r.Get("/healthz", h.Health)
	r.Method("GET", "/metrics", h.Metrics.Handler())

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/policies", h.ListPolicies)

		// Dataset routes
		r.Route("/datasets", func(r chi.Router) {
			r.Get("/", h.ListDatasets)
			r.Post("/", h.SaveDataset)
			r.Post("/reset", h.ResetDatasets)
			r.Get("/{name}", h.GetDataset)
			r.Delete("/{name}", h.DeleteDataset)
		})

		// Scheduling routes
		r.Get("/scenarios", h.GetScenarios)
		r.Post("/orders", h.ComputeOrders)
		r.Get("/simulate", h.Simulate)
		r.Post("/schedules/recompute", h.RecomputeSchedules)
		r.Post("/compare", h.Compare)

		// Legacy routes
		r.Get("/GetProductionScenarios", h.GetScenarios)
		r.Post("/GetOrders", h.ComputeOrders)
		r.Get("/SimulateOrders", h.Simulate)
	})

	return r
}
