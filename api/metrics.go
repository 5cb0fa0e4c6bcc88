/*
metrics.go - Prometheus instrumentation for the HTTP API

PURPOSE:
  Counts requests per route and status, times them, and records how many
  schedules each policy produced. Exposed on GET /metrics.

REGISTRY:
  Each Metrics owns its registry instead of using the global one, so
  several handlers (one per test) can coexist in a process.

ROUTE LABELS:
  The label is chi's route pattern ("/api/orders"), never the raw path,
  which keeps label cardinality bounded.
*/
package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the API's collectors.
type Metrics struct {
	registry          *prometheus.Registry
	httpRequestsTotal *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	schedulesTotal    *prometheus.CounterVec
	batchSize         prometheus.Histogram
}

// NewMetrics creates and registers the API collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reorder_http_requests_total",
			Help: "Total count of HTTP requests processed by route and status.",
		}, []string{"route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "reorder_http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		schedulesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reorder_schedules_computed_total",
			Help: "Total schedules computed, by policy.",
		}, []string{"policy"}),
		batchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "reorder_batch_scenarios",
			Help:    "Number of scenarios per scheduling request.",
			Buckets: []float64{1, 5, 10, 20, 50, 100, 500},
		}),
	}

	m.registry.MustRegister(
		m.httpRequestsTotal,
		m.httpDuration,
		m.schedulesTotal,
		m.batchSize,
	)
	return m
}

// Middleware records count and latency for every request.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.httpRequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
		m.httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// SchedulesComputed records a finished batch.
func (m *Metrics) SchedulesComputed(policy string, count int) {
	if m == nil {
		return
	}
	m.schedulesTotal.WithLabelValues(policy).Add(float64(count))
	m.batchSize.Observe(float64(count))
}
