/*
handlers.go - HTTP API handlers for the reorder schedule engine

PURPOSE:
  Exposes the scheduling engine via REST API. Handles HTTP request/response,
  JSON serialization, and delegates to the reorder package.

ENDPOINTS:
  Policies:
    GET    /api/policies               List ordering policies

  Datasets:
    GET    /api/datasets               List stored datasets
    POST   /api/datasets               Upload (or replace) a named dataset
    POST   /api/datasets/reset         Regenerate the built-in datasets
    GET    /api/datasets/{name}        Dataset with its scenarios
    DELETE /api/datasets/{name}        Remove a dataset

  Scheduling:
    GET    /api/scenarios?source=      Scenarios of a source
    POST   /api/orders?policy=&periods= Schedules for the posted scenarios
    GET    /api/simulate?source=&policy= Scenarios of a source plus schedules
    POST   /api/schedules/recompute    Re-derive edited schedules
    POST   /api/compare?policies=&periods= One scenario under several policies

  Legacy names (same handlers, DataSource/AlgorithmType parameters):
    GET    /api/GetProductionScenarios
    POST   /api/GetOrders
    GET    /api/SimulateOrders

SOURCES:
  "random" generates Samples fresh scenarios per request. Any other source
  is the name of a stored dataset (case-insensitive), "customer" when
  omitted.

POLICY PARAMETER:
  Canonical (TargetLevel) or legacy (Algo1) names. A missing parameter
  selects Mock, the documented default of the legacy endpoints. An
  unrecognized name is rejected with 400.

ARCHITECTURE:
  Handler struct holds all dependencies:
  - Catalog: Dataset storage
  - Engine: Horizon and random source for scheduling
  - Metrics: Prometheus collectors

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, unknown policy, malformed body
  - 404: Unknown dataset
  - 500: Internal errors

SECURITY NOTE:
  No authentication. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - datasets.go: Built-in datasets and the seeder
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/warp/reorder-engine/factory"
	"github.com/warp/reorder-engine/generator"
	"github.com/warp/reorder-engine/reorder"
)

const (
	// DefaultSamples is how many scenarios the random source generates.
	DefaultSamples = 20

	// DefaultWorkers bounds concurrent scenario computation per request.
	DefaultWorkers = 4

	// SourceRandom is the source name for on-demand generated scenarios.
	SourceRandom = "random"

	maxBodyBytes = 8 << 20
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Catalog reorder.Catalog
	Engine  *reorder.Engine
	Metrics *Metrics
	// Seeder is optional; without it POST /api/datasets/reset is a 404.
	Seeder *DatasetSeeder

	// Samples is the number of scenarios the random source produces.
	Samples int
	// Workers bounds scenario computations in flight per request.
	Workers int

	newSeed func() uint64
}

// NewHandler creates a new handler with the given catalog and engine.
func NewHandler(catalog reorder.Catalog, engine *reorder.Engine) *Handler {
	return &Handler{
		Catalog: catalog,
		Engine:  engine,
		Metrics: NewMetrics(),
		Samples: DefaultSamples,
		Workers: DefaultWorkers,
		newSeed: rand.Uint64,
	}
}

// =============================================================================
// HEALTH & POLICIES
// =============================================================================

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Horizon: h.Engine.Horizon})
}

// ListPolicies returns every ordering policy.
func (h *Handler) ListPolicies(w http.ResponseWriter, r *http.Request) {
	policies := reorder.Policies()
	dtos := make([]PolicyDTO, len(policies))
	for i, p := range policies {
		dtos[i] = toPolicyDTO(p)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// DATASET HANDLERS
// =============================================================================

// ListDatasets returns every stored dataset without scenarios.
func (h *Handler) ListDatasets(w http.ResponseWriter, r *http.Request) {
	infos, err := h.Catalog.ListDatasets(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list datasets", err)
		return
	}
	writeJSON(w, http.StatusOK, infos)
}

// GetDataset returns one dataset's scenarios.
func (h *Handler) GetDataset(w http.ResponseWriter, r *http.Request) {
	name := normalizeSource(chi.URLParam(r, "name"))
	d, err := h.Catalog.LoadDataset(r.Context(), name)
	if err != nil {
		writeDomainError(w, "Failed to load dataset", err)
		return
	}
	writeJSON(w, http.StatusOK, d.Scenarios)
}

// SaveDataset stores an uploaded dataset under its name.
func (h *Handler) SaveDataset(w http.ResponseWriter, r *http.Request) {
	var req SaveDatasetRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	name := normalizeSource(req.Name)
	if name == "" || name == SourceRandom {
		writeError(w, http.StatusBadRequest, "Invalid dataset name", fmt.Errorf("name %q is reserved or empty", req.Name))
		return
	}

	scenarios, err := factory.ParseScenarios(req.Scenarios)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scenarios", err)
		return
	}
	if len(scenarios) == 0 {
		writeError(w, http.StatusBadRequest, "Invalid scenarios", errors.New("dataset has no scenarios"))
		return
	}

	horizon := reorder.HorizonOf(scenarios[0])
	for i, s := range scenarios {
		if err := reorder.Validate(s, horizon); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid scenarios", &reorder.ScenarioError{Index: i, MPN: s.MPN, Err: err})
			return
		}
	}

	d := reorder.Dataset{
		ID:          uuid.NewString(),
		Name:        name,
		Description: req.Description,
		Horizon:     horizon,
		Scenarios:   scenarios,
		CreatedAt:   time.Now().UTC(),
	}
	if err := h.Catalog.SaveDataset(r.Context(), d); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save dataset", err)
		return
	}

	log.Printf("[API] Saved dataset %q (%d scenarios, horizon %d)", name, len(scenarios), horizon)
	writeJSON(w, http.StatusCreated, d.Info())
}

// DeleteDataset removes a stored dataset.
func (h *Handler) DeleteDataset(w http.ResponseWriter, r *http.Request) {
	name := normalizeSource(chi.URLParam(r, "name"))
	if err := h.Catalog.DeleteDataset(r.Context(), name); err != nil {
		writeDomainError(w, "Failed to delete dataset", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// SCHEDULING HANDLERS
// =============================================================================

// GetScenarios returns the scenarios of a source.
func (h *Handler) GetScenarios(w http.ResponseWriter, r *http.Request) {
	src, err := h.loadSource(r.Context(), sourceParam(r))
	if err != nil {
		writeDomainError(w, "Failed to load scenarios", err)
		return
	}
	writeJSON(w, http.StatusOK, src.scenarios)
}

// ComputeOrders computes a schedule for every posted scenario.
func (h *Handler) ComputeOrders(w http.ResponseWriter, r *http.Request) {
	policy, err := policyParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid policy", err)
		return
	}

	scenarios, err := readScenarios(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if len(scenarios) == 0 {
		writeJSON(w, http.StatusOK, []reorder.Schedule{})
		return
	}

	horizon, err := periodsParam(r, reorder.HorizonOf(scenarios[0]))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid periods", err)
		return
	}

	schedules, err := h.schedule(r.Context(), scenarios, policy, horizon)
	if err != nil {
		writeDomainError(w, "Failed to compute orders", err)
		return
	}
	writeJSON(w, http.StatusOK, schedules)
}

// Simulate loads a source and computes its schedules in one call.
func (h *Handler) Simulate(w http.ResponseWriter, r *http.Request) {
	policy, err := policyParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid policy", err)
		return
	}

	src, err := h.loadSource(r.Context(), sourceParam(r))
	if err != nil {
		writeDomainError(w, "Failed to load scenarios", err)
		return
	}

	schedules, err := h.schedule(r.Context(), src.scenarios, policy, src.horizon)
	if err != nil {
		writeDomainError(w, "Failed to simulate orders", err)
		return
	}

	runID := uuid.NewString()
	log.Printf("[API] Simulation %s: source=%s policy=%s scenarios=%d", runID, src.name, policy, len(schedules))

	writeJSON(w, http.StatusOK, SimulateResponse{
		RunID:     runID,
		Source:    src.name,
		Policy:    policy.String(),
		Scenarios: src.scenarios,
		Schedules: schedules,
	})
}

// RecomputeSchedules re-derives receipts, inventory, and notes for
// schedules whose orders were edited by hand.
func (h *Handler) RecomputeSchedules(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	edited, err := factory.ParseSchedules(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	out := make([]reorder.Schedule, len(edited))
	for i, sched := range edited {
		recomputed, err := reorder.Recompute(sched)
		if err != nil {
			writeDomainError(w, "Failed to recompute schedules", &reorder.ScenarioError{Index: i, MPN: sched.MPN, Err: err})
			return
		}
		out[i] = *recomputed
	}
	writeJSON(w, http.StatusOK, out)
}

// Compare runs one scenario through several policies.
func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	policies, err := policiesParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid policies", err)
		return
	}

	scenarios, err := readScenarios(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if len(scenarios) != 1 {
		writeError(w, http.StatusBadRequest, "Invalid request body", fmt.Errorf("expected exactly one scenario, got %d", len(scenarios)))
		return
	}

	horizon, err := periodsParam(r, reorder.HorizonOf(scenarios[0]))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid periods", err)
		return
	}

	comparisons, err := h.Engine.WithHorizon(horizon).Compare(scenarios[0], policies...)
	if err != nil {
		writeDomainError(w, "Failed to compare policies", err)
		return
	}
	writeJSON(w, http.StatusOK, toComparisonDTOs(comparisons))
}

// =============================================================================
// SOURCES
// =============================================================================

type source struct {
	name      string
	horizon   int
	scenarios []reorder.Scenario
}

// loadSource resolves a source name to scenarios. Stored datasets keep
// their own horizon; generated scenarios use the engine's.
func (h *Handler) loadSource(ctx context.Context, name string) (*source, error) {
	if name == SourceRandom {
		gen := generator.New(h.newSeed())
		return &source{
			name:      SourceRandom,
			horizon:   h.Engine.Horizon,
			scenarios: gen.Scenarios(h.Samples, h.Engine.Horizon),
		}, nil
	}

	d, err := h.Catalog.LoadDataset(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("source %q: %w", name, err)
	}
	horizon := d.Horizon
	if horizon < 1 && len(d.Scenarios) > 0 {
		horizon = reorder.HorizonOf(d.Scenarios[0])
	}
	return &source{name: d.Name, horizon: horizon, scenarios: d.Scenarios}, nil
}

// schedule runs the batch on the worker pool and records metrics.
func (h *Handler) schedule(ctx context.Context, scenarios []reorder.Scenario, p reorder.Policy, horizon int) ([]reorder.Schedule, error) {
	schedules, err := h.Engine.WithHorizon(horizon).ComputeSchedulesConcurrent(ctx, scenarios, p, h.Workers)
	if err != nil {
		return nil, err
	}
	h.Metrics.SchedulesComputed(p.String(), len(schedules))
	return schedules, nil
}

// =============================================================================
// PARAMETERS
// =============================================================================

// queryParam returns the first non-empty query parameter among names.
func queryParam(r *http.Request, names ...string) string {
	q := r.URL.Query()
	for _, name := range names {
		if v := strings.TrimSpace(q.Get(name)); v != "" {
			return v
		}
	}
	return ""
}

func sourceParam(r *http.Request) string {
	src := normalizeSource(queryParam(r, "source", "DataSource"))
	if src == "" {
		return DatasetCustomer
	}
	return src
}

func normalizeSource(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// policyParam reads the policy, defaulting to Mock when absent.
func policyParam(r *http.Request) (reorder.Policy, error) {
	name := queryParam(r, "policy", "AlgorithmType")
	if name == "" {
		return reorder.PolicyMock, nil
	}
	return reorder.ParsePolicy(name)
}

// policiesParam reads a comma-separated policy list. Empty means the
// engine's default comparison set.
func policiesParam(r *http.Request) ([]reorder.Policy, error) {
	raw := queryParam(r, "policies")
	if raw == "" {
		return nil, nil
	}
	var out []reorder.Policy
	for _, name := range strings.Split(raw, ",") {
		if strings.TrimSpace(name) == "" {
			continue
		}
		p, err := reorder.ParsePolicy(name)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// periodsParam reads the horizon, falling back when absent.
func periodsParam(r *http.Request, fallback int) (int, error) {
	raw := queryParam(r, "periods", "Periods")
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: periods must be a positive integer, got %q", reorder.ErrInvalidHorizon, raw)
	}
	return n, nil
}

func readScenarios(w http.ResponseWriter, r *http.Request) ([]reorder.Scenario, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}
	return factory.ParseScenarios(body)
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeDomainError maps engine and catalog errors to a status code.
func writeDomainError(w http.ResponseWriter, message string, err error) {
	switch {
	case reorder.IsNotFound(err):
		writeError(w, http.StatusNotFound, message, err)
	case reorder.IsClientError(err):
		writeError(w, http.StatusBadRequest, message, err)
	default:
		log.Printf("[API] %s: %v", message, err)
		writeError(w, http.StatusInternalServerError, message, err)
	}
}
