/*
datasets.go - Built-in datasets and the background seeder

PURPOSE:
  The "customer" and "sim" sources must serve the same scenarios on every
  request and across restarts. They are generated once from fixed seeds
  and stored in the catalog. The seeder recreates them whenever they are
  missing (first start, or after DELETE /api/datasets/{name}).

BUILT-IN DATASETS:
  customer:  Seed    Default source of /api/scenarios and /api/simulate
  sim:       Seed+1  Second fixed portfolio for simulation runs

HOW SEEDING WORKS:
 1. Load each built-in dataset by name
 2. If missing, generate Count scenarios over Horizon with its seed
 3. Save it to the catalog

  Existing datasets are never touched, so an operator can replace
  "customer" with real data through POST /api/datasets and keep it.
  Reset regenerates both unconditionally.

DESIGN:
  - Runs a background goroutine with configurable check interval
  - Seeds immediately on Start
  - CheckInterval of 0 disables the background loop (Seed still works)

USAGE:
  seeder := NewDatasetSeeder(catalog, 12, 20, 1)
  if _, err := seeder.Seed(ctx); err != nil { ... }
  seeder.Start()
  // ... later
  seeder.Stop()

SEE ALSO:
  - generator/generator.go: Scenario generation
  - handlers.go: Sources are resolved through the catalog
*/
package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/warp/reorder-engine/generator"
	"github.com/warp/reorder-engine/reorder"
)

const (
	DatasetCustomer = "customer"
	DatasetSim      = "sim"
)

// builtinDataset is a dataset generated from a fixed seed.
type builtinDataset struct {
	Name        string
	Description string
	SeedOffset  uint64
}

var builtinDatasets = []builtinDataset{
	{
		Name:        DatasetCustomer,
		Description: "Customer part portfolio (generated with a fixed seed)",
		SeedOffset:  0,
	},
	{
		Name:        DatasetSim,
		Description: "Simulation part portfolio (generated with a fixed seed)",
		SeedOffset:  1,
	},
}

// =============================================================================
// SEEDER
// =============================================================================

// DatasetSeeder keeps the built-in datasets present in a catalog.
type DatasetSeeder struct {
	Catalog       reorder.Catalog
	Horizon       int
	Count         int
	BaseSeed      uint64
	CheckInterval time.Duration

	ticker *time.Ticker
	stop   chan struct{}
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewDatasetSeeder creates a seeder. seed is the base seed of the
// built-in datasets.
func NewDatasetSeeder(catalog reorder.Catalog, horizon, count int, seed uint64) *DatasetSeeder {
	return &DatasetSeeder{
		Catalog:       catalog,
		Horizon:       horizon,
		Count:         count,
		BaseSeed:      seed,
		CheckInterval: 1 * time.Hour,
	}
}

// Dataset generates the named built-in dataset without storing it.
func (s *DatasetSeeder) Dataset(name string) (reorder.Dataset, error) {
	for _, b := range builtinDatasets {
		if b.Name == name {
			gen := generator.New(s.BaseSeed + b.SeedOffset)
			return reorder.Dataset{
				Name:        b.Name,
				Description: b.Description,
				Horizon:     s.Horizon,
				Scenarios:   gen.Scenarios(s.Count, s.Horizon),
			}, nil
		}
	}
	return reorder.Dataset{}, fmt.Errorf("%q: %w", name, reorder.ErrDatasetNotFound)
}

// Seed creates every missing built-in dataset and returns how many it
// created.
func (s *DatasetSeeder) Seed(ctx context.Context) (int, error) {
	created := 0
	for _, b := range builtinDatasets {
		_, err := s.Catalog.LoadDataset(ctx, b.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, reorder.ErrDatasetNotFound) {
			return created, fmt.Errorf("check dataset %q: %w", b.Name, err)
		}
		if err := s.save(ctx, b.Name); err != nil {
			return created, err
		}
		created++
		log.Printf("[Seeder] Created dataset %q (%d scenarios, horizon %d)", b.Name, s.Count, s.Horizon)
	}
	return created, nil
}

// Reset regenerates every built-in dataset, replacing stored versions.
func (s *DatasetSeeder) Reset(ctx context.Context) error {
	for _, b := range builtinDatasets {
		if err := s.save(ctx, b.Name); err != nil {
			return err
		}
	}
	log.Printf("[Seeder] Reset %d built-in datasets", len(builtinDatasets))
	return nil
}

func (s *DatasetSeeder) save(ctx context.Context, name string) error {
	d, err := s.Dataset(name)
	if err != nil {
		return err
	}
	if err := s.Catalog.SaveDataset(ctx, d); err != nil {
		return fmt.Errorf("save dataset %q: %w", name, err)
	}
	return nil
}

// Start begins the background check loop.
func (s *DatasetSeeder) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.CheckInterval <= 0 {
		log.Println("[Seeder] Background checks disabled")
		return
	}
	if s.ticker != nil {
		return
	}

	s.ticker = time.NewTicker(s.CheckInterval)
	s.stop = make(chan struct{})
	s.wg.Add(1)

	go s.run()

	log.Printf("[Seeder] Started with check interval: %v", s.CheckInterval)
}

// Stop stops the background loop and waits for it to exit.
func (s *DatasetSeeder) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ticker != nil {
		s.ticker.Stop()
		close(s.stop)
		s.wg.Wait()
		s.ticker = nil
		log.Println("[Seeder] Stopped")
	}
}

func (s *DatasetSeeder) run() {
	defer s.wg.Done()

	s.check()

	for {
		select {
		case <-s.ticker.C:
			s.check()
		case <-s.stop:
			return
		}
	}
}

func (s *DatasetSeeder) check() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := s.Seed(ctx); err != nil {
		log.Printf("[Seeder] Error: %v", err)
	}
}

// =============================================================================
// HANDLERS
// =============================================================================

// ResetDatasets regenerates the built-in datasets.
func (h *Handler) ResetDatasets(w http.ResponseWriter, r *http.Request) {
	if h.Seeder == nil {
		writeError(w, http.StatusNotFound, "Dataset seeding is not configured", nil)
		return
	}
	if err := h.Seeder.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset datasets", err)
		return
	}

	infos, err := h.Catalog.ListDatasets(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list datasets", err)
		return
	}
	writeJSON(w, http.StatusOK, infos)
}
