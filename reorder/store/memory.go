// Package store provides Catalog implementations.
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/warp/reorder-engine/reorder"
)

// =============================================================================
// MEMORY CATALOG - In-memory implementation (for testing/dev)
// =============================================================================

var _ reorder.Catalog = (*Memory)(nil)

type Memory struct {
	mu       sync.RWMutex
	datasets map[string]reorder.Dataset
}

func NewMemory() *Memory {
	return &Memory{
		datasets: make(map[string]reorder.Dataset),
	}
}

// SaveDataset stores a deep copy, so later changes by the caller are not seen.
func (m *Memory) SaveDataset(_ context.Context, d reorder.Dataset) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}
	d.Scenarios = cloneScenarios(d.Scenarios)
	m.datasets[d.Name] = d
	return nil
}

func (m *Memory) LoadDataset(_ context.Context, name string) (*reorder.Dataset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	d, ok := m.datasets[name]
	if !ok {
		return nil, reorder.ErrDatasetNotFound
	}
	d.Scenarios = cloneScenarios(d.Scenarios)
	return &d, nil
}

func (m *Memory) ListDatasets(_ context.Context) ([]reorder.DatasetInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	infos := make([]reorder.DatasetInfo, 0, len(m.datasets))
	for _, d := range m.datasets {
		infos = append(infos, d.Info())
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos, nil
}

func (m *Memory) DeleteDataset(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.datasets[name]; !ok {
		return reorder.ErrDatasetNotFound
	}
	delete(m.datasets, name)
	return nil
}

func cloneScenarios(in []reorder.Scenario) []reorder.Scenario {
	if in == nil {
		return nil
	}
	out := make([]reorder.Scenario, len(in))
	for i, s := range in {
		out[i] = s
		out[i].Rqt = append([]int(nil), s.Rqt...)
		out[i].Rec = append([]int(nil), s.Rec...)
		if s.Inv != nil {
			out[i].Inv = append([]int(nil), s.Inv...)
		}
	}
	return out
}
