/*
catalog.go - Persistence interface for named scenario datasets

PURPOSE:
  Scenario sources ("customer", "sim") are named sets of scenarios that
  must be served identically on every request. The Catalog stores them.
  The engine itself never touches a Catalog: it only plans whatever
  scenarios it is handed.

CONTRACT:
  - SaveDataset replaces any dataset with the same name, atomically
  - LoadDataset returns scenarios in the order they were saved
  - Missing datasets are reported with ErrDatasetNotFound

IMPLEMENTATIONS:
  - reorder/store/memory.go: In-memory for tests and ephemeral servers
  - store/sqlite/sqlite.go: SQLite for the server

SEE ALSO:
  - generator/generator.go: Produces the seeded datasets
  - api/datasets.go: Seeds and serves datasets
*/
package reorder

import (
	"context"
	"time"
)

// Dataset is a named, ordered collection of scenarios.
type Dataset struct {
	ID          string
	Name        string
	Description string
	Horizon     int
	Scenarios   []Scenario
	CreatedAt   time.Time
}

// DatasetInfo describes a dataset without its scenarios.
type DatasetInfo struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Horizon     int       `json:"horizon"`
	Count       int       `json:"count"`
	CreatedAt   time.Time `json:"created_at"`
}

// Info returns the dataset's description.
func (d Dataset) Info() DatasetInfo {
	return DatasetInfo{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Horizon:     d.Horizon,
		Count:       len(d.Scenarios),
		CreatedAt:   d.CreatedAt,
	}
}

// Catalog stores named scenario datasets.
type Catalog interface {
	// SaveDataset stores the dataset, replacing one with the same name.
	SaveDataset(ctx context.Context, d Dataset) error

	// LoadDataset returns the named dataset or ErrDatasetNotFound.
	LoadDataset(ctx context.Context, name string) (*Dataset, error)

	// ListDatasets returns every dataset, ordered by name.
	ListDatasets(ctx context.Context) ([]DatasetInfo, error)

	// DeleteDataset removes the named dataset or returns ErrDatasetNotFound.
	DeleteDataset(ctx context.Context, name string) error
}
