/*
Package sqlite provides a SQLite-backed implementation of reorder.Catalog.

PURPOSE:
  Stores the named scenario datasets ("customer", "sim", uploaded sets) so
  a server restart serves exactly the same scenarios. The scheduling engine
  never reads from here directly; the API loads a dataset and hands the
  scenarios to the engine.

INTERFACES IMPLEMENTED:
  reorder.Catalog: Dataset persistence

KEY TABLES:
  datasets:          One row per named dataset
  dataset_scenarios: Scenarios of a dataset, keyed by position

ORDERING:
  Scenarios are stored with their position in the dataset and always read
  back ORDER BY position, so batch results line up with the input.

ATOMIC REPLACE:
  SaveDataset deletes the old dataset of the same name and inserts the new
  one inside a single SQL transaction. Readers see either the old or the
  new dataset, never a mix.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety, like the in-memory catalog.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) and foreign keys on, so
  deleting a dataset cascades to its scenarios.

USAGE:
  store, err := sqlite.New("./data/reorder.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  err = store.SaveDataset(ctx, reorder.Dataset{Name: "customer", Scenarios: scenarios})

SEE ALSO:
  - reorder/catalog.go: Interface definition
  - reorder/store/memory.go: In-memory implementation for testing
  - factory/scenario.go: JSON encoding of stored scenarios
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/warp/reorder-engine/factory"
	"github.com/warp/reorder-engine/reorder"
)

var _ reorder.Catalog = (*Store)(nil)

// Store implements reorder.Catalog using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Every connection to ":memory:" is a separate database.
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS datasets (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		description TEXT,
		horizon INTEGER NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS dataset_scenarios (
		dataset_id TEXT NOT NULL REFERENCES datasets(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		mpn TEXT NOT NULL,
		scenario_json TEXT NOT NULL,
		PRIMARY KEY (dataset_id, position)
	);

	CREATE INDEX IF NOT EXISTS idx_dataset_scenarios_mpn
		ON dataset_scenarios(mpn);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// DATASETS (reorder.Catalog interface)
// =============================================================================

// SaveDataset stores a dataset, replacing any dataset with the same name.
func (s *Store) SaveDataset(ctx context.Context, d reorder.Dataset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if d.Name == "" {
		return fmt.Errorf("dataset name is required")
	}
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	if _, err := sqlTx.ExecContext(ctx, "DELETE FROM datasets WHERE name = ? OR id = ?", d.Name, d.ID); err != nil {
		return fmt.Errorf("failed to replace dataset: %w", err)
	}

	_, err = sqlTx.ExecContext(ctx, `
		INSERT INTO datasets (id, name, description, horizon, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, d.ID, d.Name, nullString(d.Description), d.Horizon, d.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to save dataset: %w", err)
	}

	stmt, err := sqlTx.PrepareContext(ctx, `
		INSERT INTO dataset_scenarios (dataset_id, position, mpn, scenario_json)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare scenario insert: %w", err)
	}
	defer stmt.Close()

	for i, sc := range d.Scenarios {
		payload, err := json.Marshal(factory.ToJSON(sc))
		if err != nil {
			return fmt.Errorf("failed to encode scenario %d: %w", i, err)
		}
		if _, err := stmt.ExecContext(ctx, d.ID, i, sc.MPN, string(payload)); err != nil {
			return fmt.Errorf("failed to save scenario %d: %w", i, err)
		}
	}

	return sqlTx.Commit()
}

// LoadDataset returns a dataset with its scenarios in stored order.
func (s *Store) LoadDataset(ctx context.Context, name string) (*reorder.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		d           reorder.Dataset
		description sql.NullString
		createdAt   string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, description, horizon, created_at
		FROM datasets WHERE name = ?
	`, name).Scan(&d.ID, &d.Name, &description, &d.Horizon, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, reorder.ErrDatasetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}
	d.Description = description.String
	d.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)

	rows, err := s.db.QueryContext(ctx, `
		SELECT scenario_json FROM dataset_scenarios
		WHERE dataset_id = ?
		ORDER BY position ASC
	`, d.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query scenarios: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan scenario: %w", err)
		}
		var sj factory.ScenarioJSON
		if err := json.Unmarshal([]byte(payload), &sj); err != nil {
			return nil, fmt.Errorf("failed to decode scenario: %w", err)
		}
		sc, err := factory.FromJSON(sj)
		if err != nil {
			return nil, fmt.Errorf("stored scenario is invalid: %w", err)
		}
		d.Scenarios = append(d.Scenarios, sc)
	}

	return &d, rows.Err()
}

// ListDatasets returns all datasets with their scenario counts.
func (s *Store) ListDatasets(ctx context.Context) ([]reorder.DatasetInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT d.id, d.name, d.description, d.horizon, d.created_at, COUNT(sc.position)
		FROM datasets d
		LEFT JOIN dataset_scenarios sc ON sc.dataset_id = d.id
		GROUP BY d.id
		ORDER BY d.name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list datasets: %w", err)
	}
	defer rows.Close()

	infos := []reorder.DatasetInfo{}
	for rows.Next() {
		var (
			info        reorder.DatasetInfo
			description sql.NullString
			createdAt   string
		)
		if err := rows.Scan(&info.ID, &info.Name, &description, &info.Horizon, &createdAt, &info.Count); err != nil {
			return nil, fmt.Errorf("failed to scan dataset: %w", err)
		}
		info.Description = description.String
		info.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// DeleteDataset removes a dataset and, by cascade, its scenarios.
func (s *Store) DeleteDataset(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM datasets WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("failed to delete dataset: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return reorder.ErrDatasetNotFound
	}
	return nil
}

// =============================================================================
// UTILITIES
// =============================================================================

// Reset clears all data (for testing/demo).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tables := []string{"dataset_scenarios", "datasets"}
	for _, table := range tables {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}

func nullString(s string) sql.NullString {
	if strings.TrimSpace(s) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
