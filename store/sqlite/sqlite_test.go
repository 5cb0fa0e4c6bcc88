package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/reorder-engine/generator"
	"github.com/warp/reorder-engine/reorder"
	"github.com/warp/reorder-engine/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestStore(t *testing.T) *sqlite.Store {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

// =============================================================================
// CATALOG TESTS
// =============================================================================

func TestStore_SaveLoad_PreservesScenariosAndOrder(t *testing.T) {
	// GIVEN: A generated dataset with known inventory
	store := newTestStore(t)
	ctx := context.Background()
	scenarios := generator.New(11).Scenarios(15, 12)

	// WHEN: Saving and loading it
	err := store.SaveDataset(ctx, reorder.Dataset{Name: "customer", Description: "fixed seed", Horizon: 12, Scenarios: scenarios})
	require.NoError(t, err)
	d, err := store.LoadDataset(ctx, "customer")
	require.NoError(t, err)

	// THEN: Identical scenarios in identical order
	assert.Equal(t, scenarios, d.Scenarios)
	assert.Equal(t, "fixed seed", d.Description)
	assert.Equal(t, 12, d.Horizon)
	assert.NotEmpty(t, d.ID)
	assert.False(t, d.CreatedAt.IsZero())
}

func TestStore_AbsentStartingInventoryStaysAbsent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	s := generator.New(12).Scenario(4)
	s.Inv = nil

	require.NoError(t, store.SaveDataset(ctx, reorder.Dataset{Name: "upload", Horizon: 4, Scenarios: []reorder.Scenario{s}}))
	d, err := store.LoadDataset(ctx, "upload")
	require.NoError(t, err)

	_, ok := d.Scenarios[0].StartingInventory()
	assert.False(t, ok)
}

func TestStore_SaveReplacesByName(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveDataset(ctx, reorder.Dataset{Name: "sim", Horizon: 6, Scenarios: generator.New(1).Scenarios(8, 6)}))
	replacement := generator.New(2).Scenarios(3, 6)
	require.NoError(t, store.SaveDataset(ctx, reorder.Dataset{Name: "sim", Horizon: 6, Scenarios: replacement}))

	d, err := store.LoadDataset(ctx, "sim")
	require.NoError(t, err)
	assert.Equal(t, replacement, d.Scenarios)

	infos, err := store.ListDatasets(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, 3, infos[0].Count)
}

func TestStore_ListDatasets_SortedWithCounts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveDataset(ctx, reorder.Dataset{Name: "sim", Horizon: 4, Scenarios: generator.New(3).Scenarios(2, 4)}))
	require.NoError(t, store.SaveDataset(ctx, reorder.Dataset{Name: "customer", Horizon: 4, Scenarios: generator.New(4).Scenarios(5, 4)}))
	require.NoError(t, store.SaveDataset(ctx, reorder.Dataset{Name: "empty", Horizon: 4}))

	infos, err := store.ListDatasets(ctx)
	require.NoError(t, err)

	require.Len(t, infos, 3)
	assert.Equal(t, []string{"customer", "empty", "sim"}, []string{infos[0].Name, infos[1].Name, infos[2].Name})
	assert.Equal(t, []int{5, 0, 2}, []int{infos[0].Count, infos[1].Count, infos[2].Count})
}

func TestStore_NotFound(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.LoadDataset(ctx, "missing")
	assert.ErrorIs(t, err, reorder.ErrDatasetNotFound)
	assert.True(t, reorder.IsNotFound(err))

	assert.ErrorIs(t, store.DeleteDataset(ctx, "missing"), reorder.ErrDatasetNotFound)
}

func TestStore_DeleteCascadesScenarios(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.SaveDataset(ctx, reorder.Dataset{Name: "sim", Horizon: 4, Scenarios: generator.New(5).Scenarios(3, 4)}))

	require.NoError(t, store.DeleteDataset(ctx, "sim"))

	// A new dataset under the same name starts clean
	require.NoError(t, store.SaveDataset(ctx, reorder.Dataset{Name: "sim", Horizon: 4, Scenarios: generator.New(6).Scenarios(1, 4)}))
	d, err := store.LoadDataset(ctx, "sim")
	require.NoError(t, err)
	assert.Len(t, d.Scenarios, 1)
}

func TestStore_RequiresName(t *testing.T) {
	store := newTestStore(t)
	assert.Error(t, store.SaveDataset(context.Background(), reorder.Dataset{Horizon: 4}))
}

func TestStore_Reset(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.SaveDataset(ctx, reorder.Dataset{Name: "sim", Horizon: 4, Scenarios: generator.New(7).Scenarios(2, 4)}))

	require.NoError(t, store.Reset(ctx))

	infos, err := store.ListDatasets(ctx)
	require.NoError(t, err)
	assert.Empty(t, infos)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	// GIVEN: A file database with one dataset
	path := filepath.Join(t.TempDir(), "reorder.db")
	ctx := context.Background()
	scenarios := generator.New(8).Scenarios(4, 12)

	first, err := sqlite.New(path)
	require.NoError(t, err)
	require.NoError(t, first.SaveDataset(ctx, reorder.Dataset{Name: "customer", Horizon: 12, Scenarios: scenarios}))
	require.NoError(t, first.Close())

	// WHEN: Reopening it
	second, err := sqlite.New(path)
	require.NoError(t, err)
	defer second.Close()

	// THEN: The dataset is served unchanged
	d, err := second.LoadDataset(ctx, "customer")
	require.NoError(t, err)
	assert.Equal(t, scenarios, d.Scenarios)
}
