package reorder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/reorder-engine/reorder"
)

func TestAssemble_ReceiptsFoldIntoLastPeriod(t *testing.T) {
	// GIVEN: Orders at periods 2 and 3 with lead time 2 over horizon 3
	s := part(10, 0, 2, 1, 1, 10, 0, 0, 0, 0)

	// WHEN: Assembling
	sched, err := reorder.Assemble(s, []int{0, 0, 30, 40}, 3)
	require.NoError(t, err)

	// THEN: Both arrivals fall past the horizon and land on the last period
	assert.Equal(t, []int{0, 0, 0, 70}, sched.Rec)
	assert.Equal(t, []int{0, 0, 30, 40}, sched.Ord)
}

func TestAssemble_InventoryRecurrence(t *testing.T) {
	// GIVEN: Start 20, demand 10 per period, order 30 at period 0, lead time 1
	s := part(20, 0, 1, 10, 5, 20, 10, 10, 10, 10)

	sched, err := reorder.Assemble(s, []int{30, 0, 0, 0}, 3)
	require.NoError(t, err)

	// THEN: Inv[w] = max(0, Inv[w-1] + Rec[w-1] - Rqt[w-1])
	assert.Equal(t, []int{0, 30, 0, 0}, sched.Rec)
	assert.Equal(t, []int{20, 10, 30, 20}, sched.Inv)
	assert.Equal(t, reorder.NoteSuccess, sched.Notes)
	assert.True(t, sched.Diagnostics.OK())
}

func TestAssemble_DefaultsStartToTarget(t *testing.T) {
	s := part(15, 0, 1, 1, 1, 0, 0, 0)
	s.Inv = nil

	sched, err := reorder.Assemble(s, []int{0, 0}, 1)
	require.NoError(t, err)

	assert.Equal(t, 15, sched.Inv[0])
}

func TestAssemble_InRecIsCopiedNotProjected(t *testing.T) {
	// GIVEN: Scheduled receipts on the scenario
	s := part(10, 0, 1, 1, 1, 10, 5, 5, 5)
	s.Rec = []int{100, 100, 100}

	sched, err := reorder.Assemble(s, []int{0, 0, 0}, 2)
	require.NoError(t, err)

	// THEN: They are kept for audit; the projection only uses order receipts
	assert.Equal(t, []int{100, 100, 100}, sched.InRec)
	assert.Equal(t, []int{0, 0, 0}, sched.Rec)
	assert.Equal(t, []int{10, 5, 0}, sched.Inv)
}

func TestAssemble_Notes(t *testing.T) {
	tests := []struct {
		name   string
		start  int
		rqt    []int
		zero   bool
		excess bool
		notes  string
	}{
		{
			name:  "stock out",
			start: 5, rqt: []int{10, 0, 0, 0},
			zero:  true,
			notes: reorder.NoteZeroInventory,
		},
		{
			name:   "excess for the whole horizon",
			start:  40, rqt: []int{0, 0, 0, 0},
			excess: true,
			notes:  reorder.NoteExcessInventory,
		},
		{
			name:   "excess then stock out",
			start:  40, rqt: []int{0, 0, 40, 0},
			zero:   true,
			excess: true,
			notes:  reorder.NoteZeroInventory + " " + reorder.NoteExcessInventory,
		},
		{
			name:  "single excess period is tolerated",
			start: 40, rqt: []int{10, 0, 0},
			notes: reorder.NoteSuccess,
		},
		{
			name:  "exactly three times target is not excess",
			start: 30, rqt: []int{0, 0, 0},
			notes: reorder.NoteSuccess,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// GIVEN: Target 10 (excess above 30) and no orders
			s := part(10, 0, 1, 1, 1, tt.start, tt.rqt...)
			horizon := len(tt.rqt) - 1

			sched, err := reorder.Assemble(s, make([]int, horizon+1), horizon)
			require.NoError(t, err)

			assert.Equal(t, tt.zero, sched.Diagnostics.ZeroInventory)
			assert.Equal(t, tt.excess, sched.Diagnostics.ExcessInventory)
			assert.Equal(t, tt.notes, sched.Notes)
		})
	}
}

func TestAssemble_NotesWireFormat(t *testing.T) {
	// GIVEN: Stock runs out, then a large order lands and sits above 3x target
	s := part(10, 0, 1, 1, 1, 10, 20, 0, 0, 0)

	sched, err := reorder.Assemble(s, []int{100, 0, 0, 0}, 3)
	require.NoError(t, err)

	// THEN: Both warnings, one space apart, nothing trailing
	assert.Equal(t, []int{10, 0, 100, 100}, sched.Inv)
	assert.Equal(t,
		"WARNING: Inventory reaches zero in some weeks. CAUTION: Inventory exceeds 3x target for 2+ consecutive weeks.",
		sched.Notes)
}

func TestAssemble_DoesNotAliasInputs(t *testing.T) {
	s := part(20, 0, 1, 1, 1, 20, 10, 10, 10)
	ord := []int{5, 0, 0}

	sched, err := reorder.Assemble(s, ord, 2)
	require.NoError(t, err)

	s.Rqt[0] = 999
	s.Rec[0] = 999
	ord[0] = 999

	assert.Equal(t, []int{10, 10, 10}, sched.Rqt)
	assert.Equal(t, []int{0, 0, 0}, sched.InRec)
	assert.Equal(t, []int{5, 0, 0}, sched.Ord)
}

func TestAssemble_InvalidOrders(t *testing.T) {
	s := part(20, 0, 1, 1, 1, 20, 10, 10, 10)

	_, err := reorder.Assemble(s, []int{0, 0}, 2)
	assert.ErrorIs(t, err, reorder.ErrInvalidOrders)

	_, err = reorder.Assemble(s, []int{0, -1, 0}, 2)
	assert.ErrorIs(t, err, reorder.ErrInvalidOrders)
	assert.True(t, reorder.IsClientError(err))
}

// =============================================================================
// RECOMPUTE
// =============================================================================

func TestRecompute_MatchesAssembleForEditedOrders(t *testing.T) {
	// GIVEN: A computed schedule
	s := part(20, 0, 1, 10, 5, 20, 10, 10, 10, 10, 10)
	engine := reorder.NewEngine(4)
	sched, err := engine.ComputeSchedule(s, reorder.PolicyTargetLevel)
	require.NoError(t, err)

	// WHEN: A planner moves the orders by hand
	edited := *sched
	edited.Ord = []int{0, 0, 60, 0, 0}
	got, err := reorder.Recompute(edited)
	require.NoError(t, err)

	// THEN: Same result as assembling the scenario with those orders
	want, err := reorder.Assemble(s, edited.Ord, 4)
	require.NoError(t, err)
	assert.Equal(t, want.Rec, got.Rec)
	assert.Equal(t, want.Inv, got.Inv)
	assert.Equal(t, want.Notes, got.Notes)
	assert.Equal(t, "TargetLevel", got.Policy)

	// AND: The input schedule is untouched
	assert.Equal(t, sched.Rec, edited.Rec)
}

func TestRecompute_Errors(t *testing.T) {
	base := reorder.Schedule{
		MPN: "MPN_X", InvTgt: 10, LdTm: 1, MOQ: 1, PkQty: 1,
		Rqt: []int{1, 1, 1}, InRec: []int{0, 0, 0},
		Ord: []int{0, 0, 0}, Inv: []int{10, 9, 8},
	}

	t.Run("missing starting inventory", func(t *testing.T) {
		in := base
		in.Inv = nil
		_, err := reorder.Recompute(in)
		assert.ErrorIs(t, err, reorder.ErrInvalidScenario)
	})

	t.Run("negative edited order", func(t *testing.T) {
		in := base
		in.Ord = []int{0, -5, 0}
		_, err := reorder.Recompute(in)
		assert.ErrorIs(t, err, reorder.ErrInvalidOrders)
	})

	t.Run("too short", func(t *testing.T) {
		in := base
		in.Rqt = []int{1}
		_, err := reorder.Recompute(in)
		assert.ErrorIs(t, err, reorder.ErrInvalidScenario)
	})

	t.Run("missing input receipts default to none", func(t *testing.T) {
		in := base
		in.InRec = nil
		out, err := reorder.Recompute(in)
		require.NoError(t, err)
		assert.Equal(t, []int{0, 0, 0}, out.InRec)
	})
}
