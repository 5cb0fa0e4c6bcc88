package reorder_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/reorder-engine/reorder"
)

func TestValidate(t *testing.T) {
	valid := func() reorder.Scenario {
		return part(100, 5, 2, 20, 5, 100, 10, 10, 10, 10)
	}

	tests := []struct {
		name    string
		mutate  func(s *reorder.Scenario)
		horizon int
		kind    error
		field   string
	}{
		{"zero MOQ", func(s *reorder.Scenario) { s.MOQ = 0 }, 3, reorder.ErrInvalidConfiguration, "MOQ"},
		{"zero PkQty", func(s *reorder.Scenario) { s.PkQty = 0 }, 3, reorder.ErrInvalidConfiguration, "PkQty"},
		{"zero lead time", func(s *reorder.Scenario) { s.LdTm = 0 }, 3, reorder.ErrInvalidScenario, "LdTm"},
		{"negative target", func(s *reorder.Scenario) { s.InvTgt = -1 }, 3, reorder.ErrInvalidScenario, "InvTgt"},
		{"negative safety stock", func(s *reorder.Scenario) { s.SStok = -1 }, 3, reorder.ErrInvalidScenario, "SStok"},
		{"short Rqt", func(s *reorder.Scenario) { s.Rqt = s.Rqt[:3] }, 3, reorder.ErrInvalidScenario, "Rqt"},
		{"long Rec", func(s *reorder.Scenario) { s.Rec = append(s.Rec, 0) }, 3, reorder.ErrInvalidScenario, "Rec"},
		{"long Inv", func(s *reorder.Scenario) { s.Inv = make([]int, 5) }, 3, reorder.ErrInvalidScenario, "Inv"},
		{"negative requirement", func(s *reorder.Scenario) { s.Rqt[2] = -4 }, 3, reorder.ErrInvalidScenario, "Rqt"},
		{"negative receipt", func(s *reorder.Scenario) { s.Rec[0] = -1 }, 3, reorder.ErrInvalidScenario, "Rec"},
		{"negative start", func(s *reorder.Scenario) { s.Inv = []int{-1} }, 3, reorder.ErrInvalidScenario, "Inv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.mutate(&s)

			err := reorder.Validate(s, tt.horizon)

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)
			var ve *reorder.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
			assert.Equal(t, "MPN_TST", ve.MPN)
			assert.True(t, reorder.IsClientError(err))
		})
	}
}

func TestValidate_Accepts(t *testing.T) {
	s := part(100, 5, 2, 20, 5, 100, 10, 10, 10, 10)
	assert.NoError(t, reorder.Validate(s, 3))

	// Full-length known inventory is allowed; only Inv[0] is used
	s.Inv = []int{100, 90, 80, 70}
	assert.NoError(t, reorder.Validate(s, 3))

	// Absent starting inventory
	s.Inv = nil
	assert.NoError(t, reorder.Validate(s, 3))
}

func TestValidate_Horizon(t *testing.T) {
	s := part(100, 5, 2, 20, 5, 100, 10)

	err := reorder.Validate(s, 0)

	assert.ErrorIs(t, err, reorder.ErrInvalidHorizon)
	assert.True(t, reorder.IsClientError(err))
	assert.ErrorIs(t, reorder.Validate(s, -1), reorder.ErrInvalidHorizon)

	// A one-period scenario is rejected by the engine too
	_, err = reorder.NewEngine(0).ComputeSchedule(s, reorder.PolicyTargetLevel)
	assert.ErrorIs(t, err, reorder.ErrInvalidHorizon)

	// The shortest plannable horizon is one period after now
	assert.NoError(t, reorder.Validate(part(100, 5, 2, 20, 5, 100, 10, 10), 1))
}

func TestErrorHelpers(t *testing.T) {
	assert.True(t, reorder.IsNotFound(reorder.ErrDatasetNotFound))
	assert.False(t, reorder.IsClientError(reorder.ErrDatasetNotFound))
	assert.False(t, reorder.IsClientError(errors.New("disk full")))

	wrapped := &reorder.ScenarioError{Index: 2, MPN: "MPN_ABC", Err: &reorder.UnknownPolicyError{Name: "x"}}
	assert.ErrorIs(t, wrapped, reorder.ErrUnknownPolicy)
	assert.Contains(t, wrapped.Error(), "scenario 2 (MPN_ABC)")
}
