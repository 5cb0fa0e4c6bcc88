package generator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/reorder-engine/generator"
	"github.com/warp/reorder-engine/reorder"
)

func TestGenerator_SameSeedSameScenarios(t *testing.T) {
	a := generator.New(42).Scenarios(20, 12)
	b := generator.New(42).Scenarios(20, 12)
	c := generator.New(43).Scenarios(20, 12)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestGenerator_DefaultRanges(t *testing.T) {
	// GIVEN: Many generated scenarios
	scenarios := generator.New(7).Scenarios(500, 12)

	for _, s := range scenarios {
		// THEN: Every field is inside its documented range
		assert.Regexp(t, `^MPN_[A-Z]{3}$`, s.MPN)
		assert.True(t, s.InvTgt >= 10 && s.InvTgt <= 200, "InvTgt %d", s.InvTgt)
		assert.True(t, s.SStok >= 0 && s.SStok <= 10, "SStok %d", s.SStok)
		assert.LessOrEqual(t, s.SStok, s.InvTgt/20+1)
		assert.True(t, s.MOQ >= 2 && s.MOQ <= 100, "MOQ %d", s.MOQ)
		assert.True(t, s.PkQty >= 1 && s.PkQty <= 20, "PkQty %d", s.PkQty)
		assert.True(t, s.LdTm >= 1 && s.LdTm <= 5, "LdTm %d", s.LdTm)

		require.Len(t, s.Rqt, 13)
		require.Len(t, s.Rec, 13)
		require.Len(t, s.Inv, 13)
		for w := range s.Rqt {
			assert.True(t, s.Rqt[w] >= 0 && s.Rqt[w] <= 400)
			assert.True(t, s.Rec[w] >= 0 && s.Rec[w] <= 200)
		}

		// Starting inventory is near the target, later periods projected
		assert.True(t, s.Inv[0] >= s.InvTgt-s.SStok && s.Inv[0] <= s.InvTgt+s.SStok)
		for w := 1; w < len(s.Inv); w++ {
			assert.Equal(t, max(0, s.Inv[w-1]+s.Rec[w-1]-s.Rqt[w-1]), s.Inv[w])
		}

		// Always plannable
		assert.NoError(t, reorder.Validate(s, 12))
	}
}

func TestGenerator_PackageQuantityNeverZero(t *testing.T) {
	// GIVEN: MOQs so small that MOQ/5 rounds to zero
	cfg := generator.DefaultConfig()
	cfg.MOQ = generator.Range{Min: 1, Max: 4}

	for _, s := range generator.NewWithConfig(9, cfg).Scenarios(200, 4) {
		assert.GreaterOrEqual(t, s.PkQty, 1)
	}
}

func TestGenerator_CustomConfig(t *testing.T) {
	cfg := generator.DefaultConfig()
	cfg.LdTm = generator.Range{Min: 3, Max: 3}
	cfg.Rqt = generator.Range{Min: 0, Max: 0}
	cfg.MPNPrefix = "PN-"
	cfg.MPNLetters = 5

	s := generator.NewWithConfig(1, cfg).Scenario(8)

	assert.Equal(t, 3, s.LdTm)
	assert.Equal(t, make([]int, 9), s.Rqt)
	assert.Regexp(t, `^PN-[A-Z]{5}$`, s.MPN)
}
