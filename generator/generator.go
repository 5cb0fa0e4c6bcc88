/*
Package generator produces random production scenarios.

PURPOSE:
  Demo and simulation data source. Scenarios look like a realistic part
  portfolio: targets between 10 and 200 units, small safety stocks, lead
  times of 1 to 5 periods, lumpy demand and partial scheduled receipts.
  The "customer" and "sim" datasets are generated once with fixed seeds and
  stored; the "random" source generates fresh scenarios on every request.

RANGES (defaults):
  InvTgt   10..200
  SStok    min(0..10, 5% of InvTgt)
  MOQ      2..100
  PkQty    max(1, min(2..20, MOQ/5))
  LdTm     1..5
  Rqt[w]   0..400
  Rec[w]   0..200
  Inv[0]   InvTgt - SStok .. InvTgt + SStok, later periods projected

REPRODUCIBILITY:
  New(seed) always yields the same sequence of scenarios for the same seed
  and config.

USAGE:
  gen := generator.New(42)
  scenarios := gen.Scenarios(20, 12)

SEE ALSO:
  - reorder/types.go: Scenario
  - api/datasets.go: Data sources built from this generator
*/
package generator

import (
	"math/rand/v2"
	"strings"

	"github.com/warp/reorder-engine/reorder"
)

// Range is an inclusive integer range.
type Range struct {
	Min int
	Max int
}

// Config holds the ranges scenarios are drawn from.
type Config struct {
	InvTgt        Range
	SStok         Range
	SStokFraction float64 // SStok is capped at this share of InvTgt
	MOQ           Range
	PkQty         Range
	PkQtyDivisor  int // PkQty is capped at MOQ / PkQtyDivisor
	LdTm          Range
	Rqt           Range
	Rec           Range
	MPNPrefix     string
	MPNLetters    int
}

// DefaultConfig returns the ranges listed in the package documentation.
func DefaultConfig() Config {
	return Config{
		InvTgt:        Range{10, 200},
		SStok:         Range{0, 10},
		SStokFraction: 0.05,
		MOQ:           Range{2, 100},
		PkQty:         Range{2, 20},
		PkQtyDivisor:  5,
		LdTm:          Range{1, 5},
		Rqt:           Range{0, 400},
		Rec:           Range{0, 200},
		MPNPrefix:     "MPN_",
		MPNLetters:    3,
	}
}

// Generator draws scenarios from a seeded source. It is not safe for
// concurrent use.
type Generator struct {
	cfg Config
	rng *rand.Rand
}

// New creates a generator with the default config.
func New(seed uint64) *Generator {
	return NewWithConfig(seed, DefaultConfig())
}

// NewWithConfig creates a generator with a custom config.
func NewWithConfig(seed uint64, cfg Config) *Generator {
	return &Generator{
		cfg: cfg,
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Scenarios generates count scenarios over the given horizon.
func (g *Generator) Scenarios(count, horizon int) []reorder.Scenario {
	out := make([]reorder.Scenario, count)
	for i := range out {
		out[i] = g.Scenario(horizon)
	}
	return out
}

// Scenario generates one scenario with horizon+1 periods.
func (g *Generator) Scenario(horizon int) reorder.Scenario {
	cfg := g.cfg
	periods := horizon + 1

	invTgt := g.between(cfg.InvTgt)
	sstok := min(g.between(cfg.SStok), int(float64(invTgt)*cfg.SStokFraction))
	moq := max(1, g.between(cfg.MOQ))
	pkQty := g.between(cfg.PkQty)
	if cfg.PkQtyDivisor > 0 {
		pkQty = min(pkQty, moq/cfg.PkQtyDivisor)
	}
	pkQty = max(1, pkQty)

	rqt := make([]int, periods)
	rec := make([]int, periods)
	for w := range rqt {
		rqt[w] = g.between(cfg.Rqt)
	}
	for w := range rec {
		rec[w] = g.between(cfg.Rec)
	}

	inv := make([]int, periods)
	inv[0] = g.between(Range{invTgt - sstok, invTgt + sstok})
	for w := 1; w < periods; w++ {
		inv[w] = max(0, inv[w-1]+rec[w-1]-rqt[w-1])
	}

	return reorder.Scenario{
		MPN:    g.mpn(),
		InvTgt: invTgt,
		SStok:  sstok,
		LdTm:   max(1, g.between(cfg.LdTm)),
		MOQ:    moq,
		PkQty:  pkQty,
		Rqt:    rqt,
		Rec:    rec,
		Inv:    inv,
	}
}

// between draws uniformly from r, inclusive on both ends.
func (g *Generator) between(r Range) int {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + g.rng.IntN(r.Max-r.Min+1)
}

const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

func (g *Generator) mpn() string {
	var b strings.Builder
	b.WriteString(g.cfg.MPNPrefix)
	for i := 0; i < g.cfg.MPNLetters; i++ {
		b.WriteByte(letters[g.rng.IntN(len(letters))])
	}
	return b.String()
}
