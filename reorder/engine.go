/*
engine.go - Entry points for single and batch schedule computation

PURPOSE:
  Binds a horizon (and, for the Mock policy, a random source) to the pure
  policy and assembly functions. The Engine holds configuration only: no
  call leaves anything behind in it.

OPERATIONS:
  ComputeSchedule:           One scenario, one policy
  ComputeSchedules:          Many scenarios, order preserving, fail fast
  ComputeSchedulesConcurrent: Same contract, scenarios fanned out to workers
  Compare:                   One scenario, several policies side by side

BATCH FAILURES:
  A batch either fully succeeds or fails. The first invalid scenario stops
  the batch with a *ScenarioError that records its index and MPN.

CONCURRENCY:
  Scenarios are independent, so the concurrent batch simply runs them on a
  bounded errgroup. Inside a scenario the period recurrence is sequential.
  A caller-supplied Rand is wrapped in a mutex so it can be shared.

EXAMPLE:
  engine := reorder.NewEngine(12)
  schedules, err := engine.ComputeSchedules(scenarios, reorder.PolicyRealistic)
*/
package reorder

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// DefaultHorizon is the planning horizon used when none is configured.
const DefaultHorizon = 12

// Engine computes order schedules over a fixed horizon.
type Engine struct {
	// Horizon is the last period index; sequences have Horizon+1 entries.
	Horizon int

	rng Rand
}

// NewEngine creates an engine for the given horizon. The Mock policy draws
// from the process-wide random source until WithRand is used.
func NewEngine(horizon int) *Engine {
	return &Engine{Horizon: horizon}
}

// WithRand returns a copy of the engine whose Mock policy draws from rng.
// The source is serialized, so the engine stays safe for concurrent use.
func (e *Engine) WithRand(rng Rand) *Engine {
	cp := *e
	if rng != nil {
		cp.rng = &lockedRand{src: rng}
	} else {
		cp.rng = nil
	}
	return &cp
}

// WithHorizon returns a copy of the engine planning over horizon periods.
// The random source is shared with e.
func (e *Engine) WithHorizon(horizon int) *Engine {
	cp := *e
	cp.Horizon = horizon
	return &cp
}

// ComputeSchedule runs one policy over one scenario and assembles the result.
func (e *Engine) ComputeSchedule(s Scenario, p Policy) (*Schedule, error) {
	orders, err := Orders(p, s, e.Horizon, e.rng)
	if err != nil {
		return nil, err
	}
	schedule, err := Assemble(s, orders, e.Horizon)
	if err != nil {
		return nil, err
	}
	schedule.Policy = p.String()
	return schedule, nil
}

// ComputeSchedules maps ComputeSchedule over scenarios. The result has one
// schedule per scenario, in the same order.
func (e *Engine) ComputeSchedules(scenarios []Scenario, p Policy) ([]Schedule, error) {
	if !p.Valid() {
		return nil, &UnknownPolicyError{Name: p.String()}
	}
	out := make([]Schedule, len(scenarios))
	for i, s := range scenarios {
		schedule, err := e.ComputeSchedule(s, p)
		if err != nil {
			return nil, &ScenarioError{Index: i, MPN: s.MPN, Err: err}
		}
		out[i] = *schedule
	}
	return out, nil
}

// ComputeSchedulesConcurrent is ComputeSchedules with up to workers
// scenarios in flight. workers < 1 means one worker. The output order
// matches the input order regardless of completion order.
func (e *Engine) ComputeSchedulesConcurrent(ctx context.Context, scenarios []Scenario, p Policy, workers int) ([]Schedule, error) {
	if !p.Valid() {
		return nil, &UnknownPolicyError{Name: p.String()}
	}
	out := make([]Schedule, len(scenarios))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, workers))
	for i, s := range scenarios {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			schedule, err := e.ComputeSchedule(s, p)
			if err != nil {
				return &ScenarioError{Index: i, MPN: s.MPN, Err: err}
			}
			out[i] = *schedule
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Comparison is one policy's outcome for a scenario.
type Comparison struct {
	Policy   Policy
	Schedule Schedule
	Summary  Summary
}

// Compare runs each policy over the same scenario, in the order given.
// With no policies it compares every deterministic policy.
func (e *Engine) Compare(s Scenario, policies ...Policy) ([]Comparison, error) {
	if len(policies) == 0 {
		policies = DeterministicPolicies()
	}
	out := make([]Comparison, 0, len(policies))
	for _, p := range policies {
		schedule, err := e.ComputeSchedule(s, p)
		if err != nil {
			return nil, err
		}
		out = append(out, Comparison{
			Policy:   p,
			Schedule: *schedule,
			Summary:  Summarize(*schedule),
		})
	}
	return out, nil
}
