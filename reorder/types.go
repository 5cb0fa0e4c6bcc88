/*
Package reorder provides the order-scheduling engine.

PURPOSE:
  Turns a production scenario (demand forecast, scheduled receipts, lot
  sizing rules) into a week-by-week order schedule with projected receipts
  and inventory. Several interchangeable ordering policies decide WHEN and
  HOW MUCH to order; one shared assembler turns their order vector into the
  final schedule.

KEY CONCEPTS IN THIS FILE (types.go):
  - Scenario: Immutable input for one part (MPN)
  - Schedule: Computed output for one (scenario, policy) pair
  - Diagnostics: Structured version of the schedule notes

PERIODS:
  Every per-period sequence is zero-indexed and covers periods 0..horizon
  inclusive, so it has horizon+1 entries. Period 0 is "now": its inventory
  is the starting condition and is never changed by a policy.

DESIGN PRINCIPLES:
  1. Purity: Policies and the assembler are functions of their inputs
  2. Read-only inputs: Scenario slices are never written to
  3. Explicit horizon: No package-level period count
  4. Explicit optional values: Starting inventory may be absent, and
     "absent" is different from "zero"

USAGE:
  engine := reorder.NewEngine(12)
  schedule, err := engine.ComputeSchedule(scenario, reorder.PolicyTargetLevel)
  if err != nil {
      return err
  }
  fmt.Println(schedule.Notes)

SEE ALSO:
  - policy.go: Policy enum and order-function table
  - assemble.go: Schedule assembly and diagnostics
  - engine.go: Single and batch entry points
*/
package reorder

// =============================================================================
// SCENARIO - Input for one part
// =============================================================================

// Scenario is the production scenario for one part. Field names follow the
// wire format used by the scenario sources.
type Scenario struct {
	MPN    string `json:"MPN"`
	InvTgt int    `json:"InvTgt"`
	SStok  int    `json:"SStok"`
	LdTm   int    `json:"LdTm"`
	MOQ    int    `json:"MOQ"`
	PkQty  int    `json:"PkQty"`
	Rqt    []int  `json:"Rqt"`
	Rec    []int  `json:"Rec"`

	// Inv is the known inventory. Only Inv[0] is used, as the starting
	// inventory. A nil or empty Inv means "not provided".
	Inv []int `json:"Inv,omitempty"`
}

// StartingInventory returns Inv[0] and true when a starting inventory was
// supplied, or (0, false) otherwise.
func (s Scenario) StartingInventory() (int, bool) {
	if len(s.Inv) == 0 {
		return 0, false
	}
	return s.Inv[0], true
}

// Start is the inventory the simulation begins with: the supplied starting
// inventory, or InvTgt when none was supplied.
func (s Scenario) Start() int {
	if inv, ok := s.StartingInventory(); ok {
		return inv
	}
	return s.InvTgt
}

// TargetLevel is the level the replenishment policies aim for.
func (s Scenario) TargetLevel() int {
	return s.InvTgt + s.SStok
}

// HorizonOf returns the horizon implied by the scenario's requirement
// sequence. It is -1 for a scenario with no requirements.
func HorizonOf(s Scenario) int {
	return len(s.Rqt) - 1
}

// =============================================================================
// SCHEDULE - Output for one (scenario, policy) pair
// =============================================================================

// Schedule is the computed order schedule for one scenario.
type Schedule struct {
	MPN    string `json:"MPN"`
	InvTgt int    `json:"InvTgt"`
	SStok  int    `json:"SStok"`
	LdTm   int    `json:"LdTm"`
	MOQ    int    `json:"MOQ"`
	PkQty  int    `json:"PkQty"`

	Rqt   []int `json:"Rqt"`
	InRec []int `json:"InRec"` // input receipts, kept for audit
	Ord   []int `json:"Ord"`
	Rec   []int `json:"Rec"` // receipts produced by Ord
	Inv   []int `json:"Inv"`

	Notes       string      `json:"Notes"`
	Policy      string      `json:"Policy,omitempty"`
	Diagnostics Diagnostics `json:"Diagnostics"`
}

// Horizon returns the last period index of the schedule.
func (s Schedule) Horizon() int {
	return len(s.Rqt) - 1
}

// Diagnostics are the inventory conditions the notes report on.
type Diagnostics struct {
	ZeroInventory   bool `json:"ZeroInventory"`
	ExcessInventory bool `json:"ExcessInventory"`
}

// OK reports whether neither warning condition was found.
func (d Diagnostics) OK() bool {
	return !d.ZeroInventory && !d.ExcessInventory
}

const (
	// NoteZeroInventory is reported when inventory reaches zero in any period.
	NoteZeroInventory = "WARNING: Inventory reaches zero in some weeks."

	// NoteExcessInventory is reported when inventory exceeds ExcessFactor x
	// InvTgt for ExcessRun or more consecutive periods.
	NoteExcessInventory = "CAUTION: Inventory exceeds 3x target for 2+ consecutive weeks."

	// NoteSuccess is reported when no warning applies.
	NoteSuccess = "Schedule optimized successfully."
)

const (
	// ExcessFactor is the multiple of InvTgt above which inventory is excessive.
	ExcessFactor = 3

	// ExcessRun is how many consecutive excessive periods raise the caution.
	ExcessRun = 2
)

// copyInts returns a fresh copy of s, never aliasing the input.
func copyInts(s []int) []int {
	out := make([]int, len(s))
	copy(out, s)
	return out
}
