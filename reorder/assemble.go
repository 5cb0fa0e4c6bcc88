/*
assemble.go - Schedule assembly from an order vector

PURPOSE:
  Every policy produces only an order vector. The assembler is the single
  place that turns orders into receipts and projected inventory, and
  reports on the result. Manual edits go through the same code (Recompute),
  so a hand-edited schedule is projected exactly like a computed one.

RECEIPTS:
  An order placed in period w arrives in period min(w + LdTm, horizon).
  Orders that would arrive after the horizon are folded into the last
  period: units are conserved, timing is approximate at the edge.

INVENTORY:
  Inv[0] is the starting inventory (or InvTgt). Then

    Inv[w] = max(0, Inv[w-1] + Rec[w-1] - Rqt[w-1])

  Demand that cannot be met is lost, not backlogged.

DIAGNOSTICS:
  ZeroInventory:   any Inv[w] <= 0
  ExcessInventory: Inv[w] > 3 x InvTgt in 2 or more consecutive periods

SEE ALSO:
  - engine.go: Calls Assemble with a policy's orders
  - summary.go: Aggregates over a finished schedule
*/
package reorder

import "strings"

// Assemble builds the schedule for a scenario and an order vector.
// The scenario and the order vector are copied, never retained.
func Assemble(s Scenario, ord []int, horizon int) (*Schedule, error) {
	if err := Validate(s, horizon); err != nil {
		return nil, err
	}
	if err := validateOrders(s.MPN, ord, horizon); err != nil {
		return nil, err
	}

	schedule := &Schedule{
		MPN:    s.MPN,
		InvTgt: s.InvTgt,
		SStok:  s.SStok,
		LdTm:   s.LdTm,
		MOQ:    s.MOQ,
		PkQty:  s.PkQty,
		Rqt:    copyInts(s.Rqt),
		InRec:  copyInts(s.Rec),
		Ord:    copyInts(ord),
	}
	project(schedule, s.Start())
	return schedule, nil
}

// Recompute re-derives Rec, Inv, Notes and Diagnostics of a schedule whose
// Ord was edited by hand. The horizon is len(Rqt)-1 and the starting
// inventory is the schedule's own Inv[0]. The input is not modified.
func Recompute(in Schedule) (*Schedule, error) {
	horizon := in.Horizon()
	if horizon < 1 {
		return nil, &ValidationError{MPN: in.MPN, Field: "Rqt", Reason: "needs at least 2 periods", Kind: ErrInvalidScenario}
	}
	if len(in.Inv) == 0 {
		return nil, &ValidationError{MPN: in.MPN, Field: "Inv", Reason: "missing starting inventory", Kind: ErrInvalidScenario}
	}

	// Reuse scenario validation for the carried-through parameters.
	s := Scenario{
		MPN:    in.MPN,
		InvTgt: in.InvTgt,
		SStok:  in.SStok,
		LdTm:   in.LdTm,
		MOQ:    in.MOQ,
		PkQty:  in.PkQty,
		Rqt:    in.Rqt,
		Rec:    in.InRec,
		Inv:    in.Inv[:1],
	}
	if s.Rec == nil {
		s.Rec = make([]int, horizon+1)
	}
	out, err := Assemble(s, in.Ord, horizon)
	if err != nil {
		return nil, err
	}
	out.Policy = in.Policy
	return out, nil
}

// project fills Rec, Inv, Diagnostics and Notes from Ord.
func project(sched *Schedule, start int) {
	horizon := len(sched.Ord) - 1

	sched.Rec = make([]int, horizon+1)
	for w, qty := range sched.Ord {
		if qty > 0 {
			sched.Rec[min(w+sched.LdTm, horizon)] += qty
		}
	}

	sched.Inv = make([]int, horizon+1)
	sched.Inv[0] = start
	for w := 1; w <= horizon; w++ {
		sched.Inv[w] = max(0, sched.Inv[w-1]+sched.Rec[w-1]-sched.Rqt[w-1])
	}

	sched.Diagnostics = diagnose(sched.Inv, sched.InvTgt)
	sched.Notes = notes(sched.Diagnostics)
}

// diagnose scans projected inventory for the warning conditions.
func diagnose(inv []int, invTgt int) Diagnostics {
	var d Diagnostics
	ceiling := invTgt * ExcessFactor
	run := 0
	for _, level := range inv {
		if level <= 0 {
			d.ZeroInventory = true
		}
		if level > ceiling {
			run++
			if run >= ExcessRun {
				d.ExcessInventory = true
			}
		} else {
			run = 0
		}
	}
	return d
}

// notes renders diagnostics as the human-readable schedule note. Warnings
// are separated by one space, with no trailing space.
func notes(d Diagnostics) string {
	if d.OK() {
		return NoteSuccess
	}
	var parts []string
	if d.ZeroInventory {
		parts = append(parts, NoteZeroInventory)
	}
	if d.ExcessInventory {
		parts = append(parts, NoteExcessInventory)
	}
	return strings.Join(parts, " ")
}
