package reorder

import "fmt"

// Validate checks that a scenario can be planned over the given horizon.
// It never modifies the scenario.
func Validate(s Scenario, horizon int) error {
	if horizon < 1 {
		return fmt.Errorf("%w: %d (must be at least 1)", ErrInvalidHorizon, horizon)
	}

	invalid := func(field, reason string) error {
		return &ValidationError{MPN: s.MPN, Field: field, Reason: reason, Kind: ErrInvalidScenario}
	}

	// Division guards first: everything downstream rounds by these.
	if s.MOQ < 1 {
		return &ValidationError{MPN: s.MPN, Field: "MOQ", Reason: fmt.Sprintf("must be at least 1, got %d", s.MOQ), Kind: ErrInvalidConfiguration}
	}
	if s.PkQty < 1 {
		return &ValidationError{MPN: s.MPN, Field: "PkQty", Reason: fmt.Sprintf("must be at least 1, got %d", s.PkQty), Kind: ErrInvalidConfiguration}
	}

	if s.LdTm < 1 {
		return invalid("LdTm", fmt.Sprintf("must be at least 1, got %d", s.LdTm))
	}
	if s.InvTgt < 0 {
		return invalid("InvTgt", fmt.Sprintf("must not be negative, got %d", s.InvTgt))
	}
	if s.SStok < 0 {
		return invalid("SStok", fmt.Sprintf("must not be negative, got %d", s.SStok))
	}

	want := horizon + 1
	if len(s.Rqt) != want {
		return invalid("Rqt", fmt.Sprintf("has %d periods, want %d", len(s.Rqt), want))
	}
	if len(s.Rec) != want {
		return invalid("Rec", fmt.Sprintf("has %d periods, want %d", len(s.Rec), want))
	}
	if len(s.Inv) > want {
		return invalid("Inv", fmt.Sprintf("has %d periods, want at most %d", len(s.Inv), want))
	}
	if err := nonNegative(s.Rqt); err != nil {
		return invalid("Rqt", err.Error())
	}
	if err := nonNegative(s.Rec); err != nil {
		return invalid("Rec", err.Error())
	}
	if inv, ok := s.StartingInventory(); ok && inv < 0 {
		return invalid("Inv", fmt.Sprintf("starting inventory must not be negative, got %d", inv))
	}
	return nil
}

// validateOrders checks an order vector against the horizon.
func validateOrders(mpn string, ord []int, horizon int) error {
	if len(ord) != horizon+1 {
		return &ValidationError{MPN: mpn, Field: "Ord", Reason: fmt.Sprintf("has %d periods, want %d", len(ord), horizon+1), Kind: ErrInvalidOrders}
	}
	if err := nonNegative(ord); err != nil {
		return &ValidationError{MPN: mpn, Field: "Ord", Reason: err.Error(), Kind: ErrInvalidOrders}
	}
	return nil
}

func nonNegative(values []int) error {
	for i, v := range values {
		if v < 0 {
			return fmt.Errorf("period %d is negative (%d)", i, v)
		}
	}
	return nil
}
