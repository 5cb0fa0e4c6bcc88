/*
lotsize.go - Lot sizing arithmetic shared by the policies

PURPOSE:
  Every policy turns a raw shortfall into an orderable quantity: rounded to
  whole packages (PkQty) and at least the minimum order quantity (MOQ).
  The rounding lives here so every policy agrees on it.

EFFECTIVE MINIMUM:
  When MOQ is not itself a multiple of PkQty, "at least MOQ" and "whole
  packages" cannot both be met by MOQ. The effective minimum is the
  smallest package multiple that is >= MOQ:

    MOQ=20, PkQty=5  -> 20
    MOQ=22, PkQty=5  -> 25

EMERGENCY QUANTITY:
  The realistic policy's emergency order is 1.5 x InvTgt rounded up to
  whole packages. The factor is applied with decimal arithmetic so odd
  targets round exactly (InvTgt=15 -> 22.5 -> 23 before packing).

SEE ALSO:
  - policy_target_level.go, policy_realistic.go: Floor at the effective minimum
  - policy_lead_time_window.go: Rounds to MOQ multiples first
*/
package reorder

import "github.com/shopspring/decimal"

// emergencyFactor is the multiple of InvTgt ordered by an emergency order.
var emergencyFactor = decimal.RequireFromString("1.5")

// roundUp returns the smallest multiple of m that is >= q. m must be >= 1.
func roundUp(q, m int) int {
	if q <= 0 {
		return 0
	}
	return (q + m - 1) / m * m
}

// roundDown returns the largest multiple of m that is <= q. m must be >= 1.
func roundDown(q, m int) int {
	if q <= 0 {
		return 0
	}
	return q / m * m
}

// effectiveMinimum is the smallest whole-package quantity that satisfies MOQ.
func effectiveMinimum(s Scenario) int {
	return roundUp(s.MOQ, s.PkQty)
}

// packed rounds a shortfall up to whole packages and floors it at the
// effective minimum.
func packed(s Scenario, needed int) int {
	return max(roundUp(needed, s.PkQty), effectiveMinimum(s))
}

// emergencyQuantity is max(effective minimum, ceil(1.5 x InvTgt) in whole packages).
func emergencyQuantity(s Scenario) int {
	raw := decimal.NewFromInt(int64(s.InvTgt)).Mul(emergencyFactor)
	packs := raw.Div(decimal.NewFromInt(int64(s.PkQty))).Ceil()
	qty := int(packs.IntPart()) * s.PkQty
	return max(qty, effectiveMinimum(s))
}

// excessThreshold is the inventory above which a period counts as excessive.
func excessThreshold(s Scenario) int {
	return s.InvTgt * ExcessFactor
}
