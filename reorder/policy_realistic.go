package reorder

// realisticOrders is the most conservative policy: it orders earlier and
// larger than TargetLevel to avoid stock-outs.
//
// Primary pass: for an order placed in w, look at the window from its
// arrival r = w + LdTm to min(r + LdTm, horizon) (a double lead-time
// look-ahead). If the lowest projected inventory in that window is under
// the target level, order the window's net demand plus the gap to the
// target, in whole packages and at least the effective minimum. A large
// order (>= 2 x MOQ) skips the next max(1, LdTm/2) periods so orders do not
// cluster.
//
// Emergency pass: any period still without an order whose window reaches
// zero inventory gets an emergency order of 1.5 x InvTgt in whole packages.
//
// Orders are never reduced.
func realisticOrders(s Scenario, horizon int, _ Rand) []int {
	target := s.TargetLevel()
	orders := make([]int, horizon+1)
	sim := baseline(s, horizon)

	last := horizon - s.LdTm
	for w := 0; w <= last; w++ {
		receive := w + s.LdTm
		end := min(receive+s.LdTm, horizon)

		low := sim.lowest(receive, end)
		if low >= target {
			continue
		}

		needed := sum(s.Rqt, receive, end) - sum(s.Rec, receive, end) + (target - low)
		qty := packed(s, needed)
		orders[w] = qty
		sim.add(receive, qty)

		if qty >= 2*s.MOQ {
			w += max(1, s.LdTm/2)
		}
	}

	emergency := emergencyQuantity(s)
	for w := 0; w <= last; w++ {
		if orders[w] != 0 {
			continue
		}
		receive := w + s.LdTm
		if sim.anyEmpty(receive, min(receive+s.LdTm, horizon)) {
			orders[w] = emergency
			sim.add(receive, emergency)
		}
	}
	return orders
}
