package reorder

// targetLevelOrders keeps projected inventory at InvTgt + SStok.
//
// It simulates inventory without new orders, then walks the periods in
// order: whenever the inventory projected for the period an order placed
// now would land in (w + LdTm) is below the target level, it orders the
// shortfall in whole packages (at least the effective minimum) and adds it
// to the projection from that period on.
//
// After each period it looks at later orders whose arrival would leave two
// consecutive periods above 3 x InvTgt and trims them, never below the
// effective minimum. Later orders do not exist yet at that point, so the
// trim is unreachable.
func targetLevelOrders(s Scenario, horizon int, _ Rand) []int {
	target := s.TargetLevel()
	ceiling := excessThreshold(s)
	floor := effectiveMinimum(s)
	orders := make([]int, horizon+1)
	sim := baseline(s, horizon)

	last := horizon - s.LdTm
	for w := 0; w <= last; w++ {
		receive := w + s.LdTm
		if projected := sim[receive]; projected < target {
			qty := packed(s, target-projected)
			orders[w] = qty
			sim.add(receive, qty)
		}

		// Orders are only written at w, so orders[c] is still 0 for every
		// c > w here and this pass never trims anything.
		for c := w + 1; c <= last; c++ {
			rc := c + s.LdTm
			if rc+1 > horizon || orders[c] == 0 {
				continue
			}
			if sim[rc] <= ceiling || sim[rc+1] <= ceiling {
				continue
			}
			reduction := roundDown(sim[rc]-target, s.PkQty)
			if reduction <= 0 {
				continue
			}
			reduced := max(orders[c]-reduction, floor)
			actual := orders[c] - reduced
			orders[c] = reduced
			sim.add(rc, -actual)
		}
	}
	return orders
}
