package reorder

// leadTimeWindowOrders orders just enough to cover the net demand of a
// rolling window [w, min(w+LdTm, horizon)].
//
// The quantity is rounded up to a multiple of MOQ and then, if needed, to a
// multiple of PkQty. After an order the cursor jumps LdTm periods, since
// those periods were part of the window just covered; otherwise it moves
// one period. Skipped periods are never revisited.
func leadTimeWindowOrders(s Scenario, horizon int, _ Rand) []int {
	orders := make([]int, horizon+1)

	w := 0
	for w <= horizon {
		end := min(w+s.LdTm, horizon)
		needed := max(0, sum(s.Rqt, w, end)-sum(s.Rec, w, end))
		if needed == 0 {
			w++
			continue
		}

		qty := roundUp(needed, s.MOQ)
		if qty%s.PkQty != 0 {
			qty = roundUp(qty, s.PkQty)
		}
		orders[w] = qty
		w += s.LdTm
	}
	return orders
}
