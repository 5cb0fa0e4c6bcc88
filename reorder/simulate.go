package reorder

// simulation is a policy's private working projection of inventory.
// It is always freshly allocated, so it never aliases the scenario.
type simulation []int

// baseline projects inventory with only the scenario's own receipts and
// requirements: sim[w] = max(0, sim[w-1] + Rec[w-1] - Rqt[w-1]).
func baseline(s Scenario, horizon int) simulation {
	sim := make(simulation, horizon+1)
	sim[0] = s.Start()
	for w := 1; w <= horizon; w++ {
		sim[w] = max(0, sim[w-1]+s.Rec[w-1]-s.Rqt[w-1])
	}
	return sim
}

// add shifts every period from 'from' to the end of the horizon by qty.
// A negative qty removes stock, as when an order is reduced.
func (sim simulation) add(from, qty int) {
	for w := from; w < len(sim); w++ {
		sim[w] += qty
	}
}

// lowest returns the smallest projected inventory over [from, to].
func (sim simulation) lowest(from, to int) int {
	low := sim[from]
	for w := from + 1; w <= to; w++ {
		low = min(low, sim[w])
	}
	return low
}

// anyEmpty reports whether any period in [from, to] is at or below zero.
func (sim simulation) anyEmpty(from, to int) bool {
	for w := from; w <= to; w++ {
		if sim[w] <= 0 {
			return true
		}
	}
	return false
}

// sum adds values over [from, to].
func sum(values []int, from, to int) int {
	total := 0
	for i := from; i <= to; i++ {
		total += values[i]
	}
	return total
}
