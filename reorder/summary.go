package reorder

import "github.com/shopspring/decimal"

// Summary aggregates a schedule into the figures used to compare policies.
type Summary struct {
	TotalOrdered     int             `json:"total_ordered"`
	OrderCount       int             `json:"order_count"`
	ZeroPeriods      int             `json:"zero_periods"`
	ExcessPeriods    int             `json:"excess_periods"`
	MinInventory     int             `json:"min_inventory"`
	MaxInventory     int             `json:"max_inventory"`
	AverageInventory decimal.Decimal `json:"average_inventory"`
}

// Summarize computes the summary of a finished schedule. The average is
// rounded to two decimal places.
func Summarize(s Schedule) Summary {
	var sum Summary
	for _, qty := range s.Ord {
		if qty > 0 {
			sum.TotalOrdered += qty
			sum.OrderCount++
		}
	}

	if len(s.Inv) == 0 {
		sum.AverageInventory = decimal.Zero
		return sum
	}

	ceiling := s.InvTgt * ExcessFactor
	total := 0
	sum.MinInventory, sum.MaxInventory = s.Inv[0], s.Inv[0]
	for _, level := range s.Inv {
		total += level
		sum.MinInventory = min(sum.MinInventory, level)
		sum.MaxInventory = max(sum.MaxInventory, level)
		if level <= 0 {
			sum.ZeroPeriods++
		}
		if level > ceiling {
			sum.ExcessPeriods++
		}
	}
	sum.AverageInventory = decimal.NewFromInt(int64(total)).
		Div(decimal.NewFromInt(int64(len(s.Inv)))).
		Round(2)
	return sum
}
