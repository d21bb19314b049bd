// Package pricing computes order totals.
//
// The canonical rule is the plain sum of unit_price × quantity rounded to
// cents with banker's rounding. No tax or shipping surcharge is applied;
// a caller that needs one must add it explicitly on top of Total.
package pricing

import (
	"github.com/SergeyBogomolovv/order-orchestrator/internal/entities"
	"github.com/shopspring/decimal"
)

// Places is the number of fractional digits every total is rounded to.
const Places = 2

type Line struct {
	UnitPrice decimal.Decimal
	Quantity  int
}

// Total returns the sum of all lines rounded half-to-even to Places.
func Total(lines []Line) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return sum.RoundBank(Places)
}

func Lines(items []entities.Item) []Line {
	lines := make([]Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, Line{UnitPrice: it.UnitPrice, Quantity: it.Quantity})
	}
	return lines
}

// OrderTotal is a shortcut for Total(Lines(items)).
func OrderTotal(items []entities.Item) decimal.Decimal {
	return Total(Lines(items))
}
