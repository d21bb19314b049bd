package pricing

import (
	"testing"

	"github.com/SergeyBogomolovv/order-orchestrator/internal/entities"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTotal(t *testing.T) {
	testCases := []struct {
		name  string
		lines []Line
		want  string
	}{
		{
			name:  "empty",
			lines: nil,
			want:  "0",
		},
		{
			name: "sum of lines",
			lines: []Line{
				{UnitPrice: decimal.RequireFromString("10.00"), Quantity: 2},
				{UnitPrice: decimal.RequireFromString("5.50"), Quantity: 1},
			},
			want: "25.5",
		},
		{
			name: "half rounds to even down",
			lines: []Line{
				{UnitPrice: decimal.RequireFromString("0.125"), Quantity: 1},
			},
			want: "0.12",
		},
		{
			name: "half rounds to even up",
			lines: []Line{
				{UnitPrice: decimal.RequireFromString("0.135"), Quantity: 1},
			},
			want: "0.14",
		},
		{
			name: "rounding applies to the sum, not each line",
			lines: []Line{
				{UnitPrice: decimal.RequireFromString("0.005"), Quantity: 3},
			},
			want: "0.02",
		},
		{
			name: "zero price",
			lines: []Line{
				{UnitPrice: decimal.Zero, Quantity: 7},
			},
			want: "0",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Total(tc.lines)
			assert.True(t, got.Equal(decimal.RequireFromString(tc.want)), "got %s, want %s", got, tc.want)
			assert.False(t, got.IsNegative())
			assert.LessOrEqual(t, -got.Exponent(), int32(Places))
		})
	}
}

func TestTotal_OrderIndependent(t *testing.T) {
	lines := []Line{
		{UnitPrice: decimal.RequireFromString("19.99"), Quantity: 3},
		{UnitPrice: decimal.RequireFromString("0.015"), Quantity: 1},
		{UnitPrice: decimal.RequireFromString("4.25"), Quantity: 2},
	}
	reversed := []Line{lines[2], lines[1], lines[0]}
	rotated := []Line{lines[1], lines[2], lines[0]}

	want := Total(lines)
	assert.True(t, want.Equal(Total(reversed)))
	assert.True(t, want.Equal(Total(rotated)))
}

func TestOrderTotal(t *testing.T) {
	items := []entities.Item{
		{SKU: "A", Quantity: 2, UnitPrice: decimal.RequireFromString("12.50")},
		{SKU: "B", Quantity: 1, UnitPrice: decimal.RequireFromString("0.99")},
	}
	assert.Equal(t, "25.99", OrderTotal(items).StringFixed(2))
}
