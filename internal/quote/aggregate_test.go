// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package quote

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/quotewise/pkg/types"
)

func money(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func approved(name, total string, reasons ...string) types.PricedLineItem {
	return types.PricedLineItem{
		ProductName:       name,
		RequestedQuantity: 1,
		Approved:          true,
		Status:            "Available",
		TotalPrice:        money(total),
		Reasoning:         reasons,
	}
}

func rejected(name, status string) types.PricedLineItem {
	return types.PricedLineItem{ProductName: name, RequestedQuantity: 1, Status: status, Reasoning: []string{}}
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		name        string
		items       []types.PricedLineItem
		wantTotal   string
		wantNames   []string
		wantSummary []string
		wantNotes   []string
	}{
		{
			name:        "empty",
			items:       nil,
			wantTotal:   "0.00",
			wantNames:   []string{},
			wantSummary: []string{},
		},
		{
			name: "order kept and unapproved excluded",
			items: []types.PricedLineItem{
				approved("Kite", "2400.00", "Bulk Order Discount: For ordering 30 units (25+)."),
				rejected("Beach Ball", "Product is out of stock."),
				approved("Yo-yo", "0.10"),
			},
			wantTotal:   "2400.10",
			wantNames:   []string{"Kite", "Beach Ball", "Yo-yo"},
			wantSummary: []string{"Kite: Bulk Order Discount: For ordering 30 units (25+)."},
			wantNotes:   []string{"Beach Ball: Product is out of stock."},
		},
		{
			name: "duplicate names are not merged",
			items: []types.PricedLineItem{
				approved("Kite", "10.05"),
				approved("Kite", "20.10"),
			},
			wantTotal:   "30.15",
			wantNames:   []string{"Kite", "Kite"},
			wantSummary: []string{},
		},
		{
			name: "approved flag decides, not the price",
			items: []types.PricedLineItem{
				{ProductName: "Ghost", TotalPrice: money("99.99"), Status: "Insufficient stock. Requested: 5, Available: 1."},
			},
			wantTotal:   "0.00",
			wantNames:   []string{"Ghost"},
			wantSummary: []string{},
			wantNotes:   []string{"Ghost: Insufficient stock. Requested: 5, Available: 1."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Aggregate(tt.items)

			assert.Equal(t, tt.wantTotal, q.GrandTotal.StringFixed(2))
			names := make([]string, 0, len(q.Items))
			for _, l := range q.Items {
				names = append(names, l.ProductName)
				assert.Nil(t, l.Risk)
			}
			assert.Equal(t, tt.wantNames, names)
			assert.Equal(t, tt.wantSummary, q.ReasoningSummary)
			assert.Equal(t, tt.wantNotes, q.Notes)
		})
	}
}

func TestAggregateTotalEqualsSumOfLines(t *testing.T) {
	items := []types.PricedLineItem{
		approved("A", "0.10"),
		approved("B", "0.20"),
		approved("C", "1234567.89"),
	}
	q := Aggregate(items)

	sum := decimal.Zero
	for _, l := range q.Items {
		sum = sum.Add(l.LineTotal())
	}
	require.True(t, sum.Equal(q.GrandTotal))
	assert.Equal(t, "1234568.19", q.GrandTotal.StringFixed(2))
}
