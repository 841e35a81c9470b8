// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package risk

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/quotewise/internal/pricing"
	"github.com/pdiddy/quotewise/pkg/types"
)

func approved(net string, reasoning ...string) types.PricedLineItem {
	return types.PricedLineItem{
		ProductName:             "Desk Lamp",
		RequestedQuantity:       10,
		Approved:                true,
		Status:                  pricing.StatusAvailable,
		NetAdjustmentPercentage: decimal.RequireFromString(net),
		Reasoning:               reasoning,
	}
}

func TestAssess(t *testing.T) {
	tests := []struct {
		name        string
		item        types.PricedLineItem
		wantLevel   types.RiskLevel
		wantSummary string
		wantReasons []string
	}{
		{
			name:        "discount above ceiling",
			item:        approved("-30"),
			wantLevel:   types.RiskHigh,
			wantSummary: HighRiskSummary,
			wantReasons: []string{"Risk: Net discount for 'Desk Lamp' is 30%, which exceeds the maximum of 25%."},
		},
		{
			name:        "exactly at ceiling is low",
			item:        approved("-25.00"),
			wantLevel:   types.RiskLow,
			wantSummary: "Item 'Desk Lamp' passed all checks.",
		},
		{
			name:        "just past ceiling is high",
			item:        approved("-25.01"),
			wantLevel:   types.RiskHigh,
			wantSummary: HighRiskSummary,
			wantReasons: []string{"Risk: Net discount for 'Desk Lamp' is 25.01%, which exceeds the maximum of 25%."},
		},
		{
			name:        "markup is low",
			item:        approved("13"),
			wantLevel:   types.RiskLow,
			wantSummary: "Item 'Desk Lamp' passed all checks.",
		},
		{
			name:        "capped reasoning line is a heads-up",
			item:        approved("-10", "Clearance Discount: Capped at 10%."),
			wantLevel:   types.RiskHigh,
			wantSummary: HighRiskSummary,
			wantReasons: []string{"Heads-up: A discount for 'Desk Lamp' was automatically capped."},
		},
		{
			name: "unapproved item carries no pricing risk",
			item: types.PricedLineItem{
				ProductName: "Desk Lamp",
				Status:      "Insufficient stock. Requested: 40, Available: 12.",
			},
			wantLevel:   types.RiskLow,
			wantSummary: "Item 'Desk Lamp' poses no pricing risk as it is not being quoted. Reason: Insufficient stock. Requested: 40, Available: 12.",
		},
	}

	a := NewAssessor(types.DefaultRiskConfig())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := a.Assess(tt.item)
			assert.Equal(t, tt.wantLevel, got.Level)
			assert.Equal(t, tt.wantSummary, got.Summary)
			assert.Equal(t, tt.wantReasons, got.Reasons)
			assert.Equal(t, "Desk Lamp", got.ProductName)
		})
	}
}

func TestAssessCustomCeiling(t *testing.T) {
	strict := NewAssessor(types.RiskConfig{MaxDiscountPercent: 10})
	lenient := NewAssessor(types.RiskConfig{})

	item := approved("-20")
	assert.Equal(t, types.RiskHigh, strict.Assess(item).Level)
	assert.Equal(t, types.RiskLow, lenient.Assess(item).Level)
}

// The engine has no capping rule, so no reasoning line it emits can carry
// the Capped marker.
func TestCappedMarkerNeverFiresForEngineOutput(t *testing.T) {
	engine := pricing.NewEngine(types.DefaultPricingConfig(), func() time.Time {
		return time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)
	})
	a := NewAssessor(types.DefaultRiskConfig())

	name := "Sun Hat"
	stock := 1000
	status := types.InStock
	price := decimal.NewFromInt(40)
	product := types.ProductRecord{
		Name:            &name,
		Category:        "Fashion & Apparel",
		Factors:         [3]string{"Weather & Seasons", "Age", "Gender"},
		StockQuantity:   &stock,
		ReorderLevel:    5,
		StockStatus:     &status,
		MinSellingPrice: &price,
	}

	for _, qty := range []int{1, 25, 500} {
		item, err := engine.Calculate(product, qty)
		require.NoError(t, err)
		got := a.Assess(item)
		for _, r := range got.Reasons {
			assert.NotContains(t, r, "capped")
		}
		for _, r := range item.Reasoning {
			assert.NotContains(t, r, CappedMarker)
		}
	}
}

func TestAssessAllPreservesOrder(t *testing.T) {
	a := NewAssessor(types.DefaultRiskConfig())
	items := []types.PricedLineItem{approved("-30"), {ProductName: "B", Status: "Product is out of stock."}, approved("0")}
	got := a.AssessAll(items)
	require.Len(t, got, 3)
	assert.Equal(t, types.RiskHigh, got[0].Level)
	assert.Equal(t, "B", got[1].ProductName)
	assert.Equal(t, types.RiskLow, got[2].Level)
}
