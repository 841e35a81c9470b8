// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "github.com/shopspring/decimal"

// AdjustmentKind is the direction of a price adjustment.
type AdjustmentKind string

const (
	Markup   AdjustmentKind = "markup"
	Discount AdjustmentKind = "discount"
)

// RuleID identifies the pricing rule that produced an adjustment. Later
// rules locate earlier adjustments by RuleID, never by reason text.
type RuleID string

const (
	RuleInventoryDiscount RuleID = "inventory-discount"
	RuleBulkDiscount      RuleID = "bulk-discount"
	RuleSeasonalMarkup    RuleID = "seasonal-markup"
	RuleDemographicMarkup RuleID = "demographic-markup"
	RuleValueOverride     RuleID = "value-override"
)

// Adjustment is one percentage change applied to the base price.
type Adjustment struct {
	Rule RuleID         `json:"rule" yaml:"rule"`
	Kind AdjustmentKind `json:"kind" yaml:"kind"`

	// Magnitude is a percentage, never negative; the sign comes from Kind.
	Magnitude decimal.Decimal `json:"magnitude" yaml:"magnitude"`

	Reason string `json:"reason" yaml:"reason"`
}

// Signed returns the magnitude with the sign implied by Kind.
func (a Adjustment) Signed() decimal.Decimal {
	if a.Kind == Discount {
		return a.Magnitude.Neg()
	}
	return a.Magnitude
}

// PricedLineItem is the pricing engine's result for one product and quantity.
// The price fields are nil unless Approved is true.
type PricedLineItem struct {
	ProductName       string `json:"product_name" yaml:"product_name"`
	RequestedQuantity int    `json:"quantity_requested" yaml:"quantity_requested"`
	Approved          bool   `json:"approved_for_quote" yaml:"approved_for_quote"`
	Status            string `json:"status" yaml:"status"`

	BaseUnitPrice  *decimal.Decimal `json:"base_single_unit_price,omitempty" yaml:"base_single_unit_price,omitempty"`
	FinalUnitPrice *decimal.Decimal `json:"final_single_unit_price,omitempty" yaml:"final_single_unit_price,omitempty"`
	TotalPrice     *decimal.Decimal `json:"total_price,omitempty" yaml:"total_price,omitempty"`

	// NetAdjustmentPercentage is the signed sum of adjustment magnitudes,
	// rounded to two places.
	NetAdjustmentPercentage decimal.Decimal `json:"net_price_adjustment_percentage" yaml:"net_price_adjustment_percentage"`

	// Reasoning holds the reasons of non-zero adjustments in rule order.
	Reasoning []string `json:"reasoning_breakdown" yaml:"reasoning_breakdown"`

	CompetitorPrices map[string]*decimal.Decimal `json:"competitors,omitempty" yaml:"competitors,omitempty"`
}

// LineTotal returns TotalPrice for approved items and zero otherwise.
func (p PricedLineItem) LineTotal() decimal.Decimal {
	if !p.Approved || p.TotalPrice == nil {
		return decimal.Zero
	}
	return *p.TotalPrice
}
