// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pricing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pdiddy/quotewise/pkg/types"
)

// OverrideReason replaces the reason of an inventory discount neutralized
// by the value-based override.
const OverrideReason = "Price Strategy Override: Item's price is driven by perceived value, not inventory levels."

// summerMonths is the in-season window for the seasonal markup.
var summerMonths = map[time.Month]bool{
	time.May:    true,
	time.June:   true,
	time.July:   true,
	time.August: true,
}

// evaluation is the read-only input every rule sees.
type evaluation struct {
	product  types.ProductRecord
	quantity int
	factors  types.FactorSet
	month    time.Month
}

// rule is one step of the pipeline. Additive rules propose at most one
// adjustment; revising rules edit adjustments already on the trail.
type rule struct {
	id          types.RuleID
	description string
	propose     func(ev evaluation) (types.Adjustment, bool)
	revise      func(ev evaluation, t trail)
}

func (r rule) apply(ev evaluation, t *trail) {
	if r.propose != nil {
		if adj, ok := r.propose(ev); ok {
			adj.Rule = r.id
			t.add(adj)
		}
	}
	if r.revise != nil {
		r.revise(ev, *t)
	}
}

// RuleInfo describes a rule for listing.
type RuleInfo struct {
	ID          types.RuleID `json:"id" yaml:"id"`
	Description string       `json:"description" yaml:"description"`
}

// Rules lists the rules in application order.
func (e *Engine) Rules() []RuleInfo {
	out := make([]RuleInfo, len(e.rules))
	for i, r := range e.rules {
		out[i] = RuleInfo{ID: r.id, Description: r.description}
	}
	return out
}

func (e *Engine) ruleSet() []rule {
	return []rule{
		{
			id: types.RuleInventoryDiscount,
			description: fmt.Sprintf("discount of %g%% per %dx reorder level of stock, capped at %g%%",
				e.cfg.InventoryStepPercent, e.cfg.InventoryThresholdMultiplier, e.cfg.InventoryCapPercent),
			propose: e.inventoryDiscount,
		},
		{
			id: types.RuleBulkDiscount,
			description: fmt.Sprintf("flat %g%% discount for orders of %d units or more",
				e.cfg.BulkDiscountPercent, e.cfg.BulkQuantityThreshold),
			propose: e.bulkDiscount,
		},
		{
			id: types.RuleSeasonalMarkup,
			description: fmt.Sprintf("%g%% markup on seasonal summer categories from May to August",
				e.cfg.SeasonalMarkupPercent),
			propose: e.seasonalMarkup,
		},
		{
			id:          types.RuleDemographicMarkup,
			description: fmt.Sprintf("%g%% premium for age or gender targeted products", e.cfg.DemographicMarkupPercent),
			propose:     e.demographicMarkup,
		},
		{
			id:          types.RuleValueOverride,
			description: "purchasing-power products ignore the inventory discount",
			revise:      e.valueOverride,
		},
	}
}

func (e *Engine) inventoryDiscount(ev evaluation) (types.Adjustment, bool) {
	stock := *ev.product.StockQuantity
	reorder := ev.product.ReorderLevel
	threshold := e.cfg.InventoryThresholdMultiplier * reorder
	if reorder <= 0 || threshold <= 0 || stock <= threshold {
		return types.Adjustment{}, false
	}
	pct := decimal.NewFromInt(int64(stock)).
		Div(decimal.NewFromInt(int64(threshold))).
		Mul(decimal.NewFromFloat(e.cfg.InventoryStepPercent))
	pct = decimal.Min(pct, decimal.NewFromFloat(e.cfg.InventoryCapPercent))
	return types.Adjustment{
		Kind:      types.Discount,
		Magnitude: pct,
		Reason:    fmt.Sprintf("High Inventory Discount: Stock level (%d) is high compared to reorder point.", stock),
	}, true
}

func (e *Engine) bulkDiscount(ev evaluation) (types.Adjustment, bool) {
	if ev.quantity < e.cfg.BulkQuantityThreshold {
		return types.Adjustment{}, false
	}
	return types.Adjustment{
		Kind:      types.Discount,
		Magnitude: decimal.NewFromFloat(e.cfg.BulkDiscountPercent),
		Reason:    fmt.Sprintf("Bulk Order Discount: For ordering %d units (%d+).", ev.quantity, e.cfg.BulkQuantityThreshold),
	}, true
}

func (e *Engine) seasonalMarkup(ev evaluation) (types.Adjustment, bool) {
	category := ev.product.Category
	if !ev.factors[types.FactorWeatherSeasons] || !summerMonths[ev.month] || !e.seasonal[category] {
		return types.Adjustment{}, false
	}
	return types.Adjustment{
		Kind:      types.Markup,
		Magnitude: decimal.NewFromFloat(e.cfg.SeasonalMarkupPercent),
		Reason:    fmt.Sprintf("In-Season Demand Markup: '%s' is a popular summer category.", category),
	}, true
}

func (e *Engine) demographicMarkup(ev evaluation) (types.Adjustment, bool) {
	if !ev.factors.HasAny(types.FactorAge, types.FactorGender) {
		return types.Adjustment{}, false
	}
	return types.Adjustment{
		Kind:      types.Markup,
		Magnitude: decimal.NewFromFloat(e.cfg.DemographicMarkupPercent),
		Reason:    "Targeted Product Premium: Price adjusted for specific demographic appeal.",
	}, true
}

// valueOverride neutralizes the inventory discount in place. The entry
// stays on the trail with a zero magnitude.
func (e *Engine) valueOverride(ev evaluation, t trail) {
	if !ev.factors[types.FactorPurchasingPower] {
		return
	}
	for i := range t {
		if t[i].Rule == types.RuleInventoryDiscount {
			t[i].Magnitude = decimal.Zero
			t[i].Reason = OverrideReason
		}
	}
}
