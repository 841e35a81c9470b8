// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pricing turns a product record and a requested quantity into a
// priced line item with an ordered trail of the adjustments applied.
//
// Rules run in a fixed order: inventory discount, bulk discount, seasonal
// markup, demographic markup, value-based override. The override revises
// adjustments recorded earlier in the same run, so the order is part of
// the contract. A calculation reads nothing but its inputs and the
// injected clock.
package pricing

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pdiddy/quotewise/pkg/types"
)

// StatusAvailable is the status of every approved line item.
const StatusAvailable = "Available"

// ErrInvalidQuantity is returned when the requested quantity is not positive.
var ErrInvalidQuantity = errors.New("quantity must be a positive integer")

var (
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
)

// Engine applies the pricing rules. It holds no state that changes between
// calls and is safe for concurrent use.
type Engine struct {
	cfg      types.PricingConfig
	now      func() time.Time
	seasonal map[string]bool
	rules    []rule
}

// NewEngine creates an Engine for cfg. now supplies the evaluation time for
// the seasonal rule; nil means time.Now.
func NewEngine(cfg types.PricingConfig, now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	seasonal := make(map[string]bool, len(cfg.SeasonalCategories))
	for _, c := range cfg.SeasonalCategories {
		seasonal[strings.TrimSpace(c)] = true
	}
	e := &Engine{cfg: cfg, now: now, seasonal: seasonal}
	e.rules = e.ruleSet()
	return e
}

// Config returns the rule parameters the engine was built with.
func (e *Engine) Config() types.PricingConfig {
	return e.cfg
}

// Calculate prices quantity units of product. Incomplete product data and
// stock shortfalls produce an unapproved item, not an error; the only
// error is ErrInvalidQuantity.
func (e *Engine) Calculate(product types.ProductRecord, quantity int) (types.PricedLineItem, error) {
	if quantity <= 0 {
		return types.PricedLineItem{}, fmt.Errorf("%w: got %d", ErrInvalidQuantity, quantity)
	}

	item := types.PricedLineItem{
		ProductName:       product.DisplayName(),
		RequestedQuantity: quantity,
		Reasoning:         []string{},
	}

	if missing := product.MissingFields(); len(missing) > 0 {
		item.Status = "Product data incomplete. Missing required fields: " + strings.Join(missing, ", ")
		return item, nil
	}

	stock := *product.StockQuantity
	if *product.StockStatus == types.OutOfStock {
		item.Status = "Product is out of stock."
		return item, nil
	}
	if quantity > stock {
		item.Status = fmt.Sprintf("Insufficient stock. Requested: %d, Available: %d.", quantity, stock)
		return item, nil
	}

	ev := evaluation{
		product:  product,
		quantity: quantity,
		factors:  product.FactorSet(),
		month:    e.now().Month(),
	}
	var t trail
	for _, r := range e.rules {
		r.apply(ev, &t)
	}

	net := t.net()
	base := *product.MinSellingPrice
	// Prices use the unrounded net; only the reported net is rounded.
	finalUnit := base.Mul(one.Add(net.Div(hundred))).Round(2)
	total := finalUnit.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
	baseOut := base.Round(2)

	item.Approved = true
	item.Status = StatusAvailable
	item.BaseUnitPrice = &baseOut
	item.FinalUnitPrice = &finalUnit
	item.TotalPrice = &total
	item.NetAdjustmentPercentage = net.Round(2)
	item.Reasoning = t.reasons()
	item.CompetitorPrices = copyPrices(product.CompetitorPrices)
	return item, nil
}

func copyPrices(in map[string]*decimal.Decimal) map[string]*decimal.Decimal {
	if in == nil {
		return nil
	}
	out := make(map[string]*decimal.Decimal, len(in))
	for k, v := range in {
		if v != nil {
			c := *v
			out[k] = &c
			continue
		}
		out[k] = nil
	}
	return out
}

// trail is the working list of adjustments for one calculation. It is
// mutable while rules run and read-only afterwards.
type trail []types.Adjustment

func (t *trail) add(a types.Adjustment) {
	*t = append(*t, a)
}

// net returns the signed sum of all magnitudes at full precision.
func (t trail) net() decimal.Decimal {
	sum := decimal.Zero
	for _, a := range t {
		sum = sum.Add(a.Signed())
	}
	return sum
}

// reasons returns the reasons of non-zero adjustments in insertion order.
func (t trail) reasons() []string {
	out := make([]string, 0, len(t))
	for _, a := range t {
		if !a.Magnitude.IsZero() {
			out = append(out, a.Reason)
		}
	}
	return out
}
