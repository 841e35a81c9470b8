// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package risk classifies priced line items by discount risk. Assessment
// is a pure function of one item and the configured thresholds.
package risk

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/pdiddy/quotewise/pkg/types"
)

const (
	// DefaultMaxDiscountPercent is the largest net discount that is still
	// low risk.
	DefaultMaxDiscountPercent = 25.0

	// CappedMarker flags reasoning lines emitted by a discount that was
	// automatically capped. No current pricing rule emits it.
	CappedMarker = "Capped"

	// HighRiskSummary is the summary of every High assessment.
	HighRiskSummary = "High risk detected."
)

// Assessor evaluates line items against a RiskConfig.
type Assessor struct {
	maxDiscount decimal.Decimal
}

// NewAssessor creates an Assessor. A non-positive ceiling falls back to
// DefaultMaxDiscountPercent.
func NewAssessor(cfg types.RiskConfig) *Assessor {
	ceiling := cfg.MaxDiscountPercent
	if ceiling <= 0 {
		ceiling = DefaultMaxDiscountPercent
	}
	return &Assessor{maxDiscount: decimal.NewFromFloat(ceiling)}
}

// Assess returns the risk assessment for item.
func (a *Assessor) Assess(item types.PricedLineItem) types.RiskAssessment {
	out := types.RiskAssessment{ProductName: item.ProductName, Level: types.RiskLow}

	if !item.Approved {
		status := item.Status
		if status == "" {
			status = "Item not available for quoting."
		}
		out.Summary = fmt.Sprintf("Item '%s' poses no pricing risk as it is not being quoted. Reason: %s", item.ProductName, status)
		return out
	}

	var flags []string
	if item.NetAdjustmentPercentage.LessThan(a.maxDiscount.Neg()) {
		flags = append(flags, fmt.Sprintf("Risk: Net discount for '%s' is %s%%, which exceeds the maximum of %s%%.",
			item.ProductName, item.NetAdjustmentPercentage.Abs().String(), a.maxDiscount.String()))
	}
	for _, reason := range item.Reasoning {
		if strings.Contains(reason, CappedMarker) {
			flags = append(flags, fmt.Sprintf("Heads-up: A discount for '%s' was automatically capped.", item.ProductName))
		}
	}

	if len(flags) == 0 {
		out.Summary = fmt.Sprintf("Item '%s' passed all checks.", item.ProductName)
		return out
	}
	out.Level = types.RiskHigh
	out.Summary = HighRiskSummary
	out.Reasons = flags
	return out
}

// AssessAll assesses each item, preserving order.
func (a *Assessor) AssessAll(items []types.PricedLineItem) []types.RiskAssessment {
	out := make([]types.RiskAssessment, len(items))
	for i, it := range items {
		out[i] = a.Assess(it)
	}
	return out
}
