// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineRequest asks for a quantity of a catalog product by name.
type LineRequest struct {
	ProductName string `json:"product_name" yaml:"product_name"`
	Quantity    int    `json:"quantity" yaml:"quantity"`
}

// QuoteLine pairs a priced item with its risk assessment.
type QuoteLine struct {
	PricedLineItem `yaml:",inline"`
	Risk           *RiskAssessment `json:"risk,omitempty" yaml:"risk,omitempty"`
}

// Quote is the aggregate of priced line items. Items keep the caller's
// order; only approved items contribute to GrandTotal.
type Quote struct {
	ID       string    `json:"id,omitempty" yaml:"id,omitempty"`
	Number   string    `json:"number,omitempty" yaml:"number,omitempty"`
	IssuedAt time.Time `json:"issued_at,omitempty" yaml:"issued_at,omitempty"`

	Items      []QuoteLine     `json:"items" yaml:"items"`
	GrandTotal decimal.Decimal `json:"grand_total" yaml:"grand_total"`

	// ReasoningSummary lists "<product>: <reason>" for approved items.
	ReasoningSummary []string `json:"reasoning_summary" yaml:"reasoning_summary"`

	// Notes lists "<product>: <status>" for items excluded from the total.
	Notes []string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// HighRiskItems returns the lines whose risk assessment is High.
func (q Quote) HighRiskItems() []QuoteLine {
	var out []QuoteLine
	for _, l := range q.Items {
		if l.Risk != nil && l.Risk.Level == RiskHigh {
			out = append(out, l)
		}
	}
	return out
}
