// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package quote combines independently priced line items into a quote.
package quote

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/pdiddy/quotewise/pkg/types"
)

// Aggregate builds a Quote from items. Items keep their input order and
// are never merged, even when two share a product name. Unapproved items
// stay in the quote for display but add nothing to the grand total.
func Aggregate(items []types.PricedLineItem) types.Quote {
	q := types.Quote{
		Items:            make([]types.QuoteLine, len(items)),
		GrandTotal:       decimal.Zero,
		ReasoningSummary: []string{},
	}
	for i, it := range items {
		q.Items[i] = types.QuoteLine{PricedLineItem: it}
		if !it.Approved {
			q.Notes = append(q.Notes, fmt.Sprintf("%s: %s", it.ProductName, it.Status))
			continue
		}
		q.GrandTotal = q.GrandTotal.Add(it.LineTotal())
		for _, r := range it.Reasoning {
			q.ReasoningSummary = append(q.ReasoningSummary, fmt.Sprintf("%s: %s", it.ProductName, r))
		}
	}
	q.GrandTotal = q.GrandTotal.Round(2)
	return q
}
