// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package quote

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/quotewise/internal/catalog"
	"github.com/pdiddy/quotewise/pkg/types"
)

// StatusNotFound is the status of a line whose product the catalog could
// not resolve.
const StatusNotFound = "Product not found in catalog."

// ErrInvalidRequest marks a request the builder rejects before any lookup.
var ErrInvalidRequest = errors.New("invalid quote request")

// Pricer prices one product and quantity.
type Pricer interface {
	Calculate(product types.ProductRecord, quantity int) (types.PricedLineItem, error)
}

// Assessor classifies the risk of one priced item.
type Assessor interface {
	Assess(item types.PricedLineItem) types.RiskAssessment
}

// Resolver resolves product names to catalog records.
type Resolver interface {
	Lookup(ctx context.Context, names []string) (catalog.LookupResult, error)
}

// Builder turns line requests into a stamped quote.
type Builder struct {
	resolver Resolver
	pricer   Pricer
	assessor Assessor
	now      func() time.Time
	newID    func() string
}

// NewBuilder creates a Builder. now defaults to time.Now.
func NewBuilder(resolver Resolver, pricer Pricer, assessor Assessor, now func() time.Time) *Builder {
	if now == nil {
		now = time.Now
	}
	return &Builder{
		resolver: resolver,
		pricer:   pricer,
		assessor: assessor,
		now:      now,
		newID:    uuid.NewString,
	}
}

// Build resolves, prices, and assesses every request, then aggregates the
// results in request order. Lines are priced concurrently. A request with
// a non-positive quantity fails the whole build; products that cannot be
// quoted become unapproved lines.
func (b *Builder) Build(ctx context.Context, reqs []types.LineRequest) (types.Quote, error) {
	if len(reqs) == 0 {
		return types.Quote{}, fmt.Errorf("%w: provide at least one line item", ErrInvalidRequest)
	}
	names := make([]string, 0, len(reqs))
	for i, r := range reqs {
		if strings.TrimSpace(r.ProductName) == "" {
			return types.Quote{}, fmt.Errorf("%w: line %d: product name is empty", ErrInvalidRequest, i+1)
		}
		if r.Quantity <= 0 {
			return types.Quote{}, fmt.Errorf("%w: line %d (%s): quantity must be a positive integer, got %d", ErrInvalidRequest, i+1, r.ProductName, r.Quantity)
		}
		names = append(names, r.ProductName)
	}

	found, err := b.resolver.Lookup(ctx, names)
	if err != nil {
		return types.Quote{}, fmt.Errorf("looking up products: %w", err)
	}

	items := make([]types.PricedLineItem, len(reqs))
	errs := make([]error, len(reqs))
	var wg sync.WaitGroup
	for i, r := range reqs {
		wg.Add(1)
		go func(i int, r types.LineRequest) {
			defer wg.Done()
			product, ok := found.Record(r.ProductName)
			if !ok {
				items[i] = notFound(r, found.SuggestionsFor(r.ProductName))
				return
			}
			items[i], errs[i] = b.pricer.Calculate(product, r.Quantity)
		}(i, r)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return types.Quote{}, fmt.Errorf("pricing line %d: %w", i+1, err)
		}
	}

	q := Aggregate(items)
	for i := range q.Items {
		risk := b.assessor.Assess(q.Items[i].PricedLineItem)
		q.Items[i].Risk = &risk
	}
	return b.stamp(q), nil
}

func (b *Builder) stamp(q types.Quote) types.Quote {
	now := b.now()
	q.ID = b.newID()
	q.Number = "QT-" + now.Format("20060102150405")
	q.IssuedAt = now
	return q
}

func notFound(r types.LineRequest, suggestions []string) types.PricedLineItem {
	status := StatusNotFound
	if len(suggestions) > 0 {
		status += " Did you mean: " + strings.Join(suggestions, ", ") + "?"
	}
	return types.PricedLineItem{
		ProductName:       r.ProductName,
		RequestedQuantity: r.Quantity,
		Status:            status,
		Reasoning:         []string{},
	}
}
