// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package quote

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/quotewise/internal/catalog"
	"github.com/pdiddy/quotewise/internal/pricing"
	"github.com/pdiddy/quotewise/internal/risk"
	"github.com/pdiddy/quotewise/pkg/types"
)

type memorySource []types.ProductRecord

func (m memorySource) Products(context.Context) ([]types.ProductRecord, error) {
	return m, nil
}

type failingResolver struct{}

func (failingResolver) Lookup(context.Context, []string) (catalog.LookupResult, error) {
	return catalog.LookupResult{}, errors.New("catalog offline")
}

func product(name string, stock, reorder int, status types.StockStatus, price string) types.ProductRecord {
	return types.ProductRecord{
		Name:            &name,
		Category:        "Sports & Outdoors",
		StockQuantity:   &stock,
		ReorderLevel:    reorder,
		StockStatus:     &status,
		MinSellingPrice: money(price),
	}
}

var issued = time.Date(2025, time.January, 15, 10, 30, 45, 0, time.UTC)

func testBuilder(resolver Resolver) *Builder {
	clock := func() time.Time { return issued }
	b := NewBuilder(
		resolver,
		pricing.NewEngine(types.DefaultPricingConfig(), clock),
		risk.NewAssessor(types.DefaultRiskConfig()),
		clock,
	)
	b.newID = func() string { return "quote-1" }
	return b
}

func testResolver() Resolver {
	return catalog.New(memorySource{
		product("Trail Running Shoes", 50, 10, types.InStock, "100"),
		product("Camping Stove", 200, 10, types.InStock, "100"),
		product("Beach Ball", 0, 5, types.OutOfStock, "4.50"),
	}, types.CatalogConfig{})
}

func TestBuild(t *testing.T) {
	q, err := testBuilder(testResolver()).Build(context.Background(), []types.LineRequest{
		{ProductName: "trail running shoes", Quantity: 30},
		{ProductName: "Trail Runing Shoes", Quantity: 1},
		{ProductName: "Beach Ball", Quantity: 2},
		{ProductName: "Camping Stove", Quantity: 30},
	})
	require.NoError(t, err)

	assert.Equal(t, "quote-1", q.ID)
	assert.Equal(t, "QT-20250115103045", q.Number)
	assert.Equal(t, issued, q.IssuedAt)
	require.Len(t, q.Items, 4)

	shoes := q.Items[0]
	assert.True(t, shoes.Approved)
	assert.Equal(t, "Trail Running Shoes", shoes.ProductName)
	assert.Equal(t, "2400.00", shoes.TotalPrice.StringFixed(2))
	require.NotNil(t, shoes.Risk)
	assert.Equal(t, types.RiskLow, shoes.Risk.Level)

	typo := q.Items[1]
	assert.False(t, typo.Approved)
	assert.Equal(t, "Trail Runing Shoes", typo.ProductName)
	assert.Equal(t, "Product not found in catalog. Did you mean: Trail Running Shoes?", typo.Status)

	assert.Equal(t, "Product is out of stock.", q.Items[2].Status)
	assert.Equal(t, types.RiskLow, q.Items[2].Risk.Level)

	stove := q.Items[3]
	assert.Equal(t, "-27.50", stove.NetAdjustmentPercentage.StringFixed(2))
	assert.Equal(t, "2175.00", stove.TotalPrice.StringFixed(2))
	assert.Equal(t, types.RiskHigh, stove.Risk.Level)

	assert.Equal(t, "4575.00", q.GrandTotal.StringFixed(2))
	assert.Len(t, q.Notes, 2)
	high := q.HighRiskItems()
	require.Len(t, high, 1)
	assert.Equal(t, "Camping Stove", high[0].ProductName)
}

func TestBuildNotFoundWithoutSuggestions(t *testing.T) {
	q, err := testBuilder(testResolver()).Build(context.Background(), []types.LineRequest{
		{ProductName: "Quantum Blender", Quantity: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, StatusNotFound, q.Items[0].Status)
	assert.True(t, q.GrandTotal.IsZero())
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name     string
		resolver Resolver
		reqs     []types.LineRequest
		wantErr  string
		invalid  bool
	}{
		{name: "no lines", resolver: testResolver(), wantErr: "at least one line item", invalid: true},
		{name: "blank name", resolver: testResolver(), reqs: []types.LineRequest{{ProductName: "  ", Quantity: 1}}, wantErr: "line 1: product name is empty", invalid: true},
		{name: "zero quantity", resolver: testResolver(), reqs: []types.LineRequest{{ProductName: "Kite", Quantity: 1}, {ProductName: "Beach Ball", Quantity: 0}}, wantErr: "line 2 (Beach Ball)", invalid: true},
		{name: "resolver failure", resolver: failingResolver{}, reqs: []types.LineRequest{{ProductName: "Kite", Quantity: 1}}, wantErr: "catalog offline"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := testBuilder(tt.resolver).Build(context.Background(), tt.reqs)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Equal(t, tt.invalid, errors.Is(err, ErrInvalidRequest))
		})
	}
}
