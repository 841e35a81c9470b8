// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/quotewise/internal/catalog"
	"github.com/pdiddy/quotewise/internal/pricing"
	"github.com/pdiddy/quotewise/internal/quote"
	"github.com/pdiddy/quotewise/internal/risk"
	"github.com/pdiddy/quotewise/pkg/types"
)

type memorySource []types.ProductRecord

func (m memorySource) Products(context.Context) ([]types.ProductRecord, error) {
	return m, nil
}

func product(name string, stock, reorder int, status types.StockStatus, price string) types.ProductRecord {
	p := decimal.RequireFromString(price)
	return types.ProductRecord{
		Name:            &name,
		Category:        "Sports & Outdoors",
		StockQuantity:   &stock,
		ReorderLevel:    reorder,
		StockStatus:     &status,
		MinSellingPrice: &p,
	}
}

func testServer(t *testing.T) *Server {
	t.Helper()
	clock := func() time.Time { return time.Date(2025, time.January, 15, 10, 30, 45, 0, time.UTC) }
	engine := pricing.NewEngine(types.DefaultPricingConfig(), clock)
	assessor := risk.NewAssessor(types.DefaultRiskConfig())
	cat := catalog.New(memorySource{
		product("Trail Running Shoes", 50, 10, types.InStock, "100"),
		product("Beach Ball", 0, 5, types.OutOfStock, "4.50"),
	}, types.CatalogConfig{})

	return New(Deps{
		Engine:   engine,
		Assessor: assessor,
		Catalog:  cat,
		Builder:  quote.NewBuilder(cat, engine, assessor, clock),
		Quote:    types.DefaultConfig().Quote,
		Version:  "test",
		Log:      io.Discard,
	})
}

func do(t *testing.T, s *Server, method, target, body string) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.App().Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func TestHealthAndRules(t *testing.T) {
	s := testServer(t)

	code, body := do(t, s, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"status":"ok","version":"test"}`, string(body))

	code, body = do(t, s, http.MethodGet, "/v1/rules", "")
	assert.Equal(t, http.StatusOK, code)
	var rules struct {
		Rules []pricing.RuleInfo `json:"rules"`
	}
	require.NoError(t, json.Unmarshal(body, &rules))
	require.Len(t, rules.Rules, 5)
	assert.Equal(t, types.RuleInventoryDiscount, rules.Rules[0].ID)
	assert.Equal(t, types.RuleValueOverride, rules.Rules[4].ID)
}

func TestPrice(t *testing.T) {
	s := testServer(t)
	payload := `[
		{"product_json": {"product_name": "Trail Running Shoes", "quantity_in_stock": 50,
			"reorder_level": 10, "stock_status": "In Stock", "min_selling_price": 100}, "quantity": 30},
		{"quantity": 1}
	]`

	code, body := do(t, s, http.MethodPost, "/v1/price", payload)
	require.Equal(t, http.StatusOK, code, string(body))

	var raw []json.RawMessage
	require.NoError(t, json.Unmarshal(body, &raw))
	require.Len(t, raw, 2)

	var item types.PricedLineItem
	require.NoError(t, json.Unmarshal(raw[0], &item))
	assert.True(t, item.Approved)
	assert.Equal(t, "2400.00", item.TotalPrice.StringFixed(2))

	assert.JSONEq(t, `{"error": "`+pricing.MissingEntryFieldsMessage+`"}`, string(raw[1]))
}

func TestMalformedJSON(t *testing.T) {
	s := testServer(t)

	tests := []struct {
		name   string
		target string
		body   string
	}{
		{name: "price object", target: "/v1/price", body: `{"product_json": {}}`},
		{name: "price garbage", target: "/v1/price", body: `not json`},
		{name: "risk garbage", target: "/v1/risk", body: `{"approved_for_quote": `},
		{name: "quote garbage", target: "/v1/quote", body: `[`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := do(t, s, http.MethodPost, tt.target, tt.body)
			assert.Equal(t, http.StatusBadRequest, code)

			var resp errorResponse
			require.NoError(t, json.Unmarshal(body, &resp))
			assert.Equal(t, "error", resp.Status)
			assert.NotEmpty(t, resp.Message)
		})
	}
}

func TestRisk(t *testing.T) {
	s := testServer(t)
	body := `{"product_name": "Camping Stove", "approved_for_quote": true, "status": "Available",
		"net_price_adjustment_percentage": -27.5, "reasoning_breakdown": []}`

	code, resp := do(t, s, http.MethodPost, "/v1/risk", body)
	require.Equal(t, http.StatusOK, code)

	var got types.RiskAssessment
	require.NoError(t, json.Unmarshal(resp, &got))
	assert.Equal(t, types.RiskHigh, got.Level)
	assert.Equal(t, risk.HighRiskSummary, got.Summary)
	require.Len(t, got.Reasons, 1)
	assert.Contains(t, got.Reasons[0], "27.5%")
}

func TestQuote(t *testing.T) {
	s := testServer(t)
	body := `{"items": [{"product_name": "trail running shoes", "quantity": 30}, {"product_name": "Beach Ball", "quantity": 1}]}`

	code, resp := do(t, s, http.MethodPost, "/v1/quote", body)
	require.Equal(t, http.StatusOK, code, string(resp))

	var q types.Quote
	require.NoError(t, json.Unmarshal(resp, &q))
	assert.Equal(t, "QT-20250115103045", q.Number)
	assert.NotEmpty(t, q.ID)
	require.Len(t, q.Items, 2)
	assert.Equal(t, "2400.00", q.GrandTotal.StringFixed(2))
	assert.Equal(t, []string{"Beach Ball: Product is out of stock."}, q.Notes)
	require.NotNil(t, q.Items[0].Risk)
}

func TestQuoteMarkdown(t *testing.T) {
	s := testServer(t)
	req := httptest.NewRequest(http.MethodPost, "/v1/quote?format=md",
		strings.NewReader(`{"items": [{"product_name": "Trail Running Shoes", "quantity": 30}]}`))
	resp, err := s.App().Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/markdown")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "Quotation_QT-20250115103045.md")
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(data), "## Grand Total: INR 2,400.00")
}

func TestQuoteRejects(t *testing.T) {
	s := testServer(t)

	code, _ := do(t, s, http.MethodPost, "/v1/quote", `{"items": []}`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, body := do(t, s, http.MethodPost, "/v1/quote", `{"items": [{"product_name": "Kite", "quantity": 0}]}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, string(body), "quantity must be a positive integer")

	code, _ = do(t, s, http.MethodPost, "/v1/quote?format=pdf", `{"items": [{"product_name": "Kite", "quantity": 1}]}`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestProducts(t *testing.T) {
	s := testServer(t)

	code, body := do(t, s, http.MethodGet, "/v1/products?name=beach%20ball&name=Trail%20Runing%20Shoes", "")
	require.Equal(t, http.StatusOK, code)

	var got struct {
		Products    []types.ProductRecord `json:"products"`
		NotFound    []string              `json:"not_found"`
		Suggestions map[string][]string   `json:"suggestions"`
		Message     string                `json:"message"`
	}
	require.NoError(t, json.Unmarshal(body, &got))
	require.Len(t, got.Products, 1)
	assert.Equal(t, "Beach Ball", got.Products[0].DisplayName())
	assert.Equal(t, []string{"Trail Runing Shoes"}, got.NotFound)
	assert.Equal(t, []string{"Trail Running Shoes"}, got.Suggestions["trail runing shoes"])
	assert.Contains(t, got.Message, "did you mean: Trail Running Shoes?")

	code, body = do(t, s, http.MethodGet, "/v1/products", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"names": ["Trail Running Shoes", "Beach Ball"]}`, string(body))
}

func TestNoCatalog(t *testing.T) {
	s := New(Deps{Engine: pricing.NewEngine(types.DefaultPricingConfig(), nil), Log: io.Discard})

	code, _ := do(t, s, http.MethodGet, "/v1/products?name=x", "")
	assert.Equal(t, http.StatusServiceUnavailable, code)

	code, _ = do(t, s, http.MethodGet, "/nowhere", "")
	assert.Equal(t, http.StatusNotFound, code)
}
