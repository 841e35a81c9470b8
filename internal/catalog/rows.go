// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"github.com/pdiddy/quotewise/pkg/types"
)

// productColumns is the column list shared by the SQL sources.
const productColumns = `product_name, category, sub_category, brand, size, color,
	factor_1, factor_2, factor_3, quantity_in_stock, reorder_level, stock_status,
	min_selling_price, max_selling_price, competitor_prices`

// productRow is the scan target for one products row. Every column may be
// NULL.
type productRow struct {
	name, category, subCategory, brand, size, color *string
	factor1, factor2, factor3                       *string
	stock, reorder                                  *int64
	status, minPrice, maxPrice, competitors         *string
}

func (r *productRow) dests() []any {
	return []any{
		&r.name, &r.category, &r.subCategory, &r.brand, &r.size, &r.color,
		&r.factor1, &r.factor2, &r.factor3, &r.stock, &r.reorder, &r.status,
		&r.minPrice, &r.maxPrice, &r.competitors,
	}
}

func (r *productRow) record() (types.ProductRecord, error) {
	p := types.ProductRecord{
		Name:            r.name,
		Category:        deref(r.category),
		SubCategory:     deref(r.subCategory),
		Brand:           deref(r.brand),
		Size:            deref(r.size),
		Color:           deref(r.color),
		Factors:         [3]string{deref(r.factor1), deref(r.factor2), deref(r.factor3)},
		MinSellingPrice: optDecimal(deref(r.minPrice)),
		MaxSellingPrice: optDecimal(deref(r.maxPrice)),
	}
	if r.stock != nil {
		v := int(*r.stock)
		p.StockQuantity = &v
	}
	if r.reorder != nil {
		p.ReorderLevel = int(*r.reorder)
	}
	if r.status != nil {
		s := types.StockStatus(*r.status)
		p.StockStatus = &s
	}
	if r.competitors != nil && *r.competitors != "" {
		var prices map[string]*decimal.Decimal
		if err := json.Unmarshal([]byte(*r.competitors), &prices); err != nil {
			return p, fmt.Errorf("decoding competitor prices for %s: %w", p.DisplayName(), err)
		}
		p.CompetitorPrices = prices
	}
	return p, nil
}

// rowValues returns the insert arguments for p in productColumns order.
func rowValues(p types.ProductRecord) ([]any, error) {
	var competitors any
	if p.CompetitorPrices != nil {
		data, err := json.Marshal(p.CompetitorPrices)
		if err != nil {
			return nil, fmt.Errorf("encoding competitor prices for %s: %w", p.DisplayName(), err)
		}
		competitors = string(data)
	}
	var stock, status, minPrice, maxPrice any
	if p.StockQuantity != nil {
		stock = *p.StockQuantity
	}
	if p.StockStatus != nil {
		status = string(*p.StockStatus)
	}
	if p.MinSellingPrice != nil {
		minPrice = p.MinSellingPrice.String()
	}
	if p.MaxSellingPrice != nil {
		maxPrice = p.MaxSellingPrice.String()
	}
	var name any
	if p.Name != nil {
		name = *p.Name
	}
	return []any{
		name, p.Category, p.SubCategory, p.Brand, p.Size, p.Color,
		p.Factors[0], p.Factors[1], p.Factors[2], stock, p.ReorderLevel, status,
		minPrice, maxPrice, competitors,
	}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
