// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/pdiddy/quotewise/pkg/types"
)

// DefaultCompetitors are the competitor price columns of the inventory sheet.
var DefaultCompetitors = []string{"SmartBuy", "ClicKart", "ShopiSky", "Neesho"}

// Column keys after header normalization (lowercase, letters and digits only).
const (
	colName        = "productname"
	colCategory    = "category"
	colSubCategory = "subcategory"
	colBrand       = "brand"
	colSize        = "size"
	colColor       = "color"
	colFactor1     = "factor1"
	colFactor2     = "factor2"
	colFactor3     = "factor3"
	colStock       = "quantityinstock"
	colReorder     = "reorderlevel"
	colStatus      = "stockstatus"
	colMinPrice    = "minsellingpricers"
	colMaxPrice    = "maxsellingpricemrprs"
)

// columnAliases maps alternative normalized headers to their column key.
var columnAliases = map[string]string{
	"minsellingprice": colMinPrice,
	"maxsellingprice": colMaxPrice,
	"mrp":             colMaxPrice,
}

// CSVSource reads product records from an inventory CSV file.
type CSVSource struct {
	Path string
}

// Products parses the whole file on every call; wrap the source in
// Cached to avoid re-reading.
func (s *CSVSource) Products(ctx context.Context) ([]types.ProductRecord, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("opening inventory %s: %w", s.Path, err)
	}
	defer f.Close()
	return ParseCSV(f)
}

// ParseCSV reads inventory rows. Headers are matched loosely, so
// "Product Name", "Product_Name" and "product name" are the same column.
// Blank or unparsable cells in required columns leave the field absent so
// that pricing reports the record as incomplete.
func ParseCSV(r io.Reader) ([]types.ProductRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	cols := make(map[string]int, len(header))
	competitors := make(map[int]string)
	known := make(map[string]string, len(DefaultCompetitors))
	for _, c := range DefaultCompetitors {
		known[normalizeHeader(c)] = c
	}
	for i, h := range header {
		key := normalizeHeader(h)
		if alias, ok := columnAliases[key]; ok {
			key = alias
		}
		if name, ok := known[key]; ok {
			competitors[i] = name
			continue
		}
		if _, dup := cols[key]; !dup {
			cols[key] = i
		}
	}
	if _, ok := cols[colName]; !ok {
		return nil, fmt.Errorf("inventory has no product name column")
	}

	var products []types.ProductRecord
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("reading line %d: %w", line, err)
		}
		products = append(products, rowRecord(row, cols, competitors))
	}
	return products, nil
}

func rowRecord(row []string, cols map[string]int, competitors map[int]string) types.ProductRecord {
	cell := func(key string) string {
		i, ok := cols[key]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	p := types.ProductRecord{
		Name:            optString(cell(colName)),
		Category:        cell(colCategory),
		SubCategory:     cell(colSubCategory),
		Brand:           cell(colBrand),
		Size:            cell(colSize),
		Color:           cell(colColor),
		Factors:         [3]string{cell(colFactor1), cell(colFactor2), cell(colFactor3)},
		StockQuantity:   optInt(cell(colStock)),
		MinSellingPrice: optDecimal(cell(colMinPrice)),
		MaxSellingPrice: optDecimal(cell(colMaxPrice)),
	}
	if v := optInt(cell(colReorder)); v != nil {
		p.ReorderLevel = *v
	}
	if s := cell(colStatus); s != "" {
		status := types.StockStatus(s)
		p.StockStatus = &status
	}
	if len(competitors) > 0 {
		p.CompetitorPrices = make(map[string]*decimal.Decimal, len(competitors))
		for i, name := range competitors {
			var v string
			if i < len(row) {
				v = strings.TrimSpace(row[i])
			}
			p.CompetitorPrices[name] = optDecimal(v)
		}
	}
	return p
}

func normalizeHeader(h string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(h) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optInt(s string) *int {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || f != float64(int(f)) {
			return nil
		}
		v = int(f)
	}
	return &v
}

func optDecimal(s string) *decimal.Decimal {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &d
}
