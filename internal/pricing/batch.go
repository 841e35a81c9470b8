// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pricing

import (
	"bytes"
	"fmt"
	"math"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"github.com/pdiddy/quotewise/pkg/types"
)

// MissingEntryFieldsMessage is reported for batch entries without a
// product record or a quantity.
const MissingEntryFieldsMessage = "Skipping item due to missing 'product_json' or 'quantity'."

// ParseError reports a batch payload that is not a JSON array of entries.
// It is distinct from business-rule rejections, which are results.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid batch payload: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// BatchEntry is one {product_json, quantity} pair of a batch request. Both
// fields are kept raw so that a malformed entry fails alone.
type BatchEntry struct {
	Product  json.RawMessage `json:"product_json"`
	Quantity json.RawMessage `json:"quantity"`
}

// BatchResult is either a priced item or a per-entry error.
type BatchResult struct {
	Item  *types.PricedLineItem
	Error string
}

// MarshalJSON encodes an error result as {"error": "..."} and a priced
// result as the item itself.
func (r BatchResult) MarshalJSON() ([]byte, error) {
	if r.Error != "" || r.Item == nil {
		return json.Marshal(struct {
			Error string `json:"error"`
		}{r.Error})
	}
	return json.Marshal(r.Item)
}

// ParseBatch decodes a batch payload. Only a payload that is not a JSON
// array of objects fails; problems inside an entry surface later as that
// entry's error.
func ParseBatch(data []byte) ([]BatchEntry, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, &ParseError{Err: fmt.Errorf("input must be a JSON array of line items")}
	}
	var entries []BatchEntry
	if err := json.Unmarshal(trimmed, &entries); err != nil {
		return nil, &ParseError{Err: err}
	}
	return entries, nil
}

// CalculateBatch prices every entry independently and returns one result
// per entry in input order. Entries are priced concurrently.
func (e *Engine) CalculateBatch(entries []BatchEntry) []BatchResult {
	results := make([]BatchResult, len(entries))
	var wg sync.WaitGroup
	for i := range entries {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = e.calculateEntry(entries[i])
		}(i)
	}
	wg.Wait()
	return results
}

func (e *Engine) calculateEntry(entry BatchEntry) BatchResult {
	if isAbsent(entry.Product) || isAbsent(entry.Quantity) {
		return BatchResult{Error: MissingEntryFieldsMessage}
	}

	var product types.ProductRecord
	if err := json.Unmarshal(entry.Product, &product); err != nil {
		return BatchResult{Error: fmt.Sprintf("Failed to process item: invalid product_json: %v", err)}
	}

	quantity, err := decodeQuantity(entry.Quantity)
	if err != nil {
		return BatchResult{Error: fmt.Sprintf("Failed to process item %s: invalid quantity: %v", product.DisplayName(), err)}
	}

	item, err := e.Calculate(product, quantity)
	if err != nil {
		return BatchResult{Error: fmt.Sprintf("Failed to process item %s: %v", product.DisplayName(), err)}
	}
	return BatchResult{Item: &item}
}

// decodeQuantity accepts a JSON number or a numeric string holding a
// whole number, so 2, 2.0 and "2" all decode to 2.
func decodeQuantity(raw json.RawMessage) (int, error) {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(bytes.TrimSpace(raw)); err != nil {
		return 0, fmt.Errorf("%s is not a number", bytes.TrimSpace(raw))
	}
	if !d.IsInteger() {
		return 0, fmt.Errorf("%s is not a whole number", d.String())
	}
	if d.Abs().GreaterThan(decimal.NewFromInt(math.MaxInt32)) {
		return 0, fmt.Errorf("%s is out of range", d.String())
	}
	return int(d.IntPart()), nil
}

// isAbsent reports whether a raw field was omitted, null, or an empty object.
func isAbsent(raw json.RawMessage) bool {
	v := bytes.TrimSpace(raw)
	return len(v) == 0 || bytes.Equal(v, []byte("null")) || bytes.Equal(bytes.Join(bytes.Fields(v), nil), []byte("{}"))
}
