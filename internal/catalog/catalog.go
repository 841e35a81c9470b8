// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog resolves product names to catalog records. Records come
// from a Source (CSV file, SQLite or Postgres table, or a remote HTTP
// catalog); names are matched case-insensitively and unmatched names get
// near-match suggestions.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/quotewise/pkg/types"
)

// ErrNotFound is returned by Get when no record matches the name.
var ErrNotFound = errors.New("product not found")

// Source loads every product record of a catalog.
type Source interface {
	Products(ctx context.Context) ([]types.ProductRecord, error)
}

// LookupResult holds the outcome of resolving a list of names.
type LookupResult struct {
	// Products are the matched records, in catalog order.
	Products []types.ProductRecord `json:"products" yaml:"products"`

	// NotFound lists the requested names with no exact match, as given.
	NotFound []string `json:"not_found,omitempty" yaml:"not_found,omitempty"`

	// Suggestions maps a normalized unmatched name to its near matches,
	// best first.
	Suggestions map[string][]string `json:"suggestions,omitempty" yaml:"suggestions,omitempty"`
}

// Record returns the first matched record whose name equals name after
// normalization.
func (r LookupResult) Record(name string) (types.ProductRecord, bool) {
	key := Normalize(name)
	for _, p := range r.Products {
		if p.Name != nil && Normalize(*p.Name) == key {
			return p, true
		}
	}
	return types.ProductRecord{}, false
}

// SuggestionsFor returns the near matches recorded for name.
func (r LookupResult) SuggestionsFor(name string) []string {
	return r.Suggestions[Normalize(name)]
}

// Message describes the unmatched names and their suggestions, or returns
// "" when every name matched.
func (r LookupResult) Message() string {
	if len(r.NotFound) == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "No exact matches found for: %s.", strings.Join(r.NotFound, ", "))
	for _, name := range r.NotFound {
		if s := r.SuggestionsFor(name); len(s) > 0 {
			fmt.Fprintf(&b, " For '%s', did you mean: %s?", name, strings.Join(s, ", "))
		}
	}
	return b.String()
}

// Normalize trims and lowercases a product name for matching.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Catalog matches names against the records of a Source.
type Catalog struct {
	src            Source
	cutoff         float64
	maxSuggestions int
}

// New creates a Catalog over src using the matching settings of cfg.
func New(src Source, cfg types.CatalogConfig) *Catalog {
	cutoff := cfg.SimilarityCutoff
	if cutoff <= 0 || cutoff > 1 {
		cutoff = 0.6
	}
	n := cfg.MaxSuggestions
	if n <= 0 {
		n = 3
	}
	return &Catalog{src: src, cutoff: cutoff, maxSuggestions: n}
}

// Lookup resolves names. A record matches when its trimmed, lowercased
// name equals a trimmed, lowercased request.
func (c *Catalog) Lookup(ctx context.Context, names []string) (LookupResult, error) {
	products, err := c.src.Products(ctx)
	if err != nil {
		return LookupResult{}, fmt.Errorf("loading catalog: %w", err)
	}

	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[Normalize(n)] = true
	}

	var result LookupResult
	matched := make(map[string]bool)
	for _, p := range products {
		if p.Name == nil {
			continue
		}
		key := Normalize(*p.Name)
		if wanted[key] {
			result.Products = append(result.Products, p)
			matched[key] = true
		}
	}

	var all []string
	seen := make(map[string]bool)
	for _, n := range names {
		key := Normalize(n)
		if matched[key] || seen[key] {
			continue
		}
		seen[key] = true
		result.NotFound = append(result.NotFound, n)

		if all == nil {
			all = productNames(products)
		}
		if s := CloseMatches(n, all, c.maxSuggestions, c.cutoff); len(s) > 0 {
			if result.Suggestions == nil {
				result.Suggestions = make(map[string][]string)
			}
			result.Suggestions[key] = s
		}
	}
	return result, nil
}

// Get returns the first record named name, or ErrNotFound.
func (c *Catalog) Get(ctx context.Context, name string) (types.ProductRecord, error) {
	result, err := c.Lookup(ctx, []string{name})
	if err != nil {
		return types.ProductRecord{}, err
	}
	p, ok := result.Record(name)
	if !ok {
		return types.ProductRecord{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return p, nil
}

// Names returns every distinct product name in catalog order.
func (c *Catalog) Names(ctx context.Context) ([]string, error) {
	products, err := c.src.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	return productNames(products), nil
}

func productNames(products []types.ProductRecord) []string {
	seen := make(map[string]bool, len(products))
	names := make([]string, 0, len(products))
	for _, p := range products {
		if p.Name == nil {
			continue
		}
		n := strings.TrimSpace(*p.Name)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		names = append(names, n)
	}
	return names
}
