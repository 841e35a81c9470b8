// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the quotewise pipeline:
// catalog records, priced line items, risk assessments, quotes, and the
// configuration structs consumed by each stage.
package types

import (
	"strings"

	"github.com/shopspring/decimal"
)

// StockStatus is the inventory availability flag carried by a product record.
type StockStatus string

const (
	InStock    StockStatus = "In Stock"
	OutOfStock StockStatus = "Out of Stock"
)

// Factor is a categorical tag attached to a product that drives the
// factor-based pricing rules.
type Factor string

const (
	FactorWeatherSeasons  Factor = "Weather & Seasons"
	FactorAge             Factor = "Age"
	FactorGender          Factor = "Gender"
	FactorPurchasingPower Factor = "Purchasing Power"
)

// ProductRecord is one catalog row as consumed by the pricing engine.
// The four required fields are pointers so that an absent value can be
// told apart from a zero value.
type ProductRecord struct {
	// Name is the product name. Required.
	Name *string `json:"product_name" yaml:"product_name"`

	Category    string `json:"category" yaml:"category"`
	SubCategory string `json:"sub_category,omitempty" yaml:"sub_category,omitempty"`
	Brand       string `json:"brand,omitempty" yaml:"brand,omitempty"`
	Size        string `json:"size,omitempty" yaml:"size,omitempty"`
	Color       string `json:"color,omitempty" yaml:"color,omitempty"`

	// Factors holds up to three free-text tags; absent slots are "".
	Factors [3]string `json:"factors" yaml:"factors"`

	// StockQuantity is the number of units on hand. Required.
	StockQuantity *int `json:"quantity_in_stock" yaml:"quantity_in_stock"`

	// ReorderLevel of 0 disables the inventory discount rule.
	ReorderLevel int `json:"reorder_level" yaml:"reorder_level"`

	// StockStatus is the availability flag. Required.
	StockStatus *StockStatus `json:"stock_status" yaml:"stock_status"`

	// MinSellingPrice is the base unit price used for quoting. Required.
	MinSellingPrice *decimal.Decimal `json:"min_selling_price" yaml:"min_selling_price"`

	MaxSellingPrice *decimal.Decimal `json:"max_selling_price,omitempty" yaml:"max_selling_price,omitempty"`

	// CompetitorPrices maps competitor name to its listed price; a nil
	// value means the competitor does not list the product.
	CompetitorPrices map[string]*decimal.Decimal `json:"competitor_prices,omitempty" yaml:"competitor_prices,omitempty"`
}

// DisplayName returns the product name, or "Unknown" when it is absent.
func (p ProductRecord) DisplayName() string {
	if p.Name == nil {
		return "Unknown"
	}
	return *p.Name
}

// MissingFields lists the required fields that are absent, in the fixed
// order product_name, quantity_in_stock, stock_status, min_selling_price.
func (p ProductRecord) MissingFields() []string {
	var missing []string
	if p.Name == nil {
		missing = append(missing, "product_name")
	}
	if p.StockQuantity == nil {
		missing = append(missing, "quantity_in_stock")
	}
	if p.StockStatus == nil {
		missing = append(missing, "stock_status")
	}
	if p.MinSellingPrice == nil {
		missing = append(missing, "min_selling_price")
	}
	return missing
}

// FactorSet is the set of non-empty, trimmed factor tags of a product.
type FactorSet map[Factor]bool

// FactorSet returns the product's factor tags as a set.
func (p ProductRecord) FactorSet() FactorSet {
	set := make(FactorSet, len(p.Factors))
	for _, f := range p.Factors {
		f = strings.TrimSpace(f)
		if f != "" {
			set[Factor(f)] = true
		}
	}
	return set
}

// HasAny reports whether any of the given factors is present.
func (s FactorSet) HasAny(factors ...Factor) bool {
	for _, f := range factors {
		if s[f] {
			return true
		}
	}
	return false
}
