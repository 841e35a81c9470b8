// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// PricingConfig holds the pricing rule parameters. Percentages are plain
// numbers (7.5 means 7.5%).
type PricingConfig struct {
	// InventoryThresholdMultiplier: the inventory discount applies when
	// stock exceeds this multiple of the reorder level (default 2).
	InventoryThresholdMultiplier int `json:"inventory_threshold_multiplier" yaml:"inventory_threshold_multiplier" mapstructure:"inventory_threshold_multiplier"`

	// InventoryStepPercent is the discount per multiple of the threshold (default 5).
	InventoryStepPercent float64 `json:"inventory_step_percent" yaml:"inventory_step_percent" mapstructure:"inventory_step_percent"`

	// InventoryCapPercent caps the inventory discount (default 20).
	InventoryCapPercent float64 `json:"inventory_cap_percent" yaml:"inventory_cap_percent" mapstructure:"inventory_cap_percent"`

	// BulkQuantityThreshold is the order quantity at which the bulk discount applies (default 25).
	BulkQuantityThreshold int `json:"bulk_quantity_threshold" yaml:"bulk_quantity_threshold" mapstructure:"bulk_quantity_threshold"`

	// BulkDiscountPercent is the flat bulk discount (default 7.5).
	BulkDiscountPercent float64 `json:"bulk_discount_percent" yaml:"bulk_discount_percent" mapstructure:"bulk_discount_percent"`

	// SeasonalMarkupPercent is applied to in-season summer categories (default 10).
	SeasonalMarkupPercent float64 `json:"seasonal_markup_percent" yaml:"seasonal_markup_percent" mapstructure:"seasonal_markup_percent"`

	// SeasonalCategories lists the categories treated as summer-seasonal.
	SeasonalCategories []string `json:"seasonal_categories" yaml:"seasonal_categories" mapstructure:"seasonal_categories"`

	// DemographicMarkupPercent is the targeted product premium (default 3).
	DemographicMarkupPercent float64 `json:"demographic_markup_percent" yaml:"demographic_markup_percent" mapstructure:"demographic_markup_percent"`
}

// RiskConfig holds the risk assessment thresholds.
type RiskConfig struct {
	// MaxDiscountPercent is the largest net discount considered low risk (default 25).
	MaxDiscountPercent float64 `json:"max_discount_percent" yaml:"max_discount_percent" mapstructure:"max_discount_percent"`
}

// CatalogSourceKind selects the backing store for product records.
type CatalogSourceKind string

const (
	SourceCSV      CatalogSourceKind = "csv"
	SourceSQLite   CatalogSourceKind = "sqlite"
	SourcePostgres CatalogSourceKind = "postgres"
	SourceHTTP     CatalogSourceKind = "http"
)

// HTTPConfig holds shared HTTP settings for the remote catalog source.
type HTTPConfig struct {
	Timeout    time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
	UserAgent  string        `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
	MaxRetries int           `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// CatalogConfig holds settings for the catalog accessor.
type CatalogConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Source selects csv, sqlite, postgres, or http.
	Source CatalogSourceKind `json:"source" yaml:"source" mapstructure:"source"`

	// Path is the CSV file or SQLite database path.
	Path string `json:"path" yaml:"path" mapstructure:"path"`

	// DSN is the Postgres connection string.
	DSN string `json:"dsn,omitempty" yaml:"dsn,omitempty" mapstructure:"dsn"`

	// BaseURL is the remote catalog endpoint.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty" mapstructure:"base_url"`

	// SimilarityCutoff is the minimum ratio for near-match suggestions (default 0.6).
	SimilarityCutoff float64 `json:"similarity_cutoff" yaml:"similarity_cutoff" mapstructure:"similarity_cutoff"`

	// MaxSuggestions bounds the suggestions per unmatched name (default 3).
	MaxSuggestions int `json:"max_suggestions" yaml:"max_suggestions" mapstructure:"max_suggestions"`

	// CacheTTL is how long loaded records are reused (default 30m, 0 disables).
	CacheTTL time.Duration `json:"cache_ttl" yaml:"cache_ttl" mapstructure:"cache_ttl"`
}

// QuoteConfig holds settings for quote assembly and rendering.
type QuoteConfig struct {
	OutputDir    string   `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`
	CompanyName  string   `json:"company_name" yaml:"company_name" mapstructure:"company_name"`
	Currency     string   `json:"currency" yaml:"currency" mapstructure:"currency"`
	ValidityDays int      `json:"validity_days" yaml:"validity_days" mapstructure:"validity_days"`
	Terms        []string `json:"terms" yaml:"terms" mapstructure:"terms"`
}

// ServerConfig holds settings for the HTTP API.
type ServerConfig struct {
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`
}

// Config groups all stage configurations.
type Config struct {
	Pricing PricingConfig `json:"pricing" yaml:"pricing" mapstructure:"pricing"`
	Risk    RiskConfig    `json:"risk" yaml:"risk" mapstructure:"risk"`
	Catalog CatalogConfig `json:"catalog" yaml:"catalog" mapstructure:"catalog"`
	Quote   QuoteConfig   `json:"quote" yaml:"quote" mapstructure:"quote"`
	Server  ServerConfig  `json:"server" yaml:"server" mapstructure:"server"`
}

// DefaultPricingConfig returns the standard rule parameters.
func DefaultPricingConfig() PricingConfig {
	return PricingConfig{
		InventoryThresholdMultiplier: 2,
		InventoryStepPercent:         5,
		InventoryCapPercent:          20,
		BulkQuantityThreshold:        25,
		BulkDiscountPercent:          7.5,
		SeasonalMarkupPercent:        10,
		SeasonalCategories:           []string{"Toys & Games", "Sports & Outdoors", "Fashion & Apparel"},
		DemographicMarkupPercent:     3,
	}
}

// DefaultRiskConfig returns the standard risk thresholds.
func DefaultRiskConfig() RiskConfig {
	return RiskConfig{MaxDiscountPercent: 25}
}

// DefaultConfig returns a Config populated with every default.
func DefaultConfig() Config {
	return Config{
		Pricing: DefaultPricingConfig(),
		Risk:    DefaultRiskConfig(),
		Catalog: CatalogConfig{
			HTTPConfig: HTTPConfig{
				Timeout:    30 * time.Second,
				UserAgent:  "quotewise/0.1",
				MaxRetries: 3,
			},
			Source:           SourceCSV,
			Path:             "data/inventory.csv",
			SimilarityCutoff: 0.6,
			MaxSuggestions:   3,
			CacheTTL:         30 * time.Minute,
		},
		Quote: QuoteConfig{
			OutputDir:    "final_quotes",
			CompanyName:  "Your Company Name",
			Currency:     "INR",
			ValidityDays: 30,
			Terms: []string{
				"Prices are inclusive of applicable taxes.",
				"Quotation is valid for 30 days from the date of issue.",
				"Delivery timeline is subject to inventory availability.",
				"Payment terms: 50% advance, 50% on delivery.",
			},
		},
		Server: ServerConfig{Addr: ":8080"},
	}
}
