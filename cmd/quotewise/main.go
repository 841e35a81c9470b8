// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the quotewise CLI.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/quotewise/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the quotewise CLI.
var rootCmd = &cobra.Command{
	Use:   "quotewise",
	Short: "Explainable pricing and sales quotations from an inventory catalog",
	Long: `quotewise prices catalog products with an ordered set of business rules
(inventory, bulk, seasonal, demographic, value-based override), flags risky
discounts, and assembles the results into a sales quotation.

Each stage is a subcommand: price and risk work on JSON payloads, lookup and
quote resolve product names through the configured catalog, and serve exposes
the same operations over HTTP.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		envFile, _ := cmd.Flags().GetString("env-file")
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", envFile, err)
		}
		return nil
	},
}

func init() {
	// Prices are emitted as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./quotewise.yaml or ~/.config/quotewise/config.yaml)")
	rootCmd.PersistentFlags().String("env-file", ".env", "dotenv file loaded into the environment before running")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("quotewise")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "quotewise"))
		}
	}

	// QUOTEWISE_CATALOG_PATH overrides catalog.path, and so on.
	viper.SetEnvPrefix("QUOTEWISE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults(types.DefaultConfig())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setDefaults registers the keys that can be overridden from the
// environment. Viper only consults the environment for keys it knows.
func setDefaults(d types.Config) {
	viper.SetDefault("pricing.inventory_threshold_multiplier", d.Pricing.InventoryThresholdMultiplier)
	viper.SetDefault("pricing.inventory_step_percent", d.Pricing.InventoryStepPercent)
	viper.SetDefault("pricing.inventory_cap_percent", d.Pricing.InventoryCapPercent)
	viper.SetDefault("pricing.bulk_quantity_threshold", d.Pricing.BulkQuantityThreshold)
	viper.SetDefault("pricing.bulk_discount_percent", d.Pricing.BulkDiscountPercent)
	viper.SetDefault("pricing.seasonal_markup_percent", d.Pricing.SeasonalMarkupPercent)
	viper.SetDefault("pricing.seasonal_categories", d.Pricing.SeasonalCategories)
	viper.SetDefault("pricing.demographic_markup_percent", d.Pricing.DemographicMarkupPercent)
	viper.SetDefault("catalog.source", string(d.Catalog.Source))
	viper.SetDefault("catalog.path", d.Catalog.Path)
	viper.SetDefault("catalog.dsn", d.Catalog.DSN)
	viper.SetDefault("catalog.base_url", d.Catalog.BaseURL)
	viper.SetDefault("catalog.timeout", d.Catalog.Timeout)
	viper.SetDefault("catalog.user_agent", d.Catalog.UserAgent)
	viper.SetDefault("catalog.max_retries", d.Catalog.MaxRetries)
	viper.SetDefault("catalog.similarity_cutoff", d.Catalog.SimilarityCutoff)
	viper.SetDefault("catalog.max_suggestions", d.Catalog.MaxSuggestions)
	viper.SetDefault("catalog.cache_ttl", d.Catalog.CacheTTL)
	viper.SetDefault("quote.output_dir", d.Quote.OutputDir)
	viper.SetDefault("quote.company_name", d.Quote.CompanyName)
	viper.SetDefault("quote.currency", d.Quote.Currency)
	viper.SetDefault("quote.validity_days", d.Quote.ValidityDays)
	viper.SetDefault("risk.max_discount_percent", d.Risk.MaxDiscountPercent)
	viper.SetDefault("server.addr", d.Server.Addr)
}

// loadConfig returns the defaults overlaid with the config file and
// environment.
func loadConfig() (types.Config, error) {
	cfg := types.DefaultConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
