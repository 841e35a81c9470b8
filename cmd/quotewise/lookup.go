// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup [product name...]",
	Short: "Look up products in the catalog by name",
	Long: `Lookup matches each name against the catalog, ignoring case and
surrounding whitespace, and suggests close matches for names it cannot
find. With no names it lists every product in the catalog.`,
	RunE: runLookup,
}

func runLookup(cmd *cobra.Command, args []string) error {
	c, err := newComponents(cmd.Context(), cmd, true)
	if err != nil {
		return err
	}
	defer c.close()

	out := cmd.OutOrStdout()
	jsonOutput, _ := cmd.Flags().GetBool("json")

	if len(args) == 0 {
		names, err := c.catalog.Names(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			return json.NewEncoder(out).Encode(names)
		}
		for _, n := range names {
			fmt.Fprintln(out, n)
		}
		fmt.Fprintf(out, "\n%d product(s)\n", len(names))
		return nil
	}

	result, err := c.catalog.Lookup(cmd.Context(), args)
	if err != nil {
		return err
	}
	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	for _, p := range result.Products {
		stock, status, price := "?", "?", "?"
		if p.StockQuantity != nil {
			stock = fmt.Sprint(*p.StockQuantity)
		}
		if p.StockStatus != nil {
			status = string(*p.StockStatus)
		}
		if p.MinSellingPrice != nil {
			price = p.MinSellingPrice.StringFixed(2)
		}
		fmt.Fprintf(out, "%-40s  %-20s  stock %-6s  %-12s  base %s\n", p.DisplayName(), p.Category, stock, status, price)
	}
	if msg := result.Message(); msg != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), msg)
	}
	return nil
}

func init() {
	lookupCmd.Flags().Bool("json", false, "output the lookup result as JSON")
	lookupCmd.Flags().String("catalog", "", "catalog CSV or database path (overrides config)")

	rootCmd.AddCommand(lookupCmd)
}
