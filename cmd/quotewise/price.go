// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/pdiddy/quotewise/internal/pricing"
	"github.com/pdiddy/quotewise/internal/render"
)

var priceCmd = &cobra.Command{
	Use:   "price [batch.json]",
	Short: "Price a batch of product records",
	Long: `Price reads a JSON array of {"product_json": {...}, "quantity": N} entries
from a file or stdin and prints one priced line item per entry, in input
order. A malformed entry reports its own error and does not stop the batch.

Use --json for machine-readable output and --dump to inspect the full
result structure.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPrice,
}

func runPrice(cmd *cobra.Command, args []string) error {
	var name string
	if len(args) > 0 {
		name = args[0]
	}
	data, err := readInput(cmd, name)
	if err != nil {
		return err
	}
	entries, err := pricing.ParseBatch(data)
	if err != nil {
		return err
	}

	c, err := newComponents(cmd.Context(), cmd, false)
	if err != nil {
		return err
	}
	results := c.engine.CalculateBatch(entries)

	out := cmd.OutOrStdout()
	if dump, _ := cmd.Flags().GetBool("dump"); dump {
		spew.Fdump(out, results)
		return nil
	}
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
	printBatch(out, results, c.cfg.Quote.Currency)
	return nil
}

func printBatch(w io.Writer, results []pricing.BatchResult, currency string) {
	var approved int
	for i, r := range results {
		if r.Item == nil {
			fmt.Fprintf(w, "%d. error: %s\n", i+1, r.Error)
			continue
		}
		it := r.Item
		if !it.Approved {
			fmt.Fprintf(w, "%d. %s x%d: not quoted: %s\n", i+1, it.ProductName, it.RequestedQuantity, it.Status)
			continue
		}
		approved++
		fmt.Fprintf(w, "%d. %s x%d: %s each (base %s, %s), total %s\n",
			i+1, it.ProductName, it.RequestedQuantity,
			render.Money(currency, *it.FinalUnitPrice),
			render.Money(currency, *it.BaseUnitPrice),
			render.Percent(it.NetAdjustmentPercentage),
			render.Money(currency, *it.TotalPrice))
		for _, reason := range it.Reasoning {
			fmt.Fprintf(w, "   - %s\n", reason)
		}
	}
	fmt.Fprintf(w, "\n%d of %d item(s) approved\n", approved, len(results))
	if approved == 0 && len(results) > 0 {
		fmt.Fprintln(w, "No items could be quoted.")
	}
}

func init() {
	priceCmd.Flags().Bool("json", false, "output results as JSON")
	priceCmd.Flags().Bool("dump", false, "print a debug dump of the results")
	addClockFlag(priceCmd)

	rootCmd.AddCommand(priceCmd)
}
