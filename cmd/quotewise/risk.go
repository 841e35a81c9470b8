// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"fmt"
	"io"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/pdiddy/quotewise/pkg/types"
)

var riskCmd = &cobra.Command{
	Use:   "risk [items.json]",
	Short: "Assess the pricing risk of priced line items",
	Long: `Risk reads priced line items (a single JSON object or an array, such as
the output of "price --json") and classifies each as Low or High risk. A net
discount beyond the configured maximum is High risk. Items that were not
approved for quoting are always Low risk.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRisk,
}

func runRisk(cmd *cobra.Command, args []string) error {
	var name string
	if len(args) > 0 {
		name = args[0]
	}
	data, err := readInput(cmd, name)
	if err != nil {
		return err
	}
	items, err := parsePricedItems(data)
	if err != nil {
		return err
	}

	c, err := newComponents(cmd.Context(), cmd, false)
	if err != nil {
		return err
	}
	assessments := c.assessor.AssessAll(items)

	out := cmd.OutOrStdout()
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(assessments)
	}
	printAssessments(out, assessments)
	return nil
}

// parsePricedItems accepts one item or an array of items. Array elements
// that carry only an "error" field are skipped.
func parsePricedItems(data []byte) ([]types.PricedLineItem, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var item types.PricedLineItem
		if err := json.Unmarshal(trimmed, &item); err != nil {
			return nil, fmt.Errorf("decoding priced item: %w", err)
		}
		return []types.PricedLineItem{item}, nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, fmt.Errorf("decoding priced items: %w", err)
	}
	items := make([]types.PricedLineItem, 0, len(raw))
	for i, r := range raw {
		var probe struct {
			Error       string `json:"error"`
			ProductName string `json:"product_name"`
		}
		if err := json.Unmarshal(r, &probe); err != nil {
			return nil, fmt.Errorf("decoding item %d: %w", i+1, err)
		}
		if probe.Error != "" && probe.ProductName == "" {
			continue
		}
		var item types.PricedLineItem
		if err := json.Unmarshal(r, &item); err != nil {
			return nil, fmt.Errorf("decoding item %d: %w", i+1, err)
		}
		items = append(items, item)
	}
	return items, nil
}

func printAssessments(w io.Writer, assessments []types.RiskAssessment) {
	var high int
	for _, a := range assessments {
		fmt.Fprintf(w, "[%s] %s\n", a.Level, a.Summary)
		for _, r := range a.Reasons {
			fmt.Fprintf(w, "   - %s\n", r)
		}
		if a.Level == types.RiskHigh {
			high++
		}
	}
	fmt.Fprintf(w, "\n%d of %d item(s) high risk\n", high, len(assessments))
}

func init() {
	riskCmd.Flags().Bool("json", false, "output assessments as JSON")

	rootCmd.AddCommand(riskCmd)
}
