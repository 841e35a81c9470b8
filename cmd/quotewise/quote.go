// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/quotewise/internal/render"
	"github.com/pdiddy/quotewise/pkg/types"
)

var quoteCmd = &cobra.Command{
	Use:   `quote ["Product Name=QTY" ...]`,
	Short: "Build a sales quotation from product names and quantities",
	Long: `Quote resolves each requested product through the configured catalog,
prices every line, assesses its risk, and writes the quotation to the
output directory as Quotation_<number>.<ext> in each requested format.

Lines come from arguments of the form "Product Name=QTY" or from --file, a
YAML or JSON list of {product_name, quantity} objects. Products that cannot
be found or quoted stay on the quotation as notes.`,
	RunE: runQuote,
}

func runQuote(cmd *cobra.Command, args []string) error {
	reqs, err := lineRequests(cmd, args)
	if err != nil {
		return err
	}
	formats, err := exportFormats(cmd)
	if err != nil {
		return err
	}

	c, err := newComponents(cmd.Context(), cmd, true)
	if err != nil {
		return err
	}
	defer c.close()

	q, err := c.builder.Build(cmd.Context(), reqs)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if quiet, _ := cmd.Flags().GetBool("quiet"); !quiet {
		if err := render.NewMarkdown(c.cfg.Quote).Render(out, q); err != nil {
			return err
		}
		fmt.Fprintln(out)
	}

	dir, _ := cmd.Flags().GetString("out")
	if dir == "" {
		dir = c.cfg.Quote.OutputDir
	}
	for _, f := range formats {
		path, err := render.Export(q, dir, f, c.cfg.Quote)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote %s\n", path)
	}

	if high := q.HighRiskItems(); len(high) > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %d line(s) flagged high risk:\n", len(high))
		for _, l := range high {
			for _, r := range l.Risk.Reasons {
				fmt.Fprintf(cmd.ErrOrStderr(), "  %s\n", r)
			}
		}
	}
	return nil
}

// lineRequests reads lines from --file, falling back to positional
// "Name=QTY" arguments.
func lineRequests(cmd *cobra.Command, args []string) ([]types.LineRequest, error) {
	file, _ := cmd.Flags().GetString("file")
	if file == "" {
		if len(args) == 0 {
			return nil, fmt.Errorf("no line items: pass \"Product Name=QTY\" arguments or --file")
		}
		return parseLineArgs(args)
	}
	if len(args) > 0 {
		return nil, fmt.Errorf("use either --file or line item arguments, not both")
	}
	data, err := readInput(cmd, file)
	if err != nil {
		return nil, err
	}
	return parseRequestFile(data, filepath.Ext(file))
}

// parseLineArgs parses "Name=QTY" pairs. The last "=" separates the
// quantity so names may contain "=".
func parseLineArgs(args []string) ([]types.LineRequest, error) {
	reqs := make([]types.LineRequest, 0, len(args))
	for _, a := range args {
		i := strings.LastIndex(a, "=")
		if i <= 0 {
			return nil, fmt.Errorf("invalid line item %q: want \"Product Name=QTY\"", a)
		}
		name := strings.TrimSpace(a[:i])
		qty, err := strconv.Atoi(strings.TrimSpace(a[i+1:]))
		if err != nil {
			return nil, fmt.Errorf("invalid quantity in %q: %w", a, err)
		}
		reqs = append(reqs, types.LineRequest{ProductName: name, Quantity: qty})
	}
	return reqs, nil
}

// parseRequestFile decodes a list of line requests, or an object with an
// "items" list. YAML is a superset of JSON, so one decoder serves both.
func parseRequestFile(data []byte, ext string) ([]types.LineRequest, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("request file is empty")
	}
	var reqs []types.LineRequest
	if err := yaml.Unmarshal(data, &reqs); err == nil {
		return reqs, nil
	}
	var wrapped struct {
		Items []types.LineRequest `yaml:"items"`
	}
	if err := yaml.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("decoding request file (%s): %w", strings.TrimPrefix(ext, "."), err)
	}
	return wrapped.Items, nil
}

func exportFormats(cmd *cobra.Command) ([]render.Format, error) {
	names, _ := cmd.Flags().GetStringSlice("format")
	formats := make([]render.Format, 0, len(names))
	for _, n := range names {
		f, err := render.ParseFormat(n)
		if err != nil {
			return nil, err
		}
		formats = append(formats, f)
	}
	return formats, nil
}

func init() {
	quoteCmd.Flags().String("file", "", "YAML or JSON file of line items (- for stdin)")
	quoteCmd.Flags().String("catalog", "", "catalog CSV or database path (overrides config)")
	quoteCmd.Flags().String("out", "", "output directory (default from config: final_quotes)")
	quoteCmd.Flags().StringSlice("format", []string{"md"}, "export formats: md, yaml, json")
	quoteCmd.Flags().Bool("quiet", false, "do not print the quotation to stdout")
	addClockFlag(quoteCmd)

	rootCmd.AddCommand(quoteCmd)
}
