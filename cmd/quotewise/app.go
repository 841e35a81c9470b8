// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/quotewise/internal/catalog"
	"github.com/pdiddy/quotewise/internal/pricing"
	"github.com/pdiddy/quotewise/internal/quote"
	"github.com/pdiddy/quotewise/internal/risk"
	"github.com/pdiddy/quotewise/pkg/types"
)

// components are the pipeline stages wired from one Config.
type components struct {
	cfg      types.Config
	engine   *pricing.Engine
	assessor *risk.Assessor
	catalog  *catalog.Catalog
	builder  *quote.Builder
	close    func() error
}

// clockFromFlags returns a fixed clock when --date is set, otherwise nil
// (wall clock).
func clockFromFlags(cmd *cobra.Command) (func() time.Time, error) {
	date, _ := cmd.Flags().GetString("date")
	if date == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, fmt.Errorf("invalid --date %q: use YYYY-MM-DD", date)
	}
	return func() time.Time { return t }, nil
}

// newComponents builds the engine and assessor, and the catalog and quote
// builder when withCatalog is set.
func newComponents(ctx context.Context, cmd *cobra.Command, withCatalog bool) (*components, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Lookup("catalog") != nil {
		if path, _ := cmd.Flags().GetString("catalog"); path != "" {
			cfg.Catalog.Path = path
		}
	}
	clock, err := clockFromFlags(cmd)
	if err != nil {
		return nil, err
	}

	c := &components{
		cfg:      cfg,
		engine:   pricing.NewEngine(cfg.Pricing, clock),
		assessor: risk.NewAssessor(cfg.Risk),
		close:    func() error { return nil },
	}
	if !withCatalog {
		return c, nil
	}

	src, closeFn, err := catalog.Open(ctx, cfg.Catalog, nil)
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	c.close = closeFn
	c.catalog = catalog.New(src, cfg.Catalog)
	c.builder = quote.NewBuilder(c.catalog, c.engine, c.assessor, clock)
	return c, nil
}

// readInput reads the named file, or stdin when name is "" or "-".
func readInput(cmd *cobra.Command, name string) ([]byte, error) {
	if name == "" || name == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return data, nil
}

// addClockFlag registers --date on cmd.
func addClockFlag(cmd *cobra.Command) {
	cmd.Flags().String("date", "", "evaluate seasonal rules as of this date (YYYY-MM-DD, default today)")
}
