// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pdiddy/quotewise/internal/server"
	"github.com/pdiddy/quotewise/pkg/types"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the pricing, risk, quote, and catalog API over HTTP",
	Long: `Serve starts the HTTP API on server.addr (default :8080):

  GET  /healthz
  GET  /v1/rules
  POST /v1/price     batch of {product_json, quantity}
  POST /v1/risk      one priced line item
  POST /v1/quote     {"items": [{product_name, quantity}]}, ?format=md|yaml|json
  GET  /v1/products  ?name=... (repeatable)

It stops gracefully on SIGINT or SIGTERM.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := newComponents(ctx, cmd, true)
	if err != nil {
		return err
	}
	defer c.close()

	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = c.cfg.Server.Addr
	}

	srv := server.New(server.Deps{
		Engine:   c.engine,
		Assessor: c.assessor,
		Catalog:  c.catalog,
		Builder:  c.builder,
		Quote:    c.cfg.Quote,
		Version:  version,
		Log:      cmd.ErrOrStderr(),
	})
	fmt.Fprintf(cmd.ErrOrStderr(), "quotewise %s listening on %s (catalog: %s %s)\n",
		version, addr, c.cfg.Catalog.Source, catalogLocation(c))
	return srv.Run(ctx, addr)
}

func catalogLocation(c *components) string {
	switch c.cfg.Catalog.Source {
	case types.SourceHTTP:
		return c.cfg.Catalog.BaseURL
	case types.SourcePostgres:
		return "(dsn)"
	}
	return c.cfg.Catalog.Path
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from config: :8080)")
	serveCmd.Flags().String("catalog", "", "catalog CSV or database path (overrides config)")

	rootCmd.AddCommand(serveCmd)
}
