// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/quotewise/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the product catalog",
}

var catalogImportCmd = &cobra.Command{
	Use:   "import <inventory.csv>",
	Short: "Load an inventory CSV into a SQLite catalog",
	Long: `Import parses an inventory CSV and replaces the products table of the
SQLite catalog with its rows in one transaction. Point catalog.source at
sqlite and catalog.path at the database to quote from it.`,
	Args: cobra.ExactArgs(1),
	RunE: runCatalogImport,
}

func runCatalogImport(cmd *cobra.Command, args []string) error {
	dbPath, _ := cmd.Flags().GetString("db")

	store, err := catalog.OpenSQLite(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := store.ImportCSV(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d product(s) from %s into %s\n", n, args[0], dbPath)
	return nil
}

func init() {
	catalogImportCmd.Flags().String("db", "data/catalog.db", "SQLite catalog database path")

	catalogCmd.AddCommand(catalogImportCmd)
	rootCmd.AddCommand(catalogCmd)
}
