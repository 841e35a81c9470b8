// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/quotewise/pkg/types"
)

// SQLiteSource reads product records from the products table of a SQLite
// database.
type SQLiteSource struct {
	db *sql.DB
}

// OpenSQLite opens or creates the catalog database at path and ensures the
// products table exists.
func OpenSQLite(path string) (*SQLiteSource, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating catalog directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	s := &SQLiteSource{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *SQLiteSource) Close() error {
	return s.db.Close()
}

func (s *SQLiteSource) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS products (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			product_name TEXT,
			category TEXT,
			sub_category TEXT,
			brand TEXT,
			size TEXT,
			color TEXT,
			factor_1 TEXT,
			factor_2 TEXT,
			factor_3 TEXT,
			quantity_in_stock INTEGER,
			reorder_level INTEGER,
			stock_status TEXT,
			min_selling_price TEXT,
			max_selling_price TEXT,
			competitor_prices TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_products_name ON products(lower(trim(product_name)))`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Products returns every row in insertion order.
func (s *SQLiteSource) Products(ctx context.Context) ([]types.ProductRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+productColumns+` FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	var products []types.ProductRecord
	for rows.Next() {
		var r productRow
		if err := rows.Scan(r.dests()...); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		p, err := r.record()
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// Replace swaps the table contents for products in one transaction.
func (s *SQLiteSource) Replace(ctx context.Context, products []types.ProductRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM products`); err != nil {
		return fmt.Errorf("clearing products: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO products (`+productColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range products {
		args, err := rowValues(p)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("inserting %s: %w", p.DisplayName(), err)
		}
	}
	return tx.Commit()
}

// ImportCSV replaces the products table with the rows of the CSV file at
// path and returns the number of rows imported.
func (s *SQLiteSource) ImportCSV(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening inventory %s: %w", path, err)
	}
	defer f.Close()

	products, err := ParseCSV(f)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := s.Replace(ctx, products); err != nil {
		return 0, err
	}
	return len(products), nil
}
