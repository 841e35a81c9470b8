// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/pdiddy/quotewise/pkg/types"
)

// postgresQuery reads the same products table layout as the SQLite
// source. Numeric and JSON columns are cast to text so that both sources
// share one decoding path.
const postgresQuery = `SELECT product_name, category, sub_category, brand, size, color,
	factor_1, factor_2, factor_3, quantity_in_stock::bigint, reorder_level::bigint, stock_status,
	min_selling_price::text, max_selling_price::text, competitor_prices::text
	FROM products ORDER BY id`

// PostgresSource reads product records from a Postgres products table.
type PostgresSource struct {
	pool *pgxpool.Pool
}

// ConnectPostgres opens a connection pool for dsn and verifies it.
func ConnectPostgres(ctx context.Context, dsn string) (*PostgresSource, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres catalog requires a DSN")
	}
	pool, err := pgxpool.Connect(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}
	return &PostgresSource{pool: pool}, nil
}

// Close releases the pool.
func (s *PostgresSource) Close() error {
	s.pool.Close()
	return nil
}

// Products returns every row ordered by id.
func (s *PostgresSource) Products(ctx context.Context) ([]types.ProductRecord, error) {
	rows, err := s.pool.Query(ctx, postgresQuery)
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
