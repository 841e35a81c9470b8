// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/pdiddy/quotewise/pkg/types"
)

// Open builds the Source selected by cfg.Source, wrapped in a Cached with
// cfg.CacheTTL. The returned close func releases any database handle.
func Open(ctx context.Context, cfg types.CatalogConfig, now func() time.Time) (Source, func() error, error) {
	noop := func() error { return nil }

	var (
		src     Source
		closeFn = noop
	)
	switch cfg.Source {
	case types.SourceCSV, "":
		if cfg.Path == "" {
			return nil, noop, fmt.Errorf("csv catalog requires a path")
		}
		src = &CSVSource{Path: cfg.Path}
	case types.SourceSQLite:
		if cfg.Path == "" {
			return nil, noop, fmt.Errorf("sqlite catalog requires a path")
		}
		s, err := OpenSQLite(cfg.Path)
		if err != nil {
			return nil, noop, err
		}
		src, closeFn = s, s.Close
	case types.SourcePostgres:
		s, err := ConnectPostgres(ctx, cfg.DSN)
		if err != nil {
			return nil, noop, err
		}
		src, closeFn = s, s.Close
	case types.SourceHTTP:
		src = NewHTTPSource(nil, cfg.BaseURL, cfg.HTTPConfig)
	default:
		return nil, noop, fmt.Errorf("unsupported catalog source %q: use csv, sqlite, postgres, or http", cfg.Source)
	}
	return NewCached(src, cfg.CacheTTL, now), closeFn, nil
}
