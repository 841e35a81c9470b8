// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/pdiddy/quotewise/pkg/types"
)

// Cached wraps a Source and reuses its records for TTL. Concurrent callers
// share one load.
type Cached struct {
	src Source
	ttl time.Duration
	now func() time.Time

	mu       sync.Mutex
	products []types.ProductRecord
	loadedAt time.Time
	loaded   bool
}

// NewCached wraps src. A non-positive ttl disables caching; now defaults
// to time.Now.
func NewCached(src Source, ttl time.Duration, now func() time.Time) *Cached {
	if now == nil {
		now = time.Now
	}
	return &Cached{src: src, ttl: ttl, now: now}
}

// Products returns the cached records, reloading when they have expired.
// A failed reload leaves the previous records in place for the next call.
func (c *Cached) Products(ctx context.Context) ([]types.ProductRecord, error) {
	if c.ttl <= 0 {
		return c.src.Products(ctx)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded && c.now().Sub(c.loadedAt) < c.ttl {
		return c.products, nil
	}
	products, err := c.src.Products(ctx)
	if err != nil {
		return nil, err
	}
	c.products = products
	c.loadedAt = c.now()
	c.loaded = true
	return products, nil
}

// Invalidate drops the cached records.
func (c *Cached) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products = nil
	c.loaded = false
}
