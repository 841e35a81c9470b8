// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/pdiddy/quotewise/internal/httputil"
	"github.com/pdiddy/quotewise/pkg/types"
)

// HTTPSource fetches product records from a remote catalog service that
// serves a JSON array of records at GET {BaseURL}/products.
type HTTPSource struct {
	client  *http.Client
	baseURL string
	cfg     types.HTTPConfig
}

// NewHTTPSource creates a remote source. A nil client gets one with
// cfg.Timeout.
func NewHTTPSource(client *http.Client, baseURL string, cfg types.HTTPConfig) *HTTPSource {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &HTTPSource{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		cfg:     cfg,
	}
}

// Products fetches the full record list, retrying on throttling and
// transient gateway errors.
func (s *HTTPSource) Products(ctx context.Context) ([]types.ProductRecord, error) {
	if s.baseURL == "" {
		return nil, fmt.Errorf("http catalog requires a base URL")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/products", nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if s.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", s.cfg.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, s.client, req, s.cfg.MaxRetries)
	if err != nil {
		return nil, fmt.Errorf("fetching products: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("catalog returned HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var products []types.ProductRecord
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("decoding products: %w", err)
	}
	return products, nil
}
