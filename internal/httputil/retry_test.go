// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	RetryBaseDelay = 1 * time.Millisecond
}

// sequenceServer replies with statuses in order, repeating the last one.
func sequenceServer(t *testing.T, statuses ...int) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		n := int(atomic.AddInt32(&calls, 1)) - 1
		if n >= len(statuses) {
			n = len(statuses) - 1
		}
		w.WriteHeader(statuses[n])
	}))
	t.Cleanup(ts.Close)
	return ts, &calls
}

func TestDoWithRetry(t *testing.T) {
	tests := []struct {
		name       string
		statuses   []int
		maxRetries int
		wantStatus int
		wantCalls  int32
	}{
		{name: "immediate success", statuses: []int{200}, maxRetries: 5, wantStatus: 200, wantCalls: 1},
		{name: "throttled then success", statuses: []int{429, 429, 200}, maxRetries: 5, wantStatus: 200, wantCalls: 3},
		{name: "gateway errors then success", statuses: []int{502, 503, 504, 200}, maxRetries: 5, wantStatus: 200, wantCalls: 4},
		{name: "exhausts retries", statuses: []int{429}, maxRetries: 2, wantStatus: 429, wantCalls: 3},
		{name: "default max retries", statuses: []int{503}, maxRetries: 0, wantStatus: 503, wantCalls: 4},
		{name: "server error passes through", statuses: []int{500}, maxRetries: 5, wantStatus: 500, wantCalls: 1},
		{name: "not found passes through", statuses: []int{404}, maxRetries: 5, wantStatus: 404, wantCalls: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, calls := sequenceServer(t, tt.statuses...)
			req, err := http.NewRequest(http.MethodGet, ts.URL, nil)
			require.NoError(t, err)

			resp, err := DoWithRetry(context.Background(), ts.Client(), req, tt.maxRetries)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantCalls, atomic.LoadInt32(calls))
		})
	}
}

func TestDoWithRetryContextCancelled(t *testing.T) {
	ts, _ := sequenceServer(t, http.StatusServiceUnavailable)

	old := RetryBaseDelay
	RetryBaseDelay = 500 * time.Millisecond
	defer func() { RetryBaseDelay = old }()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	req, err := http.NewRequest(http.MethodGet, ts.URL, nil)
	require.NoError(t, err)

	_, err = DoWithRetry(ctx, ts.Client(), req, 5)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRetryable(t *testing.T) {
	for status, want := range map[int]bool{200: false, 400: false, 429: true, 500: false, 502: true, 503: true, 504: true} {
		assert.Equal(t, want, Retryable(status), "status %d", status)
	}
}
