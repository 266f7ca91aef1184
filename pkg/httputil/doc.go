// Package httputil provides HTTP utilities for talking to a gatestack
// server.
//
// # Retry
//
// [Retry] wraps HTTP requests with automatic retry for transient failures:
//
//   - Network errors
//   - 5xx server errors
//   - 429 rate limit responses
//
// It uses exponential backoff to avoid hammering a recovering server:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    resp, err := http.Get(url)
//	    ...
//	})
//
// Wrap transient failures in [RetryableError]; everything else returns
// immediately.
package httputil
