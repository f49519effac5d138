// Package httputil provides HTTP utilities for the diagram publishing client.
//
// # Retry
//
// [Retry] wraps HTTP requests with automatic retry for transient failures:
//
//   - Network errors
//   - 5xx server errors
//   - 429 rate limit responses
//
// Only errors wrapped with [RetryableError] are retried, so callers decide
// which failures are transient. [StatusRetryable] classifies response codes:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    resp, err := client.Do(req)
//	    if err != nil {
//	        return &httputil.RetryableError{Err: err}
//	    }
//	    defer resp.Body.Close()
//	    if httputil.StatusRetryable(resp.StatusCode) {
//	        return &httputil.RetryableError{Err: fmt.Errorf("status %d", resp.StatusCode)}
//	    }
//	    return nil
//	})
//
// # Configuration
//
// Defaults are suitable for most use cases: 3 attempts with a 1 second
// initial delay, doubling after each failed attempt.
package httputil
