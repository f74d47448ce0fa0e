// Package httputil provides HTTP helpers for fetching remote banner inputs.
//
// # Overview
//
//   - [Retry]: Automatic retry with exponential backoff
//   - [Fetcher]: Size-limited GET that classifies transient failures
//
// # Retry
//
// [Retry] re-runs an operation only when its error is wrapped in
// [RetryableError]. [Fetcher.Get] wraps network errors, 5xx responses and
// 429 rate limits that way, so a flaky phrase server is retried while a
// 404 fails immediately. A 429 with a Retry-After header in seconds waits
// that long (at most 30s) instead of the backoff delay:
//
//	f := httputil.NewFetcher(nil)
//	data, err := f.Get(ctx, "https://example.com/phrases.json")
//
// # Configuration
//
// Defaults are 3 attempts, 1 second initial backoff (doubling), 10 second
// client timeout and a 1 MiB response limit.
package httputil
