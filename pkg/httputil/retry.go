package httputil

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"
)

// maxRetryAfter caps a server-requested wait so one slow phrase host cannot
// stall a banner request.
const maxRetryAfter = 30 * time.Second

// RetryableError marks a transient failure that [Retry] may attempt again.
// After, when positive, replaces the backoff delay for the next attempt.
type RetryableError struct {
	Err   error
	After time.Duration
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retry calls fn up to attempts times. Only errors wrapped in
// [RetryableError] are retried; the delay doubles after each failure unless
// the error asks for a specific wait. It returns the last error, or ctx.Err()
// if the context ends while waiting.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	attempts = max(attempts, 1)

	var err error
	for i := range attempts {
		if err = fn(); err == nil {
			return nil
		}
		var re *RetryableError
		if !errors.As(err, &re) {
			return err
		}
		if i == attempts-1 {
			break
		}

		wait := delay
		if re.After > 0 {
			wait = re.After
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}
	return err
}

// retryAfter parses a Retry-After header given in seconds. HTTP dates and
// malformed values yield zero.
func retryAfter(h http.Header) time.Duration {
	secs, err := strconv.Atoi(h.Get("Retry-After"))
	if err != nil || secs <= 0 {
		return 0
	}
	return min(time.Duration(secs)*time.Second, maxRetryAfter)
}
