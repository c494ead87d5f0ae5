// Package retry wraps a single logical operation in bounded exponential
// backoff with jitter.
//
// Only transient conditions should be retried; callers classify errors via
// the RetryIf option. HTTP status classification for remote backends lives
// in RetryableStatus.
package retry

import (
	"context"
	"math/rand"
	"net/http"
	"time"
)

// Options contains configuration options for retrying.
type Options struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int

	// InitialBackoff is the delay before the first retry.
	InitialBackoff time.Duration

	// MaxBackoff caps the delay between attempts.
	MaxBackoff time.Duration

	// Multiplier scales the backoff after each attempt.
	Multiplier float64

	// Jitter adds up to this fraction of the current backoff as random
	// spread, avoiding synchronized retry storms.
	Jitter float64

	// RetryIf decides whether an error is worth retrying.
	// If nil, every error is retried.
	RetryIf func(error) bool
}

// DefaultOptions contains the default configuration options for retrying.
var DefaultOptions = Options{
	MaxAttempts:    3,
	InitialBackoff: 100 * time.Millisecond,
	MaxBackoff:     5 * time.Second,
	Multiplier:     2.0,
	Jitter:         0.2,
}

// Do runs fn until it succeeds, the attempt budget is exhausted, or the
// error is classified as non-retryable. The last error is returned
// unwrapped so callers can inspect it with errors.Is/As.
//
// The delay between attempts honors ctx cancellation.
func Do(ctx context.Context, fn func(ctx context.Context) error, optFns ...func(o *Options)) error {
	opts := DefaultOptions
	for _, f := range optFns {
		f(&opts)
	}
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = 1
	}

	backoff := opts.InitialBackoff

	var err error
	for attempt := 0; attempt < opts.MaxAttempts; attempt++ {
		if attempt > 0 {
			delay := backoff
			if opts.Jitter > 0 {
				delay += time.Duration(rand.Float64() * opts.Jitter * float64(backoff)) // nolint gosec
			}

			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}

			backoff = time.Duration(float64(backoff) * opts.Multiplier)
			if opts.MaxBackoff > 0 && backoff > opts.MaxBackoff {
				backoff = opts.MaxBackoff
			}
		}

		err = fn(ctx)
		if err == nil {
			return nil
		}
		if opts.RetryIf != nil && !opts.RetryIf(err) {
			return err
		}
	}

	return err
}

// RetryableStatus reports whether an HTTP status code is a transient
// condition worth retrying.
func RetryableStatus(code int) bool {
	switch code {
	case http.StatusRequestTimeout, // 408
		http.StatusTooManyRequests,     // 429
		http.StatusInternalServerError, // 500
		http.StatusBadGateway,          // 502
		http.StatusServiceUnavailable,  // 503
		http.StatusGatewayTimeout:      // 504
		return true
	default:
		return false
	}
}
