package embedding

import (
	"context"

	"golang.org/x/time/rate"
)

// Compile-time check.
var _ Provider = (*RateLimited)(nil)

// RateLimited throttles Embed calls to an upstream provider using a token
// bucket. Waiting honors ctx cancellation. Costs are charged per call, not
// per text, matching the one-logical-call-per-request contract.
type RateLimited struct {
	inner   Provider
	limiter *rate.Limiter
}

// WithRateLimit wraps a provider so that at most callsPerSec Embed calls per
// second are issued, with the given burst.
func WithRateLimit(inner Provider, callsPerSec float64, burst int) *RateLimited {
	if burst < 1 {
		burst = 1
	}
	return &RateLimited{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(callsPerSec), burst),
	}
}

// Embed implements Provider.
func (r *RateLimited) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return r.inner.Embed(ctx, texts)
}
