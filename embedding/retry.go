package embedding

import (
	"context"

	"github.com/semvec/semvec/retry"
)

// Compile-time check.
var _ Provider = (*Retrying)(nil)

// Retrying retries Embed calls on transient and rate-limit failures with
// exponential backoff. Unauthorized and malformed-response errors are
// surfaced immediately.
type Retrying struct {
	inner  Provider
	optFns []func(o *retry.Options)
}

// WithRetry wraps a provider with bounded retries. The retry classification
// is fixed to Retryable; optFns tune attempts and backoff.
func WithRetry(inner Provider, optFns ...func(o *retry.Options)) *Retrying {
	return &Retrying{inner: inner, optFns: optFns}
}

// Embed implements Provider.
func (r *Retrying) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	var result [][]float32

	optFns := append(append([]func(o *retry.Options){}, r.optFns...), func(o *retry.Options) {
		o.RetryIf = Retryable
	})

	err := retry.Do(ctx, func(ctx context.Context) error {
		vectors, err := r.inner.Embed(ctx, texts)
		if err != nil {
			return err
		}
		result = vectors
		return nil
	}, optFns...)
	if err != nil {
		return nil, err
	}
	return result, nil
}
