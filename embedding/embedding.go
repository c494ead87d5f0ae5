// Package embedding defines the provider contract the store uses to turn
// text into vectors, plus decorators for rate limiting and retries.
//
// The store issues exactly one Embed call per save or semantic fetch; a
// provider that enforces its own request-size caps must be fronted by caller
// side batching.
package embedding

import (
	"context"
	"errors"
	"fmt"
)

// Provider converts text to embedding vectors.
//
// Embed returns one vector per input text, in input order. Implementations
// may block on network I/O and must honor ctx cancellation.
type Provider interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

var (
	// ErrUnauthorized indicates the provider rejected the configured
	// credential. Never retried.
	ErrUnauthorized = errors.New("embedding: unauthorized")

	// ErrRateLimited indicates the provider throttled the request.
	// Safe to retry with backoff.
	ErrRateLimited = errors.New("embedding: rate limited")
)

// TransientError wraps a temporary failure (timeout, connection reset).
// Safe to retry with backoff.
type TransientError struct {
	Cause error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("embedding: transient failure: %v", e.Cause)
}

func (e *TransientError) Unwrap() error { return e.Cause }

// MalformedError indicates the provider returned a response that could not
// be interpreted. Never retried.
type MalformedError struct {
	Detail string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("embedding: malformed response: %s", e.Detail)
}

// Retryable reports whether a provider error belongs to the retryable
// classes (rate limited or transient).
func Retryable(err error) bool {
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	var te *TransientError
	return errors.As(err, &te)
}
