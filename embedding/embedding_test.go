package embedding

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semvec/semvec/retry"
)

func TestMockDeterministic(t *testing.T) {
	ctx := context.Background()
	m := NewMock(64)

	first, err := m.Embed(ctx, []string{"hello", "world", "hello"})
	require.NoError(t, err)
	require.Len(t, first, 3)

	for _, v := range first {
		assert.Len(t, v, 64)
	}

	// Equal texts embed identically, across and within calls.
	assert.Equal(t, first[0], first[2])
	second, err := m.Embed(ctx, []string{"hello"})
	require.NoError(t, err)
	assert.Equal(t, first[0], second[0])

	// Different texts diverge.
	assert.NotEqual(t, first[0], first[1])
}

func TestMockUnitNorm(t *testing.T) {
	m := NewMock(32)
	vs, err := m.Embed(context.Background(), []string{"some text"})
	require.NoError(t, err)

	var norm float64
	for _, x := range vs[0] {
		norm += float64(x) * float64(x)
	}
	assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-4)
}

func TestMockHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMock(8).Embed(ctx, []string{"x"})
	require.ErrorIs(t, err, context.Canceled)
}

func TestRetryable(t *testing.T) {
	assert.True(t, Retryable(ErrRateLimited))
	assert.True(t, Retryable(&TransientError{Cause: errors.New("timeout")}))
	assert.True(t, Retryable(fmt.Errorf("call failed: %w", ErrRateLimited)))
	assert.False(t, Retryable(ErrUnauthorized))
	assert.False(t, Retryable(&MalformedError{Detail: "truncated body"}))
	assert.False(t, Retryable(errors.New("other")))
}

type scriptedProvider struct {
	errs  []error
	calls int
}

func (p *scriptedProvider) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	p.calls++
	if len(p.errs) > 0 {
		err := p.errs[0]
		p.errs = p.errs[1:]
		if err != nil {
			return nil, err
		}
	}
	out := make([][]float32, len(texts))
	for i := range out {
		out[i] = []float32{1}
	}
	return out, nil
}

func TestRetryingRecoversFromTransient(t *testing.T) {
	inner := &scriptedProvider{errs: []error{
		&TransientError{Cause: errors.New("connection reset")},
		ErrRateLimited,
		nil,
	}}

	p := WithRetry(inner, func(o *retry.Options) {
		o.InitialBackoff = time.Millisecond
		o.MaxAttempts = 5
	})

	vs, err := p.Embed(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	assert.Len(t, vs, 2)
	assert.Equal(t, 3, inner.calls)
}

func TestRetryingDoesNotRetryUnauthorized(t *testing.T) {
	inner := &scriptedProvider{errs: []error{ErrUnauthorized}}

	p := WithRetry(inner, func(o *retry.Options) {
		o.InitialBackoff = time.Millisecond
	})

	_, err := p.Embed(context.Background(), []string{"a"})
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, 1, inner.calls)
}

func TestRateLimitedPassThrough(t *testing.T) {
	inner := &scriptedProvider{}
	p := WithRateLimit(inner, 1000, 1)

	vs, err := p.Embed(context.Background(), []string{"a"})
	require.NoError(t, err)
	assert.Len(t, vs, 1)
	assert.Equal(t, 1, inner.calls)
}

func TestRateLimitedHonorsContext(t *testing.T) {
	inner := &scriptedProvider{}
	// Zero rate: the second wait can never be satisfied.
	p := WithRateLimit(inner, 0, 1)

	_, err := p.Embed(context.Background(), []string{"a"})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = p.Embed(ctx, []string{"b"})
	require.Error(t, err)
	assert.Equal(t, 1, inner.calls)
}
