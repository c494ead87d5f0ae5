package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastBackoff(o *Options) {
	o.InitialBackoff = time.Millisecond
	o.MaxBackoff = 2 * time.Millisecond
}

func TestDoSucceedsAfterTransientFailures(t *testing.T) {
	attempts := 0
	err := Do(context.Background(), func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return errors.New("transient")
		}
		return nil
	}, fastBackoff)

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestDoExhaustsAttempts(t *testing.T) {
	boom := errors.New("boom")
	attempts := 0

	err := Do(context.Background(), func(ctx context.Context) error {
		attempts++
		return boom
	}, fastBackoff, func(o *Options) { o.MaxAttempts = 4 })

	require.ErrorIs(t, err, boom)
	assert.Equal(t, 4, attempts)
}

func TestDoStopsOnNonRetryable(t *testing.T) {
	fatal := errors.New("fatal")
	attempts := 0

	err := Do(context.Background(), func(ctx context.Context) error {
		attempts++
		return fatal
	}, fastBackoff, func(o *Options) {
		o.RetryIf = func(err error) bool { return !errors.Is(err, fatal) }
	})

	require.ErrorIs(t, err, fatal)
	assert.Equal(t, 1, attempts)
}

func TestDoHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	attempts := 0
	err := Do(ctx, func(ctx context.Context) error {
		attempts++
		cancel()
		return errors.New("transient")
	}, func(o *Options) {
		o.InitialBackoff = time.Minute // would hang without cancellation
	})

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, attempts)
}

func TestRetryableStatus(t *testing.T) {
	tests := []struct {
		code      int
		retryable bool
	}{
		{408, true},
		{429, true},
		{500, true},
		{502, true},
		{503, true},
		{504, true},
		{200, false},
		{400, false},
		{401, false},
		{404, false},
		{422, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.retryable, RetryableStatus(tt.code), "status %d", tt.code)
	}
}
