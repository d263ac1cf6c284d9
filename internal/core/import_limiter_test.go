package core

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportLimiter_AcquireRelease(t *testing.T) {
	limiter := NewImportLimiter(2, time.Second)
	ctx := context.Background()

	require.NoError(t, limiter.Acquire(ctx))
	require.NoError(t, limiter.Acquire(ctx))
	assert.Equal(t, 2, limiter.ActiveCount())
	assert.False(t, limiter.TryAcquire(), "third import should not get a slot")

	limiter.Release()
	assert.Equal(t, 1, limiter.ActiveCount())
	assert.True(t, limiter.TryAcquire())

	limiter.Release()
	limiter.Release()
	assert.Equal(t, 0, limiter.ActiveCount())
}

func TestImportLimiter_AcquireErrors(t *testing.T) {
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name    string
		maxWait time.Duration
		ctx     context.Context
		want    error
	}{
		{name: "slot never frees", maxWait: 20 * time.Millisecond, ctx: context.Background(), want: ErrTooManyImports},
		{name: "request gone", maxWait: time.Minute, ctx: cancelled, want: context.Canceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limiter := NewImportLimiter(1, tt.maxWait)
			require.True(t, limiter.TryAcquire())
			defer limiter.Release()

			assert.ErrorIs(t, limiter.Acquire(tt.ctx), tt.want)
			assert.Equal(t, 1, limiter.ActiveCount())
		})
	}
}

func TestImportLimiter_WaiterGetsFreedSlot(t *testing.T) {
	limiter := NewImportLimiter(1, time.Second)
	require.True(t, limiter.TryAcquire())

	go func() {
		time.Sleep(20 * time.Millisecond)
		limiter.Release()
	}()

	require.NoError(t, limiter.Acquire(context.Background()))
	limiter.Release()
}

func TestImportLimiter_Defaults(t *testing.T) {
	limiter := NewImportLimiter(0, 0)
	assert.Equal(t, DefaultMaxConcurrentImports, limiter.Capacity())
	assert.Equal(t, DefaultMaxWaitTime, limiter.maxWait)
}

func TestImportLimiter_WaitForDrain(t *testing.T) {
	limiter := NewImportLimiter(3, time.Second)

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		require.True(t, limiter.TryAcquire())
		wg.Add(1)
		go func() {
			defer wg.Done()
			time.Sleep(30 * time.Millisecond)
			limiter.Release()
		}()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	require.NoError(t, limiter.WaitForDrain(ctx))
	assert.Equal(t, 0, limiter.ActiveCount())
	assert.True(t, limiter.TryAcquire(), "slots are usable again after a drain")
	limiter.Release()
	wg.Wait()
}

func TestImportLimiter_WaitForDrainTimesOut(t *testing.T) {
	limiter := NewImportLimiter(1, time.Second)
	require.True(t, limiter.TryAcquire())
	defer limiter.Release()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, limiter.WaitForDrain(ctx), context.DeadlineExceeded)
}
