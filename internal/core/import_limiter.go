package core

// import_limiter.go bounds how many sponsor imports run at once.
//
// Each import row becomes one create call against Airtable, which throttles
// per base. A handful of parallel imports is enough to hit that ceiling, so
// imports queue for a slot and give up after a bounded wait.

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"
)

// ErrTooManyImports is returned when no import slot frees up in time.
var ErrTooManyImports = errors.New("too many concurrent imports, please try again later")

const (
	DefaultMaxConcurrentImports = 2
	DefaultMaxWaitTime          = 30 * time.Second
)

// ImportLimiter hands out import slots. Waiters are served in arrival order.
type ImportLimiter struct {
	slots   *semaphore.Weighted
	size    int64
	maxWait time.Duration
	running atomic.Int64
}

// NewImportLimiter allows maxConcurrent imports at a time, each waiting at
// most maxWait for its slot. Non-positive values fall back to the defaults.
func NewImportLimiter(maxConcurrent int, maxWait time.Duration) *ImportLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrentImports
	}
	if maxWait <= 0 {
		maxWait = DefaultMaxWaitTime
	}
	return &ImportLimiter{
		slots:   semaphore.NewWeighted(int64(maxConcurrent)),
		size:    int64(maxConcurrent),
		maxWait: maxWait,
	}
}

// Acquire waits for an import slot. A cancelled ctx returns ctx.Err();
// running out of wait time returns ErrTooManyImports. Every nil return must
// be paired with Release.
func (l *ImportLimiter) Acquire(ctx context.Context) error {
	waitCtx, cancel := context.WithTimeout(ctx, l.maxWait)
	defer cancel()

	if err := l.slots.Acquire(waitCtx, 1); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return ErrTooManyImports
	}
	l.running.Add(1)
	return nil
}

// TryAcquire takes a slot only if one is free right now.
func (l *ImportLimiter) TryAcquire() bool {
	if !l.slots.TryAcquire(1) {
		return false
	}
	l.running.Add(1)
	return true
}

// Release frees the slot of a finished import.
func (l *ImportLimiter) Release() {
	l.running.Add(-1)
	l.slots.Release(1)
}

// ActiveCount is the number of imports holding a slot.
func (l *ImportLimiter) ActiveCount() int {
	return int(l.running.Load())
}

// Capacity is the number of imports allowed at once.
func (l *ImportLimiter) Capacity() int {
	return int(l.size)
}

// WaitForDrain blocks until every running import has released its slot.
// Imports queued behind the drain start once it returns.
func (l *ImportLimiter) WaitForDrain(ctx context.Context) error {
	if err := l.slots.Acquire(ctx, l.size); err != nil {
		return err
	}
	l.slots.Release(l.size)
	return nil
}
