package lock

import (
	"context"
	"time"
)

// NoopLocker implements Locker without any locking. Used in tests and in
// deployments that accept interleaved mutations.
type NoopLocker struct{}

// NewNoopLocker creates a new NoopLocker.
func NewNoopLocker() *NoopLocker {
	return &NoopLocker{}
}

// Acquire always succeeds.
func (NoopLocker) Acquire(_ context.Context, _ string, _ time.Duration) (bool, error) {
	return true, nil
}

// Release does nothing.
func (NoopLocker) Release(_ context.Context, _ string) error {
	return nil
}

// Ensure NoopLocker implements Locker
var _ Locker = (*NoopLocker)(nil)
