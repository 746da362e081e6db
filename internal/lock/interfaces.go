// Package lock provides the per-entry operation locking used to keep two
// mutations of the same journal entry from running at once.
package lock

import (
	"context"
	"time"
)

// Locker is the locking abstraction consumed by the entry service. The
// memory implementation covers single-node runs; the redis implementation
// extends the guarantee across instances.
type Locker interface {
	// Acquire attempts to acquire the named lock. Returns true on
	// success, false when the lock is held elsewhere. The lock expires
	// after ttl as a crash backstop.
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Release releases the named lock.
	Release(ctx context.Context, key string) error
}
