package lock

import (
	"context"
	"time"

	"github.com/prn-tf/chronicle/internal/repository"
)

// RedisLocker implements Locker on top of repository.DistributedLock,
// extending the per-entry mutation guarantee across server instances.
type RedisLocker struct {
	distributedLock repository.DistributedLock
}

// NewRedisLocker creates a new RedisLocker wrapping a DistributedLock
// implementation.
func NewRedisLocker(dl repository.DistributedLock) *RedisLocker {
	return &RedisLocker{distributedLock: dl}
}

// Acquire attempts to acquire a lock.
func (l *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return l.distributedLock.Acquire(ctx, key, ttl)
}

// Release releases a lock.
func (l *RedisLocker) Release(ctx context.Context, key string) error {
	_, err := l.distributedLock.Release(ctx, key)
	return err
}

// Ensure RedisLocker implements Locker
var _ Locker = (*RedisLocker)(nil)
