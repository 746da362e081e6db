// Package repository defines data access interfaces for Chronicle.
// These interfaces abstract database operations, allowing for different
// implementations (SQLite, PostgreSQL, mocks for testing) while keeping the
// service layer clean.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/prn-tf/chronicle/internal/domain"
)

// =============================================================================
// Entry Repository
// =============================================================================

// EntryRepository defines the interface for journal entry data access.
type EntryRepository interface {
	// Create persists a new entry, assigning its ID and, when unset, its
	// creation timestamp. The retroactive flag is stored exactly as the
	// caller computed it.
	Create(ctx context.Context, entry *domain.Entry) error

	// GetByID retrieves an entry by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Entry, error)

	// GetByDate retrieves the entry a user wrote for the given calendar
	// day. When the backing store holds several, the earliest-created one
	// is returned.
	GetByDate(ctx context.Context, userID uuid.UUID, day time.Time) (*domain.Entry, error)

	// ListByUser returns all entries for a user, in no guaranteed order;
	// callers re-sort as needed.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Entry, error)

	// Update fully replaces an entry by ID. The caller is responsible for
	// passing CreatedAt and IsRetroactive through from the original
	// record unchanged.
	Update(ctx context.Context, entry *domain.Entry) error

	// Delete removes an entry by ID. Returns ErrNotFound for a missing
	// id; callers that need idempotent deletes absorb that error.
	Delete(ctx context.Context, id uuid.UUID) error

	// CountByUser returns the number of entries for a user.
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

// =============================================================================
// Profile Repository
// =============================================================================

// ProfileRepository defines the interface for user profile data access.
type ProfileRepository interface {
	// Get retrieves the profile record for a user.
	Get(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)

	// Upsert creates or replaces the profile record for a user.
	Upsert(ctx context.Context, profile *domain.Profile) error
}

// =============================================================================
// Cache
// =============================================================================

// Cache defines the interface for caching operations, implemented in-memory
// for single-node runs and on Redis for distributed deployments.
type Cache interface {
	// Get retrieves a value by key.
	// Returns ErrCacheMiss if the key doesn't exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with an optional TTL.
	// If ttl is 0, the value doesn't expire.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value by key.
	Delete(ctx context.Context, key string) error

	// Exists checks if a key exists.
	Exists(ctx context.Context, key string) (bool, error)
}

// =============================================================================
// Distributed Lock
// =============================================================================

// DistributedLock defines the interface for cross-instance locking, used to
// keep mutations of a single entry from interleaving.
type DistributedLock interface {
	// Acquire attempts to acquire a lock. Returns true if the lock was
	// acquired, false if it's held elsewhere. The lock expires
	// automatically after ttl.
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Release releases a lock. Returns true if the lock was released,
	// false if it wasn't held.
	Release(ctx context.Context, key string) (bool, error)

	// IsHeld checks if the lock is currently held.
	IsHeld(ctx context.Context, key string) (bool, error)
}

// =============================================================================
// Common Keys
// =============================================================================

// CacheKey generates cache keys for common scenarios.
type CacheKey struct{}

// EntriesByUser returns the cache key for a user's full entry list.
func (CacheKey) EntriesByUser(userID uuid.UUID) string {
	return "cache:entries:" + userID.String()
}

// Profile returns the cache key for a user's profile record.
func (CacheKey) Profile(userID uuid.UUID) string {
	return "cache:profile:" + userID.String()
}

// LockKey generates lock keys for common scenarios.
type LockKey struct{}

// EntryEdit returns the lock key guarding mutations of a single entry.
func (LockKey) EntryEdit(entryID uuid.UUID) string {
	return "lock:entry:edit:" + entryID.String()
}
