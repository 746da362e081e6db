package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/prn-tf/chronicle/internal/domain"
	"github.com/prn-tf/chronicle/internal/metrics"
)

// CachedEntryRepository decorates an EntryRepository with an explicit,
// caller-owned cache of each user's entry list. The cache object is injected
// at construction so its lifetime is visible at the call site, and it is
// invalidated on every mutating call. Cache failures never surface: reads
// fall through to the inner repository and writes proceed regardless.
type CachedEntryRepository struct {
	inner  EntryRepository
	cache  Cache
	ttl    time.Duration
	keys   CacheKey
	logger zerolog.Logger
}

// NewCachedEntryRepository wraps inner with a list cache. A ttl of 0 means
// cached lists only leave the cache through invalidation.
func NewCachedEntryRepository(inner EntryRepository, cache Cache, ttl time.Duration, logger zerolog.Logger) *CachedEntryRepository {
	return &CachedEntryRepository{
		inner:  inner,
		cache:  cache,
		ttl:    ttl,
		logger: logger.With().Str("component", "entry_cache").Logger(),
	}
}

// ListByUser returns the cached entry list when present, otherwise loads
// from the inner repository and populates the cache.
func (r *CachedEntryRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Entry, error) {
	key := r.keys.EntriesByUser(userID)

	if raw, err := r.cache.Get(ctx, key); err == nil {
		var entries []*domain.Entry
		if err := json.Unmarshal(raw, &entries); err == nil {
			metrics.RecordCacheLookup(true)
			return entries, nil
		}
		// Corrupt payload; drop it and reload.
		_ = r.cache.Delete(ctx, key)
	} else if !errors.Is(err, ErrCacheMiss) {
		r.logger.Debug().Err(err).Msg("cache read failed, falling through")
	}
	metrics.RecordCacheLookup(false)

	entries, err := r.inner.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(entries); err == nil {
		if err := r.cache.Set(ctx, key, raw, r.ttl); err != nil {
			r.logger.Debug().Err(err).Msg("cache write failed")
		}
	}
	return entries, nil
}

// Create persists through the inner repository and invalidates the user's
// cached list.
func (r *CachedEntryRepository) Create(ctx context.Context, entry *domain.Entry) error {
	if err := r.inner.Create(ctx, entry); err != nil {
		return err
	}
	r.invalidate(ctx, entry.UserID)
	return nil
}

// Update persists through the inner repository and invalidates the user's
// cached list.
func (r *CachedEntryRepository) Update(ctx context.Context, entry *domain.Entry) error {
	if err := r.inner.Update(ctx, entry); err != nil {
		return err
	}
	r.invalidate(ctx, entry.UserID)
	return nil
}

// Delete removes the entry and invalidates the owner's cached list. The
// owner is looked up first because the delete contract only carries the id.
func (r *CachedEntryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	entry, err := r.inner.GetByID(ctx, id)
	if err != nil && !errors.Is(err, ErrNotFound) && !errors.Is(err, domain.ErrEntryNotFound) {
		return err
	}

	if err := r.inner.Delete(ctx, id); err != nil {
		return err
	}
	if entry != nil {
		r.invalidate(ctx, entry.UserID)
	}
	return nil
}

// GetByID passes through to the inner repository.
func (r *CachedEntryRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Entry, error) {
	return r.inner.GetByID(ctx, id)
}

// GetByDate passes through to the inner repository.
func (r *CachedEntryRepository) GetByDate(ctx context.Context, userID uuid.UUID, day time.Time) (*domain.Entry, error) {
	return r.inner.GetByDate(ctx, userID, day)
}

// CountByUser passes through to the inner repository.
func (r *CachedEntryRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	return r.inner.CountByUser(ctx, userID)
}

func (r *CachedEntryRepository) invalidate(ctx context.Context, userID uuid.UUID) {
	if err := r.cache.Delete(ctx, r.keys.EntriesByUser(userID)); err != nil {
		r.logger.Debug().Err(err).Str("user_id", userID.String()).Msg("cache invalidation failed")
	}
}

// Ensure CachedEntryRepository implements EntryRepository
var _ EntryRepository = (*CachedEntryRepository)(nil)
