package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/prn-tf/chronicle/internal/domain"
	"github.com/prn-tf/chronicle/internal/metrics"
	"github.com/prn-tf/chronicle/internal/repository"
	"github.com/prn-tf/chronicle/internal/search"
	"github.com/prn-tf/chronicle/internal/stats"
)

// StatsService computes derived statistics and serves entry search.
// Both are read paths: repository failures degrade to empty results so the
// profile and search views can always render.
type StatsService struct {
	entryRepo repository.EntryRepository
	sorter    *search.Sorter
	logger    zerolog.Logger

	now func() time.Time
}

// NewStatsService creates a new StatsService.
func NewStatsService(entryRepo repository.EntryRepository, sorter *search.Sorter, logger zerolog.Logger) *StatsService {
	return &StatsService{
		entryRepo: entryRepo,
		sorter:    sorter,
		logger:    logger.With().Str("service", "stats").Logger(),
		now:       time.Now,
	}
}

// SearchEntriesInput contains the data needed to search and sort entries.
type SearchEntriesInput struct {
	UserID    uuid.UUID
	Query     string
	SortBy    search.Criteria
	Ascending bool
}

// GetStats computes the user's statistics from their full entry set.
func (s *StatsService) GetStats(ctx context.Context, userID uuid.UUID) *domain.Stats {
	start := time.Now()
	defer func() {
		metrics.StatsComputeDuration.Observe(time.Since(start).Seconds())
	}()

	entries, err := s.entryRepo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to list entries for stats")
		entries = nil
	}

	return stats.Compute(entries, s.now())
}

// SearchEntries filters the user's entries by free-text query and sorts the
// result. Locked entries never appear in search results.
func (s *StatsService) SearchEntries(ctx context.Context, input SearchEntriesInput) []*domain.Entry {
	entries, err := s.entryRepo.ListByUser(ctx, input.UserID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", input.UserID.String()).Msg("failed to list entries for search")
		return []*domain.Entry{}
	}

	matched := search.Search(entries, input.Query)
	return s.sorter.Sort(matched, input.SortBy, input.Ascending)
}
