package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/prn-tf/chronicle/internal/config"
	"github.com/prn-tf/chronicle/internal/domain"
	"github.com/prn-tf/chronicle/internal/repository"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := NewDB(context.Background(), config.DatabaseConfig{
		Driver:          "sqlite",
		Path:            filepath.Join(t.TempDir(), "test.db"),
		JournalMode:     "WAL",
		BusyTimeout:     5000,
		SynchronousMode: "NORMAL",
	}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return db
}

func newTestEntry(userID uuid.UUID, day time.Time) *domain.Entry {
	entry := domain.NewEntry(userID, "a walk", "went up the hill", day, time.Now())
	entry.Images = []string{"ref-one", "ref-two"}
	return entry
}

func TestEntryRepository_CreateAndGet(t *testing.T) {
	repo := NewEntryRepository(newTestDB(t))
	ctx := context.Background()
	userID := uuid.New()

	entry := newTestEntry(userID, time.Now())
	require.NoError(t, repo.Create(ctx, entry))
	require.NotEqual(t, uuid.Nil, entry.ID)

	got, err := repo.GetByID(ctx, entry.ID)
	require.NoError(t, err)
	require.Equal(t, entry.ID, got.ID)
	require.Equal(t, entry.UserID, got.UserID)
	require.Equal(t, "a walk", got.Title)
	require.Equal(t, []string{"ref-one", "ref-two"}, got.Images)
	require.Equal(t, domain.DayKey(entry.Date), domain.DayKey(got.Date))
	require.False(t, got.IsRetroactive)
}

func TestEntryRepository_GetByIDNotFound(t *testing.T) {
	repo := NewEntryRepository(newTestDB(t))

	_, err := repo.GetByID(context.Background(), uuid.New())
	require.ErrorIs(t, err, domain.ErrEntryNotFound)
}

func TestEntryRepository_GetByDate(t *testing.T) {
	repo := NewEntryRepository(newTestDB(t))
	ctx := context.Background()
	userID := uuid.New()
	day := time.Now()

	// Two entries on the same day; the earlier-created one wins.
	first := newTestEntry(userID, day)
	first.Title = "morning"
	first.CreatedAt = day.Add(-3 * time.Hour)
	first.UpdatedAt = first.CreatedAt
	require.NoError(t, repo.Create(ctx, first))

	second := newTestEntry(userID, day)
	second.Title = "evening"
	require.NoError(t, repo.Create(ctx, second))

	got, err := repo.GetByDate(ctx, userID, day)
	require.NoError(t, err)
	require.Equal(t, "morning", got.Title)

	_, err = repo.GetByDate(ctx, userID, day.AddDate(0, 0, -7))
	require.ErrorIs(t, err, domain.ErrEntryNotFound)
}

func TestEntryRepository_ListByUser(t *testing.T) {
	repo := NewEntryRepository(newTestDB(t))
	ctx := context.Background()
	userID := uuid.New()
	now := time.Now()

	older := newTestEntry(userID, now.AddDate(0, 0, -2))
	older.Title = "older"
	require.NoError(t, repo.Create(ctx, older))

	newer := newTestEntry(userID, now)
	newer.Title = "newer"
	require.NoError(t, repo.Create(ctx, newer))

	// Another user's entry never shows up.
	require.NoError(t, repo.Create(ctx, newTestEntry(uuid.New(), now)))

	entries, err := repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "newer", entries[0].Title)
	require.Equal(t, "older", entries[1].Title)
}

func TestEntryRepository_Update(t *testing.T) {
	repo := NewEntryRepository(newTestDB(t))
	ctx := context.Background()
	userID := uuid.New()

	entry := newTestEntry(userID, time.Now())
	require.NoError(t, repo.Create(ctx, entry))

	updated := entry.Clone()
	updated.Title = "renamed"
	updated.Images = []string{"ref-three"}
	updated.IsFavorite = true
	require.NoError(t, repo.Update(ctx, updated))

	got, err := repo.GetByID(ctx, entry.ID)
	require.NoError(t, err)
	require.Equal(t, "renamed", got.Title)
	require.Equal(t, []string{"ref-three"}, got.Images)
	require.True(t, got.IsFavorite)

	missing := newTestEntry(userID, time.Now())
	missing.ID = uuid.New()
	require.ErrorIs(t, repo.Update(ctx, missing), repository.ErrNotFound)
}

func TestEntryRepository_Delete(t *testing.T) {
	repo := NewEntryRepository(newTestDB(t))
	ctx := context.Background()

	entry := newTestEntry(uuid.New(), time.Now())
	require.NoError(t, repo.Create(ctx, entry))

	require.NoError(t, repo.Delete(ctx, entry.ID))
	_, err := repo.GetByID(ctx, entry.ID)
	require.ErrorIs(t, err, domain.ErrEntryNotFound)

	require.ErrorIs(t, repo.Delete(ctx, entry.ID), repository.ErrNotFound)
}

func TestEntryRepository_CountByUser(t *testing.T) {
	repo := NewEntryRepository(newTestDB(t))
	ctx := context.Background()
	userID := uuid.New()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, newTestEntry(userID, time.Now().AddDate(0, 0, -i))))
	}

	count, err := repo.CountByUser(ctx, userID)
	require.NoError(t, err)
	require.EqualValues(t, 3, count)
}

func TestProfileRepository_Roundtrip(t *testing.T) {
	repo := NewProfileRepository(newTestDB(t))
	ctx := context.Background()
	userID := uuid.New()

	_, err := repo.Get(ctx, userID)
	require.ErrorIs(t, err, domain.ErrProfileNotFound)

	picture := "ab12cd34"
	require.NoError(t, repo.Upsert(ctx, &domain.Profile{
		UserID:         userID,
		Username:       "margot",
		ProfilePicture: &picture,
		UpdatedAt:      time.Now(),
	}))

	got, err := repo.Get(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, "margot", got.Username)
	require.NotNil(t, got.ProfilePicture)
	require.Equal(t, picture, *got.ProfilePicture)

	// Upsert replaces in place.
	require.NoError(t, repo.Upsert(ctx, &domain.Profile{
		UserID:    userID,
		Username:  "margaux",
		UpdatedAt: time.Now(),
	}))
	got, err = repo.Get(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, "margaux", got.Username)
	require.Nil(t, got.ProfilePicture)
}
