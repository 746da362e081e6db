package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/prn-tf/chronicle/internal/domain"
	"github.com/prn-tf/chronicle/internal/lock"
	"github.com/prn-tf/chronicle/internal/repository"
)

// MockEntryRepository is an in-memory implementation of
// repository.EntryRepository with call counting and injectable errors.
type MockEntryRepository struct {
	entries map[uuid.UUID]*domain.Entry

	createCalls int
	updateCalls int
	deleteCalls int

	createErr error
	getErr    error
	updateErr error
	deleteErr error
	listErr   error
}

func NewMockEntryRepository() *MockEntryRepository {
	return &MockEntryRepository{entries: make(map[uuid.UUID]*domain.Entry)}
}

func (m *MockEntryRepository) Create(ctx context.Context, entry *domain.Entry) error {
	m.createCalls++
	if m.createErr != nil {
		return m.createErr
	}
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	m.entries[entry.ID] = entry.Clone()
	return nil
}

func (m *MockEntryRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Entry, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	e, ok := m.entries[id]
	if !ok {
		return nil, domain.ErrEntryNotFound
	}
	return e.Clone(), nil
}

func (m *MockEntryRepository) GetByDate(ctx context.Context, userID uuid.UUID, day time.Time) (*domain.Entry, error) {
	var best *domain.Entry
	for _, e := range m.entries {
		if e.UserID != userID || !domain.SameDay(e.Date, day) {
			continue
		}
		if best == nil || e.CreatedAt.Before(best.CreatedAt) {
			best = e
		}
	}
	if best == nil {
		return nil, domain.ErrEntryNotFound
	}
	return best.Clone(), nil
}

func (m *MockEntryRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Entry, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []*domain.Entry
	for _, e := range m.entries {
		if e.UserID == userID {
			out = append(out, e.Clone())
		}
	}
	return out, nil
}

func (m *MockEntryRepository) Update(ctx context.Context, entry *domain.Entry) error {
	m.updateCalls++
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, ok := m.entries[entry.ID]; !ok {
		return repository.ErrNotFound
	}
	m.entries[entry.ID] = entry.Clone()
	return nil
}

func (m *MockEntryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	m.deleteCalls++
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.entries[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.entries, id)
	return nil
}

func (m *MockEntryRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	for _, e := range m.entries {
		if e.UserID == userID {
			n++
		}
	}
	return n, nil
}

// deniedLocker always reports the lock as held elsewhere.
type deniedLocker struct{}

func (deniedLocker) Acquire(context.Context, string, time.Duration) (bool, error) { return false, nil }
func (deniedLocker) Release(context.Context, string) error                        { return nil }

var _ lock.Locker = deniedLocker{}

// =============================================================================
// Tests
// =============================================================================

var serviceNow = time.Date(2025, 6, 10, 15, 0, 0, 0, time.Local)

func newTestService(repo repository.EntryRepository) *EntryService {
	svc := NewEntryService(repo, lock.NewNoopLocker(), "test-salt", zerolog.Nop())
	svc.now = func() time.Time { return serviceNow }
	return svc
}

func seedEntry(repo *MockEntryRepository, userID uuid.UUID, daysAgo int) *domain.Entry {
	date := domain.StartOfDay(serviceNow).AddDate(0, 0, -daysAgo)
	entry := domain.NewEntry(userID, "seed title", "seed content", date, serviceNow)
	entry.ID = uuid.New()
	repo.entries[entry.ID] = entry
	return entry
}

func TestEntryService_CreateEntry(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name            string
		input           CreateEntryInput
		wantRetroactive bool
		wantImages      []string
		wantErr         error
	}{
		{
			name: "entry dated today",
			input: CreateEntryInput{
				UserID:  userID,
				Title:   "today",
				Content: "words",
				Date:    serviceNow,
			},
			wantRetroactive: false,
			wantImages:      []string{},
		},
		{
			name: "entry dated in the past is retroactive",
			input: CreateEntryInput{
				UserID: userID,
				Title:  "backfill",
				Date:   serviceNow.AddDate(0, 0, -2),
			},
			wantRetroactive: true,
			wantImages:      []string{},
		},
		{
			name: "covers promoted to the front",
			input: CreateEntryInput{
				UserID: userID,
				Date:   serviceNow,
				Images: []string{"a", "b", "c"},
				Covers: domain.CoverSet{2},
			},
			wantImages: []string{"c", "a", "b"},
		},
		{
			name: "more than four covers rejected",
			input: CreateEntryInput{
				UserID: userID,
				Date:   serviceNow,
				Images: []string{"a", "b", "c", "d", "e", "f"},
				Covers: domain.CoverSet{0, 1, 2, 3, 4, 5},
			},
			wantErr: domain.ErrCoverLimitExceeded,
		},
		{
			name: "cover index beyond the image list rejected",
			input: CreateEntryInput{
				UserID: userID,
				Date:   serviceNow,
				Images: []string{"a", "b"},
				Covers: domain.CoverSet{3},
			},
			wantErr: domain.ErrCoverIndexOutOfRange,
		},
		{
			name:    "missing date rejected",
			input:   CreateEntryInput{UserID: userID, Title: "no date"},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewMockEntryRepository()
			svc := newTestService(repo)

			entry, err := svc.CreateEntry(context.Background(), tt.input)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.Zero(t, repo.createCalls)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.wantRetroactive, entry.IsRetroactive)
			require.Equal(t, tt.wantImages, entry.Images)
			require.Equal(t, serviceNow, entry.CreatedAt)
		})
	}
}

func TestEntryService_UpdateEntry(t *testing.T) {
	userID := uuid.New()

	t.Run("entry from today is editable", func(t *testing.T) {
		repo := NewMockEntryRepository()
		svc := newTestService(repo)
		existing := seedEntry(repo, userID, 0)

		updated, err := svc.UpdateEntry(context.Background(), UpdateEntryInput{
			ID:      existing.ID,
			UserID:  userID,
			Title:   "new title",
			Content: "new content",
		})

		require.NoError(t, err)
		require.Equal(t, "new title", updated.Title)
		require.Equal(t, existing.CreatedAt, updated.CreatedAt)
		require.Equal(t, existing.IsRetroactive, updated.IsRetroactive)
		require.Equal(t, 1, repo.updateCalls)
	})

	t.Run("closed edit window rejected before any repository write", func(t *testing.T) {
		repo := NewMockEntryRepository()
		svc := newTestService(repo)
		existing := seedEntry(repo, userID, 1)

		_, err := svc.UpdateEntry(context.Background(), UpdateEntryInput{
			ID:     existing.ID,
			UserID: userID,
			Title:  "must not land",
		})

		require.ErrorIs(t, err, domain.ErrEditWindowClosed)
		require.Zero(t, repo.updateCalls)
		require.Equal(t, "seed title", repo.entries[existing.ID].Title)
	})

	t.Run("retroactive flag survives an edit", func(t *testing.T) {
		repo := NewMockEntryRepository()
		svc := newTestService(repo)

		// Created today but dated today, then made retroactive by hand to
		// verify the flag is carried through verbatim.
		existing := seedEntry(repo, userID, 0)
		existing.IsRetroactive = true
		repo.entries[existing.ID] = existing

		updated, err := svc.UpdateEntry(context.Background(), UpdateEntryInput{
			ID:     existing.ID,
			UserID: userID,
			Title:  "edited",
		})

		require.NoError(t, err)
		require.True(t, updated.IsRetroactive)
	})

	t.Run("other user's entry reads as not found", func(t *testing.T) {
		repo := NewMockEntryRepository()
		svc := newTestService(repo)
		existing := seedEntry(repo, userID, 0)

		_, err := svc.UpdateEntry(context.Background(), UpdateEntryInput{
			ID:     existing.ID,
			UserID: uuid.New(),
			Title:  "hijack",
		})

		require.ErrorIs(t, err, domain.ErrEntryNotFound)
		require.Zero(t, repo.updateCalls)
	})

	t.Run("oversized cover set rejected before any repository write", func(t *testing.T) {
		repo := NewMockEntryRepository()
		svc := newTestService(repo)
		existing := seedEntry(repo, userID, 0)

		_, err := svc.UpdateEntry(context.Background(), UpdateEntryInput{
			ID:     existing.ID,
			UserID: userID,
			Images: []string{"a", "b", "c", "d", "e"},
			Covers: domain.CoverSet{0, 1, 2, 3, 4},
		})

		require.ErrorIs(t, err, domain.ErrCoverLimitExceeded)
		require.Zero(t, repo.updateCalls)
	})

	t.Run("held lock reports busy", func(t *testing.T) {
		repo := NewMockEntryRepository()
		existing := seedEntry(repo, userID, 0)

		svc := NewEntryService(repo, deniedLocker{}, "test-salt", zerolog.Nop())
		svc.now = func() time.Time { return serviceNow }

		_, err := svc.UpdateEntry(context.Background(), UpdateEntryInput{
			ID:     existing.ID,
			UserID: userID,
		})

		require.ErrorIs(t, err, ErrEntryBusy)
		require.Zero(t, repo.updateCalls)
	})
}

func TestEntryService_DeleteEntry(t *testing.T) {
	userID := uuid.New()

	t.Run("deletes owned entry", func(t *testing.T) {
		repo := NewMockEntryRepository()
		svc := newTestService(repo)
		existing := seedEntry(repo, userID, 3)

		require.NoError(t, svc.DeleteEntry(context.Background(), userID, existing.ID))
		require.Empty(t, repo.entries)
	})

	t.Run("missing entry is not an error", func(t *testing.T) {
		repo := NewMockEntryRepository()
		svc := newTestService(repo)

		require.NoError(t, svc.DeleteEntry(context.Background(), userID, uuid.New()))
	})
}

func TestEntryService_LockUnlock(t *testing.T) {
	userID := uuid.New()

	t.Run("lock then unlock round trip", func(t *testing.T) {
		repo := NewMockEntryRepository()
		svc := newTestService(repo)
		existing := seedEntry(repo, userID, 0)

		locked, err := svc.LockEntry(context.Background(), LockEntryInput{
			ID:         existing.ID,
			UserID:     userID,
			Credential: "hunter2",
		})
		require.NoError(t, err)
		require.True(t, locked.IsLocked)
		require.NotEqual(t, "seed title", locked.Title)
		require.NotEqual(t, "seed content", locked.Content)

		unlocked, err := svc.UnlockEntry(context.Background(), UnlockEntryInput{
			ID:         existing.ID,
			UserID:     userID,
			Credential: "hunter2",
		})
		require.NoError(t, err)
		require.Equal(t, "seed title", unlocked.Title)
		require.Equal(t, "seed content", unlocked.Content)
		require.False(t, unlocked.IsLocked)

		// Display-only unlock leaves the stored entry locked.
		require.True(t, repo.entries[existing.ID].IsLocked)
	})

	t.Run("wrong credential yields blank entry and sentinel", func(t *testing.T) {
		repo := NewMockEntryRepository()
		svc := newTestService(repo)
		existing := seedEntry(repo, userID, 0)

		_, err := svc.LockEntry(context.Background(), LockEntryInput{
			ID: existing.ID, UserID: userID, Credential: "hunter2",
		})
		require.NoError(t, err)

		entry, err := svc.UnlockEntry(context.Background(), UnlockEntryInput{
			ID: existing.ID, UserID: userID, Credential: "wrong",
		})
		require.ErrorIs(t, err, domain.ErrUndecryptable)
		require.NotNil(t, entry)
		require.Empty(t, entry.Title)
		require.Empty(t, entry.Content)
	})

	t.Run("unlock with persist clears the stored lock", func(t *testing.T) {
		repo := NewMockEntryRepository()
		svc := newTestService(repo)
		existing := seedEntry(repo, userID, 0)

		_, err := svc.LockEntry(context.Background(), LockEntryInput{
			ID: existing.ID, UserID: userID, Credential: "hunter2",
		})
		require.NoError(t, err)

		_, err = svc.UnlockEntry(context.Background(), UnlockEntryInput{
			ID: existing.ID, UserID: userID, Credential: "hunter2", Persist: true,
		})
		require.NoError(t, err)

		stored := repo.entries[existing.ID]
		require.False(t, stored.IsLocked)
		require.Equal(t, "seed title", stored.Title)
	})

	t.Run("locking outside the edit window rejected", func(t *testing.T) {
		repo := NewMockEntryRepository()
		svc := newTestService(repo)
		existing := seedEntry(repo, userID, 2)

		_, err := svc.LockEntry(context.Background(), LockEntryInput{
			ID: existing.ID, UserID: userID, Credential: "hunter2",
		})
		require.ErrorIs(t, err, domain.ErrEditWindowClosed)
		require.Zero(t, repo.updateCalls)
	})

	t.Run("unlocking an unlocked entry rejected", func(t *testing.T) {
		repo := NewMockEntryRepository()
		svc := newTestService(repo)
		existing := seedEntry(repo, userID, 0)

		_, err := svc.UnlockEntry(context.Background(), UnlockEntryInput{
			ID: existing.ID, UserID: userID, Credential: "hunter2",
		})
		require.ErrorIs(t, err, domain.ErrEntryNotLocked)
	})

	t.Run("locking twice is a no-op", func(t *testing.T) {
		repo := NewMockEntryRepository()
		svc := newTestService(repo)
		existing := seedEntry(repo, userID, 0)

		first, err := svc.LockEntry(context.Background(), LockEntryInput{
			ID: existing.ID, UserID: userID, Credential: "hunter2",
		})
		require.NoError(t, err)

		second, err := svc.LockEntry(context.Background(), LockEntryInput{
			ID: existing.ID, UserID: userID, Credential: "hunter2",
		})
		require.NoError(t, err)
		require.Equal(t, first.Title, second.Title)
		require.Equal(t, 1, repo.updateCalls)
	})
}

func TestEntryService_ListEntriesDegradesToEmpty(t *testing.T) {
	repo := NewMockEntryRepository()
	repo.listErr = context.DeadlineExceeded
	svc := newTestService(repo)

	entries := svc.ListEntries(context.Background(), uuid.New())
	require.NotNil(t, entries)
	require.Empty(t, entries)
}

func TestEntryService_GetEntryOnDay(t *testing.T) {
	userID := uuid.New()
	repo := NewMockEntryRepository()
	svc := newTestService(repo)

	// Two entries on the same day; the earliest created wins.
	day := domain.StartOfDay(serviceNow)
	early := domain.NewEntry(userID, "early", "", day, serviceNow.Add(-2*time.Hour))
	early.ID = uuid.New()
	late := domain.NewEntry(userID, "late", "", day, serviceNow)
	late.ID = uuid.New()
	repo.entries[early.ID] = early
	repo.entries[late.ID] = late

	got, err := svc.GetEntryOnDay(context.Background(), userID, serviceNow)
	require.NoError(t, err)
	require.Equal(t, "early", got.Title)

	_, err = svc.GetEntryOnDay(context.Background(), userID, serviceNow.AddDate(0, 0, -5))
	require.ErrorIs(t, err, domain.ErrEntryNotFound)
}
