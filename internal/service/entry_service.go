package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/prn-tf/chronicle/internal/domain"
	"github.com/prn-tf/chronicle/internal/lock"
	"github.com/prn-tf/chronicle/internal/metrics"
	"github.com/prn-tf/chronicle/internal/pkg/crypto"
	"github.com/prn-tf/chronicle/internal/repository"
)

// editLockTTL bounds how long a per-entry mutation lock may be held.
// It is a safety valve against leaked locks, not an expected duration.
const editLockTTL = 30 * time.Second

// EntryService handles the entry lifecycle: create, read, update, delete,
// and lock/unlock. Mutations of a persisted entry are only permitted while
// the entry's date is the current calendar day; violations are rejected
// before any repository call.
type EntryService struct {
	entryRepo repository.EntryRepository
	locker    lock.Locker
	lockKeys  repository.LockKey
	lockSalt  []byte
	logger    zerolog.Logger

	// now is swappable for tests.
	now func() time.Time
}

// NewEntryService creates a new EntryService. lockSalt is the salt used to
// derive entry-lock encryption keys from user credentials.
func NewEntryService(
	entryRepo repository.EntryRepository,
	locker lock.Locker,
	lockSalt string,
	logger zerolog.Logger,
) *EntryService {
	return &EntryService{
		entryRepo: entryRepo,
		locker:    locker,
		lockSalt:  []byte(lockSalt),
		logger:    logger.With().Str("service", "entry").Logger(),
		now:       time.Now,
	}
}

// =============================================================================
// Input Structs
// =============================================================================

// CreateEntryInput contains the data needed to create an entry.
type CreateEntryInput struct {
	UserID     uuid.UUID
	Title      string
	Content    string
	Date       time.Time
	Images     []string
	Covers     domain.CoverSet
	IsFavorite bool
}

// UpdateEntryInput contains the data needed to update an entry.
// CreatedAt and IsRetroactive are never taken from the caller; the stored
// values are carried through unchanged.
type UpdateEntryInput struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Title      string
	Content    string
	Date       time.Time
	Images     []string
	Covers     domain.CoverSet
	IsFavorite bool
}

// LockEntryInput contains the data needed to lock an entry.
type LockEntryInput struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Credential string
}

// UnlockEntryInput contains the data needed to unlock an entry.
// When Persist is false the entry is decrypted for display only and the
// stored ciphertext is left untouched.
type UnlockEntryInput struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Credential string
	Persist    bool
}

// =============================================================================
// Service Methods
// =============================================================================

// CreateEntry creates a new journal entry. The retroactive flag is computed
// here, once, by comparing the entry date against the current calendar day;
// it is never recomputed afterwards.
func (s *EntryService) CreateEntry(ctx context.Context, input CreateEntryInput) (*domain.Entry, error) {
	if input.Date.IsZero() {
		return nil, fmt.Errorf("%w: entry date is required", ErrInvalidInput)
	}
	if err := validateCovers(input.Covers, len(input.Images)); err != nil {
		return nil, err
	}

	entry := domain.NewEntry(input.UserID, input.Title, input.Content, input.Date, s.now())
	entry.IsFavorite = input.IsFavorite
	entry.Images = domain.ReorderWithCoversFirst(input.Images, input.Covers)

	err := s.entryRepo.Create(ctx, entry)
	metrics.RecordEntryOperation("create", err)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", input.UserID.String()).Msg("failed to create entry")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().
		Str("entry_id", entry.ID.String()).
		Str("day", domain.DayKey(entry.Date)).
		Bool("retroactive", entry.IsRetroactive).
		Msg("entry created")

	return entry, nil
}

// GetEntry retrieves a single entry owned by the given user.
func (s *EntryService) GetEntry(ctx context.Context, userID, entryID uuid.UUID) (*domain.Entry, error) {
	return s.getOwned(ctx, userID, entryID)
}

// ListEntries returns all entries for a user, newest day first. Read
// failures degrade to an empty list so the caller can still render.
func (s *EntryService) ListEntries(ctx context.Context, userID uuid.UUID) []*domain.Entry {
	entries, err := s.entryRepo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to list entries")
		return []*domain.Entry{}
	}
	if entries == nil {
		entries = []*domain.Entry{}
	}
	return entries
}

// GetEntryOnDay retrieves the user's entry for a calendar day. When several
// entries share the day, the earliest created wins.
func (s *EntryService) GetEntryOnDay(ctx context.Context, userID uuid.UUID, day time.Time) (*domain.Entry, error) {
	entry, err := s.entryRepo.GetByDate(ctx, userID, day)
	if err != nil {
		if errors.Is(err, domain.ErrEntryNotFound) {
			return nil, domain.ErrEntryNotFound
		}
		s.logger.Error().Err(err).Str("day", domain.DayKey(day)).Msg("failed to get entry by day")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	return entry, nil
}

// UpdateEntry replaces the mutable fields of an entry. The stored CreatedAt
// and IsRetroactive values are carried through unchanged, and the edit is
// rejected with ErrEditWindowClosed before any repository write when the
// entry's date is no longer today.
func (s *EntryService) UpdateEntry(ctx context.Context, input UpdateEntryInput) (*domain.Entry, error) {
	if err := validateCovers(input.Covers, len(input.Images)); err != nil {
		return nil, err
	}

	release, err := s.acquireEditLock(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	defer release()

	existing, err := s.getOwned(ctx, input.UserID, input.ID)
	if err != nil {
		return nil, err
	}

	if !existing.IsFromToday(s.now()) {
		return nil, domain.ErrEditWindowClosed
	}

	updated := existing.Clone()
	updated.Title = input.Title
	updated.Content = input.Content
	updated.IsFavorite = input.IsFavorite
	updated.Images = domain.ReorderWithCoversFirst(input.Images, input.Covers)
	updated.UpdatedAt = s.now()
	if !input.Date.IsZero() {
		updated.Date = input.Date
	}

	err = s.entryRepo.Update(ctx, updated)
	metrics.RecordEntryOperation("update", err)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrEntryNotFound
		}
		s.logger.Error().Err(err).Str("entry_id", input.ID.String()).Msg("failed to update entry")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	return updated, nil
}

// DeleteEntry removes an entry. Deleting an entry that no longer exists is
// not an error.
func (s *EntryService) DeleteEntry(ctx context.Context, userID, entryID uuid.UUID) error {
	release, err := s.acquireEditLock(ctx, entryID)
	if err != nil {
		return err
	}
	defer release()

	_, err = s.getOwned(ctx, userID, entryID)
	if errors.Is(err, domain.ErrEntryNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	err = s.entryRepo.Delete(ctx, entryID)
	metrics.RecordEntryOperation("delete", err)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		s.logger.Error().Err(err).Str("entry_id", entryID.String()).Msg("failed to delete entry")
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().Str("entry_id", entryID.String()).Msg("entry deleted")
	return nil
}

// LockEntry encrypts the entry's title and content with a key derived from
// the caller's credential and marks it locked. The key lives only for the
// duration of the call. Locking an already locked entry is a no-op.
func (s *EntryService) LockEntry(ctx context.Context, input LockEntryInput) (*domain.Entry, error) {
	release, err := s.acquireEditLock(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	defer release()

	entry, err := s.getOwned(ctx, input.UserID, input.ID)
	if err != nil {
		return nil, err
	}
	if entry.IsLocked {
		return entry, nil
	}
	if !entry.IsFromToday(s.now()) {
		return nil, domain.ErrEditWindowClosed
	}

	enc, err := crypto.NewEncryptorForCredential(input.Credential, s.lockSalt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	locked := entry.Clone()
	locked.Title, err = enc.EncryptString(entry.Title)
	if err == nil {
		locked.Content, err = enc.EncryptString(entry.Content)
	}
	if err != nil {
		s.logger.Error().Err(err).Str("entry_id", input.ID.String()).Msg("failed to encrypt entry")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	locked.IsLocked = true
	locked.UpdatedAt = s.now()

	err = s.entryRepo.Update(ctx, locked)
	metrics.RecordEntryOperation("lock", err)
	if err != nil {
		s.logger.Error().Err(err).Str("entry_id", input.ID.String()).Msg("failed to persist locked entry")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().Str("entry_id", input.ID.String()).Msg("entry locked")
	return locked, nil
}

// UnlockEntry decrypts a locked entry with a key derived from the caller's
// credential. A decryption failure (wrong credential, corrupted ciphertext)
// returns the entry with empty title and content together with
// ErrUndecryptable, so callers can distinguish it from a legitimately empty
// entry. With Persist set, the decrypted plaintext replaces the stored
// ciphertext and the locked flag is cleared, subject to the edit window.
func (s *EntryService) UnlockEntry(ctx context.Context, input UnlockEntryInput) (*domain.Entry, error) {
	entry, err := s.getOwned(ctx, input.UserID, input.ID)
	if err != nil {
		return nil, err
	}
	if !entry.IsLocked {
		return nil, domain.ErrEntryNotLocked
	}

	enc, err := crypto.NewEncryptorForCredential(input.Credential, s.lockSalt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	unlocked := entry.Clone()
	title, terr := enc.DecryptString(entry.Title)
	content, cerr := enc.DecryptString(entry.Content)
	if terr != nil || cerr != nil {
		unlocked.Title = ""
		unlocked.Content = ""
		metrics.RecordEntryOperation("unlock", domain.ErrUndecryptable)
		return unlocked, domain.ErrUndecryptable
	}
	unlocked.Title = title
	unlocked.Content = content
	unlocked.IsLocked = false

	if !input.Persist {
		metrics.RecordEntryOperation("unlock", nil)
		return unlocked, nil
	}

	release, err := s.acquireEditLock(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	defer release()

	if !entry.IsFromToday(s.now()) {
		return nil, domain.ErrEditWindowClosed
	}

	unlocked.UpdatedAt = s.now()
	err = s.entryRepo.Update(ctx, unlocked)
	metrics.RecordEntryOperation("unlock", err)
	if err != nil {
		s.logger.Error().Err(err).Str("entry_id", input.ID.String()).Msg("failed to persist unlocked entry")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().Str("entry_id", input.ID.String()).Msg("entry unlocked")
	return unlocked, nil
}

// =============================================================================
// Helpers
// =============================================================================

// validateCovers rejects a cover set the image list cannot satisfy before
// any reordering or repository call happens.
func validateCovers(covers domain.CoverSet, imageCount int) error {
	if len(covers) > domain.MaxCoverPhotos {
		return domain.ErrCoverLimitExceeded
	}
	for _, idx := range covers {
		if idx < 0 || idx >= imageCount {
			return domain.ErrCoverIndexOutOfRange
		}
	}
	return nil
}

// getOwned fetches an entry and verifies ownership. Entries owned by other
// users are reported as not found so ids do not leak across accounts.
func (s *EntryService) getOwned(ctx context.Context, userID, entryID uuid.UUID) (*domain.Entry, error) {
	entry, err := s.entryRepo.GetByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, domain.ErrEntryNotFound) || errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrEntryNotFound
		}
		s.logger.Error().Err(err).Str("entry_id", entryID.String()).Msg("failed to get entry")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	if entry.UserID != userID {
		return nil, domain.ErrEntryNotFound
	}
	return entry, nil
}

// acquireEditLock takes the per-entry mutation lock. The returned release
// function must be called once the mutation completes.
func (s *EntryService) acquireEditLock(ctx context.Context, entryID uuid.UUID) (func(), error) {
	key := s.lockKeys.EntryEdit(entryID)

	acquired, err := s.locker.Acquire(ctx, key, editLockTTL)
	if err != nil {
		s.logger.Error().Err(err).Str("entry_id", entryID.String()).Msg("failed to acquire edit lock")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	if !acquired {
		return nil, ErrEntryBusy
	}

	return func() {
		if err := s.locker.Release(context.Background(), key); err != nil {
			s.logger.Warn().Err(err).Str("entry_id", entryID.String()).Msg("failed to release edit lock")
		}
	}, nil
}
