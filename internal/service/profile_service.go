package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/prn-tf/chronicle/internal/domain"
	"github.com/prn-tf/chronicle/internal/repository"
)

// ProfileService manages user profile data. Profiles live independently of
// entries: created at signup, mutated only by explicit profile edits.
type ProfileService struct {
	profileRepo repository.ProfileRepository
	logger      zerolog.Logger

	now func() time.Time
}

// NewProfileService creates a new ProfileService.
func NewProfileService(profileRepo repository.ProfileRepository, logger zerolog.Logger) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		logger:      logger.With().Str("service", "profile").Logger(),
		now:         time.Now,
	}
}

// UpdateProfileInput contains the data needed to update a profile.
type UpdateProfileInput struct {
	UserID         uuid.UUID
	Username       string
	ProfilePicture *string
}

// GetProfile retrieves the user's profile.
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	profile, err := s.profileRepo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return nil, domain.ErrProfileNotFound
		}
		s.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to get profile")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	return profile, nil
}

// UpdateProfile creates or replaces the user's profile. The username is
// bounded at MaxUsernameLength runes.
func (s *ProfileService) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*domain.Profile, error) {
	if input.Username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(input.Username) > domain.MaxUsernameLength {
		return nil, domain.ErrUsernameTooLong
	}

	profile := &domain.Profile{
		UserID:         input.UserID,
		Username:       input.Username,
		ProfilePicture: input.ProfilePicture,
		UpdatedAt:      s.now(),
	}

	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		s.logger.Error().Err(err).Str("user_id", input.UserID.String()).Msg("failed to upsert profile")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().Str("user_id", input.UserID.String()).Msg("profile updated")
	return profile, nil
}
