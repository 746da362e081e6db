package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/prn-tf/chronicle/internal/domain"
)

// MockProfileRepository is an in-memory implementation of
// repository.ProfileRepository with injectable errors.
type MockProfileRepository struct {
	profiles map[uuid.UUID]*domain.Profile

	getErr    error
	upsertErr error
}

func NewMockProfileRepository() *MockProfileRepository {
	return &MockProfileRepository{profiles: make(map[uuid.UUID]*domain.Profile)}
}

func (m *MockProfileRepository) Get(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	p, ok := m.profiles[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return p, nil
}

func (m *MockProfileRepository) Upsert(ctx context.Context, profile *domain.Profile) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.profiles[profile.UserID] = profile
	return nil
}

func TestProfileService_UpdateProfile(t *testing.T) {
	userID := uuid.New()
	picture := "images/ab/cd/abcd"

	tests := []struct {
		name    string
		input   UpdateProfileInput
		wantErr error
	}{
		{
			name:  "valid profile",
			input: UpdateProfileInput{UserID: userID, Username: "margot"},
		},
		{
			name:  "username at the limit",
			input: UpdateProfileInput{UserID: userID, Username: strings.Repeat("a", domain.MaxUsernameLength)},
		},
		{
			name:    "username one rune over the limit",
			input:   UpdateProfileInput{UserID: userID, Username: strings.Repeat("a", domain.MaxUsernameLength+1)},
			wantErr: domain.ErrUsernameTooLong,
		},
		{
			name: "multibyte runes counted as runes, not bytes",
			input: UpdateProfileInput{
				UserID:   userID,
				Username: strings.Repeat("ü", domain.MaxUsernameLength),
			},
		},
		{
			name:    "empty username rejected",
			input:   UpdateProfileInput{UserID: userID},
			wantErr: ErrInvalidInput,
		},
		{
			name:  "profile picture carried through",
			input: UpdateProfileInput{UserID: userID, Username: "margot", ProfilePicture: &picture},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewMockProfileRepository()
			svc := NewProfileService(repo, zerolog.Nop())

			profile, err := svc.UpdateProfile(context.Background(), tt.input)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.Empty(t, repo.profiles)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.input.Username, profile.Username)
			require.Equal(t, tt.input.ProfilePicture, profile.ProfilePicture)
			require.Contains(t, repo.profiles, userID)
		})
	}
}

func TestProfileService_GetProfile(t *testing.T) {
	userID := uuid.New()

	t.Run("existing profile returned", func(t *testing.T) {
		repo := NewMockProfileRepository()
		repo.profiles[userID] = &domain.Profile{UserID: userID, Username: "margot"}
		svc := NewProfileService(repo, zerolog.Nop())

		profile, err := svc.GetProfile(context.Background(), userID)
		require.NoError(t, err)
		require.Equal(t, "margot", profile.Username)
	})

	t.Run("missing profile reported as not found", func(t *testing.T) {
		repo := NewMockProfileRepository()
		svc := NewProfileService(repo, zerolog.Nop())

		_, err := svc.GetProfile(context.Background(), userID)
		require.ErrorIs(t, err, domain.ErrProfileNotFound)
	})
}
