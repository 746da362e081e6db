package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/prn-tf/chronicle/internal/domain"
	"github.com/prn-tf/chronicle/internal/repository"
)

// profileRepository implements repository.ProfileRepository for SQLite.
type profileRepository struct {
	db *DB
}

// NewProfileRepository creates a new SQLite profile repository.
func NewProfileRepository(db *DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

// Get retrieves the profile record for a user.
func (r *profileRepository) Get(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	query := `
		SELECT user_id, username, profile_picture, updated_at
		FROM profiles
		WHERE user_id = ?
	`

	var (
		profile   domain.Profile
		id        string
		picture   sql.NullString
		updatedAt string
	)

	err := r.db.QueryRowContext(ctx, query, userID.String()).Scan(
		&id, &profile.Username, &picture, &updatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	profile.UserID, err = uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid user id %q: %w", id, err)
	}
	if picture.Valid {
		profile.ProfilePicture = &picture.String
	}
	profile.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

	return &profile, nil
}

// Upsert creates or replaces the profile record for a user.
func (r *profileRepository) Upsert(ctx context.Context, profile *domain.Profile) error {
	query := `
		INSERT INTO profiles (user_id, username, profile_picture, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			username = excluded.username,
			profile_picture = excluded.profile_picture,
			updated_at = excluded.updated_at
	`

	var picture sql.NullString
	if profile.ProfilePicture != nil {
		picture = sql.NullString{String: *profile.ProfilePicture, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, query,
		profile.UserID.String(),
		profile.Username,
		picture,
		profile.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}

	return nil
}
