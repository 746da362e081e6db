package domain

import (
	"time"

	"github.com/google/uuid"
)

// MaxUsernameLength is the upper bound on profile usernames, enforced at the
// input boundary rather than by the repositories.
const MaxUsernameLength = 20

// Profile holds the per-user profile record, stored and fetched
// independently of entries. Created at signup, mutated only by explicit
// profile-edit actions.
type Profile struct {
	// UserID identifies the owning user.
	UserID uuid.UUID `json:"user_id"`

	// Username is the display name, free text up to MaxUsernameLength.
	Username string `json:"username"`

	// ProfilePicture is an optional opaque image reference.
	ProfilePicture *string `json:"profile_picture,omitempty"`

	// UpdatedAt is the timestamp of the last profile edit.
	UpdatedAt time.Time `json:"updated_at"`
}

// NewProfile creates a profile record for a freshly signed-up user.
func NewProfile(userID uuid.UUID, username string) *Profile {
	return &Profile{
		UserID:    userID,
		Username:  username,
		UpdatedAt: time.Now(),
	}
}
