package ports

import (
	"context"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"
)

// ProfileRepository persists user profiles derived from the auth provider's
// identity metadata, plus the phone lookup index.
type ProfileRepository interface {
	// Get retrieves a profile by user id. Returns ObjectNotFound when the
	// profile was never persisted.
	Get(ctx context.Context, id kernel.UUID) (user.Profile, error)

	// Save persists a profile and, when the profile carries a phone number,
	// the phone-to-user index entry.
	Save(ctx context.Context, profile user.Profile) error
}
