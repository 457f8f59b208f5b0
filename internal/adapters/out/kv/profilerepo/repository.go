// Package profilerepo persists user profiles in the key-value store.
//
// Key namespace:
//
//	user:{id}            primary profile record (JSON document)
//	user:phone:{digits}  phone lookup index, value is the user id
//
// The phone index key uses the digits-only normal form so lookups are
// insensitive to formatting.
package profilerepo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/core/ports"
	"parceltrack/internal/pkg/errs"
)

func profileKey(userID string) string {
	return "user:" + userID
}

func phoneKey(digits string) string {
	return "user:phone:" + digits
}

type profileDTO struct {
	ID            string    `json:"id"`
	FullName      string    `json:"full_name"`
	Phone         string    `json:"phone,omitempty"`
	Role          string    `json:"role"`
	VehicleNumber string    `json:"vehicle_number,omitempty"`
	CompanyName   string    `json:"company_name,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

var _ ports.ProfileRepository = &Repository{}

// Repository implements ports.ProfileRepository over a KVStore.
type Repository struct {
	store ports.KVStore
}

// NewRepository creates a profile repository over the given store.
func NewRepository(store ports.KVStore) *Repository {
	return &Repository{store: store}
}

// Get retrieves a profile by user id.
func (r *Repository) Get(ctx context.Context, id kernel.UUID) (user.Profile, error) {
	if err := id.Validate(); err != nil {
		return user.Profile{}, err
	}

	raw, found, err := r.store.Get(ctx, profileKey(id.String()))
	if err != nil {
		return user.Profile{}, err
	}
	if !found {
		return user.Profile{}, errs.NewObjectNotFoundError("userID", id)
	}

	return decodeProfile(raw)
}

// GetByPhone resolves a phone number to the profile registered under it.
// The number is normalized to digits before the index lookup.
func (r *Repository) GetByPhone(ctx context.Context, phone string) (user.Profile, error) {
	digits := user.NormalizePhone(phone)
	if digits == "" {
		return user.Profile{}, errs.NewValueIsRequiredError("phone")
	}

	rawID, found, err := r.store.Get(ctx, phoneKey(digits))
	if err != nil {
		return user.Profile{}, err
	}
	if !found {
		return user.Profile{}, errs.NewObjectNotFoundError("phone", digits)
	}

	id, err := kernel.UUIDFromString(string(rawID))
	if err != nil {
		return user.Profile{}, errs.NewInconsistentStateError(phoneKey(digits), "user:"+string(rawID))
	}

	profile, err := r.Get(ctx, id)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return user.Profile{}, errs.NewInconsistentStateError(phoneKey(digits), profileKey(id.String()))
		}
		return user.Profile{}, err
	}
	return profile, nil
}

// Save persists a profile and refreshes the phone index when the profile
// carries a phone number.
func (r *Repository) Save(ctx context.Context, profile user.Profile) error {
	if err := profile.Validate(); err != nil {
		return err
	}

	raw, err := json.Marshal(fromDomain(profile))
	if err != nil {
		return errs.NewStorageError("marshal profile", err)
	}

	if err := r.store.Set(ctx, profileKey(profile.ID().String()), raw); err != nil {
		return err
	}

	if digits := user.NormalizePhone(profile.Phone()); digits != "" {
		return r.store.Set(ctx, phoneKey(digits), []byte(profile.ID().String()))
	}
	return nil
}

func fromDomain(profile user.Profile) profileDTO {
	return profileDTO{
		ID:            profile.ID().String(),
		FullName:      profile.FullName(),
		Phone:         profile.Phone(),
		Role:          profile.Role().String(),
		VehicleNumber: profile.VehicleNumber(),
		CompanyName:   profile.CompanyName(),
		CreatedAt:     profile.CreatedAt(),
		UpdatedAt:     profile.UpdatedAt(),
	}
}

func decodeProfile(raw []byte) (user.Profile, error) {
	var dto profileDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return user.Profile{}, errs.NewValueIsInvalidErrorWithCause("profile record", err)
	}

	id, err := kernel.UUIDFromString(dto.ID)
	if err != nil {
		return user.Profile{}, err
	}
	role, err := user.ParseRole(dto.Role)
	if err != nil {
		return user.Profile{}, err
	}

	return user.NewProfile(
		id,
		dto.FullName,
		dto.Phone,
		role,
		dto.VehicleNumber,
		dto.CompanyName,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
