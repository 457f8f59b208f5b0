package user

import (
	"errors"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/guard"
)

// ErrProfileIsNotConstructed is returned when a Profile instance was not
// created through a factory method.
var ErrProfileIsNotConstructed = errors.New("Profile must be created via NewProfile or ProfileFromMetadata")

// defaultFullName is used when the auth provider carries no name at all.
const defaultFullName = "Unknown User"

// Profile describes a known user of the system. Profiles are derived from the
// external auth provider's identity metadata, not independently created by the
// core; the access gate treats them as read-only input.
type Profile struct { //nolint:recvcheck //using for validation
	id            kernel.UUID
	fullName      string
	phone         string
	role          Role
	vehicleNumber string
	companyName   string
	createdAt     time.Time
	updatedAt     time.Time

	guard guard.ConstructorGuard
}

// Metadata is the identity metadata an auth provider attaches to an account.
// Field presence is entirely up to the provider; ProfileFromMetadata applies
// the defaulting rules.
type Metadata struct {
	FullName      string
	Name          string
	Phone         string
	Role          string
	VehicleNumber string
	CompanyName   string
}

// NewProfile creates a validated Profile from already-resolved fields.
func NewProfile(
	id kernel.UUID,
	fullName string,
	phone string,
	role Role,
	vehicleNumber string,
	companyName string,
	createdAt time.Time,
	updatedAt time.Time,
) (Profile, error) {
	if err := id.Validate(); err != nil {
		return Profile{}, err
	}
	if err := role.Validate(); err != nil {
		return Profile{}, err
	}
	if fullName == "" {
		fullName = defaultFullName
	}

	return Profile{
		id:            id,
		fullName:      fullName,
		phone:         phone,
		role:          role,
		vehicleNumber: vehicleNumber,
		companyName:   companyName,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// ProfileFromMetadata maps the auth provider's identity metadata onto a
// Profile. Defaulting rules, applied explicitly:
//   - full name: FullName, else Name, else "Unknown User"
//   - role: parsed from Role; an absent role defaults to driver, an
//     unrecognized value is an error rather than a silent fallback
//   - phone, vehicle number, company name: carried as-is, possibly empty
//
// accountCreatedAt is the provider's account creation time; a zero value
// falls back to the current time.
func ProfileFromMetadata(id kernel.UUID, metadata Metadata, accountCreatedAt time.Time) (Profile, error) {
	role := RoleDriver
	if metadata.Role != "" {
		parsed, err := ParseRole(metadata.Role)
		if err != nil {
			return Profile{}, err
		}
		role = parsed
	}

	fullName := metadata.FullName
	if fullName == "" {
		fullName = metadata.Name
	}

	now := time.Now().UTC()
	createdAt := accountCreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	return NewProfile(id, fullName, metadata.Phone, role, metadata.VehicleNumber, metadata.CompanyName, createdAt, now)
}

// Validate ensures the Profile was created through a factory method.
func (p Profile) Validate() error {
	return p.guard.Validate(ErrProfileIsNotConstructed)
}

// ID returns the user's unique identifier.
func (p Profile) ID() kernel.UUID {
	return p.id
}

// FullName returns the user's display name.
func (p Profile) FullName() string {
	return p.fullName
}

// Phone returns the user's phone number, possibly empty.
func (p Profile) Phone() string {
	return p.phone
}

// Role returns the user's role.
func (p Profile) Role() Role {
	return p.role
}

// VehicleNumber returns the driver's vehicle number, empty for officials.
func (p Profile) VehicleNumber() string {
	return p.vehicleNumber
}

// CompanyName returns the official's company name, empty for drivers.
func (p Profile) CompanyName() string {
	return p.companyName
}

// CreatedAt returns the account creation time.
func (p Profile) CreatedAt() time.Time {
	return p.createdAt
}

// UpdatedAt returns the time the profile was last refreshed.
func (p Profile) UpdatedAt() time.Time {
	return p.updatedAt
}

// Caller returns the identity-and-role pair used for access decisions.
func (p Profile) Caller() Caller {
	return Caller{ID: p.id, Role: p.role}
}
