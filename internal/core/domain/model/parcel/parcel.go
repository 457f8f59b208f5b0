package parcel

import (
	"errors"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
)

var (
	// ErrParcelIsNotConstructed is returned when a Parcel instance was not created
	// through the NewParcel or RestoreParcel factory methods. This ensures all
	// parcels are properly validated.
	ErrParcelIsNotConstructed = errors.New("Parcel must be created via NewParcel or RestoreParcel constructor")
)

// Parcel represents a registered physical parcel in the system. It is the
// aggregate root that manages the parcel lifecycle from registration by a
// driver through delivery.
//
// Parcel follows these invariants:
//   - Must have a valid unique identifier, immutable after creation
//   - Must have a reference code matching the generator's format, immutable
//     once the record is visible to other callers
//   - Sender and receiver must be fully populated
//   - Must contain at least one item; items are immutable once submitted
//   - Status transitions are monotonic forward (no re-registration)
//   - UpdatedAt never precedes CreatedAt
//
// The Parcel struct uses private fields to ensure encapsulation and maintains
// its invariants through validated methods.
type Parcel struct {
	// id is the unique identifier for the parcel
	id kernel.UUID

	// referenceCode is the human-shareable tracking token
	referenceCode string

	// sender and receiver identify the two parties of the shipment
	sender   Party
	receiver Party

	// items is the non-empty ordered list of contents
	items []Item

	// status represents the current state in the parcel lifecycle
	status Status

	// ownerDriverID is the driver who registered the parcel
	ownerDriverID kernel.UUID

	createdAt time.Time
	updatedAt time.Time

	// isConstructed ensures the parcel was created via a constructor
	isConstructed bool
}

// NewParcel creates a new Parcel at submission time on behalf of a driver.
// The parcel starts in StatusRegistered with a freshly generated reference
// code and both timestamps set to the current time.
//
// Parameters:
//   - id: Unique identifier for the parcel (must be a valid UUID)
//   - ownerDriverID: The registering driver's identifier (must be a valid UUID)
//   - sender: Validated sender party
//   - receiver: Validated receiver party
//   - items: Non-empty list of validated items
//
// Returns a validation error if any parameter is invalid; no partially
// constructed parcel is ever returned.
func NewParcel(
	id kernel.UUID,
	ownerDriverID kernel.UUID,
	sender Party,
	receiver Party,
	items []Item,
) (*Parcel, error) {
	now := time.Now().UTC()

	parcel := &Parcel{
		referenceCode: GenerateReferenceCode(),
		status:        StatusRegistered,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		parcel.setID(id),
		parcel.setOwnerDriverID(ownerDriverID),
		parcel.setSender(sender),
		parcel.setReceiver(receiver),
		parcel.setItems(items),
	); err != nil {
		return nil, err
	}

	return parcel, nil
}

// RestoreParcel reconstructs a Parcel aggregate from persistent storage.
// Unlike NewParcel it accepts the stored reference code, status, and
// timestamps, but still enforces every structural invariant so corrupt
// records cannot re-enter the domain unnoticed.
func RestoreParcel(
	id kernel.UUID,
	referenceCode string,
	ownerDriverID kernel.UUID,
	sender Party,
	receiver Party,
	items []Item,
	status Status,
	createdAt time.Time,
	updatedAt time.Time,
) (*Parcel, error) {
	parcel := &Parcel{
		isConstructed: true,
	}

	if err := errors.Join(
		parcel.setID(id),
		parcel.setReferenceCode(referenceCode),
		parcel.setOwnerDriverID(ownerDriverID),
		parcel.setSender(sender),
		parcel.setReceiver(receiver),
		parcel.setItems(items),
		parcel.setStatus(status),
		parcel.setTimestamps(createdAt, updatedAt),
	); err != nil {
		return nil, err
	}

	return parcel, nil
}

// Validate ensures the Parcel instance was properly constructed through a
// factory method. This prevents bypassing validation by directly
// instantiating the struct.
func (p *Parcel) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrParcelIsNotConstructed
	}
	return nil
}

// IsEqual compares two parcels by their unique identifiers.
func (p *Parcel) IsEqual(other *Parcel) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the parcel's unique identifier.
func (p *Parcel) ID() kernel.UUID {
	return p.id
}

// ReferenceCode returns the parcel's human-shareable tracking code.
func (p *Parcel) ReferenceCode() string {
	return p.referenceCode
}

// Sender returns the sending party.
func (p *Parcel) Sender() Party {
	return p.sender
}

// Receiver returns the receiving party.
func (p *Parcel) Receiver() Party {
	return p.receiver
}

// Items returns a copy of the parcel's item list in submission order.
// The copy keeps callers from mutating the aggregate's contents.
func (p *Parcel) Items() []Item {
	items := make([]Item, len(p.items))
	copy(items, p.items)
	return items
}

// Status returns the current status of the parcel.
func (p *Parcel) Status() Status {
	return p.status
}

// OwnerDriverID returns the identifier of the driver who registered the parcel.
func (p *Parcel) OwnerDriverID() kernel.UUID {
	return p.ownerDriverID
}

// CreatedAt returns the registration time.
func (p *Parcel) CreatedAt() time.Time {
	return p.createdAt
}

// UpdatedAt returns the time of the last mutation.
func (p *Parcel) UpdatedAt() time.Time {
	return p.updatedAt
}

// IsOwnedBy reports whether the given driver registered this parcel.
func (p *Parcel) IsOwnedBy(driverID kernel.UUID) bool {
	return p.ownerDriverID.IsEqual(driverID)
}

// ChangeStatus transitions the parcel to the next lifecycle status and
// refreshes UpdatedAt.
//
// The transition must move strictly forward (see Status.TransitionTo);
// backward transitions and repeated states are rejected and leave the
// aggregate unchanged.
func (p *Parcel) ChangeStatus(next Status) error {
	newStatus, err := p.status.TransitionTo(next)
	if err != nil {
		return err
	}

	p.status = newStatus
	p.updatedAt = time.Now().UTC()
	return nil
}

// RegenerateReferenceCode replaces the parcel's reference code with a freshly
// generated one. It exists solely for the repository's collision retry before
// the record becomes visible to other callers; once persisted, the reference
// code is immutable.
func (p *Parcel) RegenerateReferenceCode() {
	p.referenceCode = GenerateReferenceCode()
}

func (p *Parcel) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Parcel) setReferenceCode(code string) error {
	if err := ValidateReferenceCode(code); err != nil {
		return err
	}
	p.referenceCode = code
	return nil
}

func (p *Parcel) setOwnerDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	p.ownerDriverID = driverID
	return nil
}

func (p *Parcel) setSender(sender Party) error {
	if err := sender.Validate(); err != nil {
		return err
	}
	p.sender = sender
	return nil
}

func (p *Parcel) setReceiver(receiver Party) error {
	if err := receiver.Validate(); err != nil {
		return err
	}
	p.receiver = receiver
	return nil
}

func (p *Parcel) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	p.items = make([]Item, len(items))
	copy(p.items, items)
	return nil
}

func (p *Parcel) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	p.status = status
	return nil
}

func (p *Parcel) setTimestamps(createdAt, updatedAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	if updatedAt.Before(createdAt) {
		return errs.NewValueIsInvalidError("updatedAt precedes createdAt")
	}
	p.createdAt = createdAt
	p.updatedAt = updatedAt
	return nil
}
