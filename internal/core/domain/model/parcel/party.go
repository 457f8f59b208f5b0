package parcel

import (
	"errors"

	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

// ErrPartyIsNotConstructed is returned when a Party instance was not created
// through the NewParty factory method.
var ErrPartyIsNotConstructed = errors.New("Party must be created via NewParty constructor")

// Party is a value object identifying one side of a shipment: the sender or
// the receiver. All three fields are required.
type Party struct { //nolint:recvcheck //using for validation
	name    string
	address string
	contact string

	guard guard.ConstructorGuard
}

// NewParty creates a validated Party. Name, address, and contact must all be
// non-empty.
func NewParty(name, address, contact string) (Party, error) {
	party := Party{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		party.setName(name),
		party.setAddress(address),
		party.setContact(contact),
	); err != nil {
		return Party{}, err
	}

	return party, nil
}

// Validate ensures the Party instance was properly constructed through NewParty.
func (p Party) Validate() error {
	return p.guard.Validate(ErrPartyIsNotConstructed)
}

// Name returns the party's full name.
func (p Party) Name() string {
	return p.name
}

// Address returns the party's address.
func (p Party) Address() string {
	return p.address
}

// Contact returns the party's contact detail, typically a phone number.
func (p Party) Contact() string {
	return p.contact
}

func (p *Party) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("party name")
	}
	p.name = name
	return nil
}

func (p *Party) setAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("party address")
	}
	p.address = address
	return nil
}

func (p *Party) setContact(contact string) error {
	if contact == "" {
		return errs.NewValueIsRequiredError("party contact")
	}
	p.contact = contact
	return nil
}
