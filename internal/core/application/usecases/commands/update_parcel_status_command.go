package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/guard"
)

var ErrUpdateParcelStatusCommandIsNotConstructed = errors.New(
	"UpdateParcelStatusCommand must be created via NewUpdateParcelStatusCommand constructor",
)

// UpdateParcelStatusCommand represents a request to move a parcel forward in
// its lifecycle. Whether the caller may touch the parcel depends on who owns
// it, so the ownership check happens in the handler after the parcel is
// loaded, not here.
type UpdateParcelStatusCommand struct { //nolint:recvcheck //using for validation
	parcelID kernel.UUID
	caller   user.Caller
	next     parcel.Status

	guard guard.ConstructorGuard
}

// NewUpdateParcelStatusCommand creates a command to change a parcel's status.
// Validates the parcel id, the caller identity, and that the target status is
// a valid lifecycle state. Whether the transition itself is legal is decided
// by the aggregate.
func NewUpdateParcelStatusCommand(
	parcelID kernel.UUID,
	caller user.Caller,
	next parcel.Status,
) (UpdateParcelStatusCommand, error) {
	command := UpdateParcelStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setParcelID(parcelID),
		command.setCaller(caller),
		command.setNext(next),
	); err != nil {
		return UpdateParcelStatusCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateParcelStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateParcelStatusCommandIsNotConstructed)
}

// ParcelID returns the identifier of the parcel to update.
func (c UpdateParcelStatusCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// Caller returns the authenticated identity requesting the update.
func (c UpdateParcelStatusCommand) Caller() user.Caller {
	return c.caller
}

// Next returns the target lifecycle status.
func (c UpdateParcelStatusCommand) Next() parcel.Status {
	return c.next
}

func (c *UpdateParcelStatusCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}
	c.parcelID = parcelID
	return nil
}

func (c *UpdateParcelStatusCommand) setCaller(caller user.Caller) error {
	if err := caller.Validate(); err != nil {
		return err
	}
	c.caller = caller
	return nil
}

func (c *UpdateParcelStatusCommand) setNext(next parcel.Status) error {
	if err := next.Validate(); err != nil {
		return err
	}
	c.next = next
	return nil
}
