// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, access decision, and
// persistence through the parcel repository.
package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

var ErrRegisterParcelCommandIsNotConstructed = errors.New(
	"RegisterParcelCommand must be created via NewRegisterParcelCommand constructor",
)

// RegisterParcelCommand represents a driver's request to register a new
// parcel. It carries the caller identity explicitly; the registered parcel is
// always owned by the caller, never by a client-supplied driver id.
//
// Example:
//
//	cmd, err := NewRegisterParcelCommand(kernel.NewUUID(), caller, sender, receiver, items)
//	if err != nil {
//	    return fmt.Errorf("invalid registration data: %w", err)
//	}
//
//	handler := NewRegisterParcelCommandHandler(gate, parcels)
//	registered, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("failed to register parcel: %w", err)
//	}
//	fmt.Printf("Parcel registered under %s", registered.ReferenceCode())
type RegisterParcelCommand struct { //nolint:recvcheck //using for validation
	parcelID kernel.UUID
	caller   user.Caller
	sender   parcel.Party
	receiver parcel.Party
	items    []parcel.Item

	guard guard.ConstructorGuard
}

// NewRegisterParcelCommand creates a command to register a new parcel.
// Validates the caller identity, both parties, and the item list (non-empty,
// every item constructed). Returns an error if any validation fails.
func NewRegisterParcelCommand(
	parcelID kernel.UUID,
	caller user.Caller,
	sender parcel.Party,
	receiver parcel.Party,
	items []parcel.Item,
) (RegisterParcelCommand, error) {
	command := RegisterParcelCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setParcelID(parcelID),
		command.setCaller(caller),
		command.setSender(sender),
		command.setReceiver(receiver),
		command.setItems(items),
	); err != nil {
		return RegisterParcelCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterParcelCommand) Validate() error {
	return c.guard.Validate(ErrRegisterParcelCommandIsNotConstructed)
}

// ParcelID returns the identifier the new parcel will be registered under.
func (c RegisterParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// Caller returns the authenticated identity requesting the registration.
func (c RegisterParcelCommand) Caller() user.Caller {
	return c.caller
}

// Sender returns the sending party.
func (c RegisterParcelCommand) Sender() parcel.Party {
	return c.sender
}

// Receiver returns the receiving party.
func (c RegisterParcelCommand) Receiver() parcel.Party {
	return c.receiver
}

// Items returns the items to register, in submission order.
func (c RegisterParcelCommand) Items() []parcel.Item {
	items := make([]parcel.Item, len(c.items))
	copy(items, c.items)
	return items
}

func (c *RegisterParcelCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}
	c.parcelID = parcelID
	return nil
}

func (c *RegisterParcelCommand) setCaller(caller user.Caller) error {
	if err := caller.Validate(); err != nil {
		return err
	}
	c.caller = caller
	return nil
}

func (c *RegisterParcelCommand) setSender(sender parcel.Party) error {
	if err := sender.Validate(); err != nil {
		return err
	}
	c.sender = sender
	return nil
}

func (c *RegisterParcelCommand) setReceiver(receiver parcel.Party) error {
	if err := receiver.Validate(); err != nil {
		return err
	}
	c.receiver = receiver
	return nil
}

func (c *RegisterParcelCommand) setItems(items []parcel.Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	c.items = make([]parcel.Item, len(items))
	copy(c.items, items)
	return nil
}
