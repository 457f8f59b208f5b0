// Package wizard implements the multi-step registration session a driver
// walks through before a parcel exists. The session is an in-memory
// accumulator: nothing is persisted and no identifier is allocated until
// Submit hands the completed draft to the register-parcel command.
package wizard

import (
	"context"
	"errors"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/errs"
)

// ErrWizardIsNotConstructed is returned when a Wizard instance was not
// created through NewWizard.
var ErrWizardIsNotConstructed = errors.New("Wizard must be created via NewWizard constructor")

// Registrar is the submission target: the register-parcel command handler,
// narrowed to what Submit needs.
type Registrar interface {
	Handle(ctx context.Context, cmd commands.RegisterParcelCommand) (*parcel.Parcel, error)
}

// Wizard is a single driver's registration session. Steps advance
// CollectingSender, CollectingItems, CollectingReceiver, ReadyToSubmit,
// Submitted; Back moves one step backward without losing anything already
// entered. Each step validates only its own input, so a bad receiver never
// blocks editing items.
//
// A Wizard serves one caller and is not safe for concurrent use.
type Wizard struct {
	caller   user.Caller
	step     Step
	sender   parcel.Party
	receiver parcel.Party
	items    []parcel.Item

	hasSender   bool
	hasReceiver bool

	isConstructed bool
}

// NewWizard starts a registration session for the given caller. The caller
// must carry a valid identity; whether they may actually register is decided
// at submission by the access gate, so a session can be started and abandoned
// without any access check firing.
func NewWizard(caller user.Caller) (*Wizard, error) {
	if err := caller.Validate(); err != nil {
		return nil, err
	}

	return &Wizard{
		caller:        caller,
		step:          StepCollectingSender,
		isConstructed: true,
	}, nil
}

// Validate ensures the Wizard was created through NewWizard.
func (w *Wizard) Validate() error {
	if w == nil || !w.isConstructed {
		return ErrWizardIsNotConstructed
	}
	return nil
}

// Step returns the session's current step.
func (w *Wizard) Step() Step {
	return w.step
}

// Caller returns the identity the session belongs to.
func (w *Wizard) Caller() user.Caller {
	return w.caller
}

// Sender returns the sender entered so far and whether one was entered.
func (w *Wizard) Sender() (parcel.Party, bool) {
	return w.sender, w.hasSender
}

// Receiver returns the receiver entered so far and whether one was entered.
func (w *Wizard) Receiver() (parcel.Party, bool) {
	return w.receiver, w.hasReceiver
}

// Items returns a copy of the items entered so far.
func (w *Wizard) Items() []parcel.Item {
	items := make([]parcel.Item, len(w.items))
	copy(items, w.items)
	return items
}

// ProvideSender records the sending party and advances to item collection.
// Re-entering the sender step via Back and providing a new party replaces
// the previous one.
func (w *Wizard) ProvideSender(name, address, contact string) error {
	if err := w.Validate(); err != nil {
		return err
	}
	if w.step != StepCollectingSender {
		return stepError(w.step, "provide sender")
	}

	sender, err := parcel.NewParty(name, address, contact)
	if err != nil {
		return err
	}

	w.sender = sender
	w.hasSender = true
	w.step = StepCollectingItems
	return nil
}

// AddItem appends one item to the draft. Valid only while collecting items.
func (w *Wizard) AddItem(name string, category parcel.Category, declaredValue, weightKg float64) error {
	if err := w.Validate(); err != nil {
		return err
	}
	if w.step != StepCollectingItems {
		return stepError(w.step, "add item")
	}

	item, err := parcel.NewItem(name, category, declaredValue, weightKg)
	if err != nil {
		return err
	}

	w.items = append(w.items, item)
	return nil
}

// RemoveItem drops the item at the given position.
func (w *Wizard) RemoveItem(index int) error {
	if err := w.Validate(); err != nil {
		return err
	}
	if w.step != StepCollectingItems {
		return stepError(w.step, "remove item")
	}
	if index < 0 || index >= len(w.items) {
		return errs.NewValueIsInvalidError("item index")
	}

	w.items = append(w.items[:index], w.items[index+1:]...)
	return nil
}

// FinishItems closes item collection and advances to the receiver step.
// At least one item must have been added.
func (w *Wizard) FinishItems() error {
	if err := w.Validate(); err != nil {
		return err
	}
	if w.step != StepCollectingItems {
		return stepError(w.step, "finish items")
	}
	if len(w.items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	w.step = StepCollectingReceiver
	return nil
}

// ProvideReceiver records the receiving party and advances to ReadyToSubmit.
func (w *Wizard) ProvideReceiver(name, address, contact string) error {
	if err := w.Validate(); err != nil {
		return err
	}
	if w.step != StepCollectingReceiver {
		return stepError(w.step, "provide receiver")
	}

	receiver, err := parcel.NewParty(name, address, contact)
	if err != nil {
		return err
	}

	w.receiver = receiver
	w.hasReceiver = true
	w.step = StepReadyToSubmit
	return nil
}

// Back moves one step backward. Everything already entered stays in place,
// so moving forward again does not require re-entry: a retained sender or
// receiver carries the step forward immediately. Back from the first step or
// after submission is rejected.
func (w *Wizard) Back() error {
	if err := w.Validate(); err != nil {
		return err
	}

	switch w.step {
	case StepCollectingItems:
		w.step = StepCollectingSender
	case StepCollectingReceiver:
		w.step = StepCollectingItems
	case StepReadyToSubmit:
		w.step = StepCollectingReceiver
	default:
		return stepError(w.step, "go back")
	}
	return nil
}

// Forward re-advances a step whose input was already collected, used after
// Back when nothing needs to change. It never skips a step that still lacks
// its input.
func (w *Wizard) Forward() error {
	if err := w.Validate(); err != nil {
		return err
	}

	switch w.step {
	case StepCollectingSender:
		if !w.hasSender {
			return errs.NewValueIsRequiredError("sender")
		}
		w.step = StepCollectingItems
	case StepCollectingItems:
		return w.FinishItems()
	case StepCollectingReceiver:
		if !w.hasReceiver {
			return errs.NewValueIsRequiredError("receiver")
		}
		w.step = StepReadyToSubmit
	default:
		return stepError(w.step, "go forward")
	}
	return nil
}

// Submit hands the completed draft to the registrar exactly once. On success
// the session becomes Submitted and is spent; a failed submission leaves the
// session in ReadyToSubmit so the caller may retry.
func (w *Wizard) Submit(ctx context.Context, registrar Registrar) (*parcel.Parcel, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	if w.step == StepSubmitted {
		return nil, stepError(w.step, "submit again")
	}
	if w.step != StepReadyToSubmit {
		return nil, stepError(w.step, "submit")
	}

	cmd, err := commands.NewRegisterParcelCommand(
		kernel.NewUUID(),
		w.caller,
		w.sender,
		w.receiver,
		w.items,
	)
	if err != nil {
		return nil, err
	}

	registered, err := registrar.Handle(ctx, cmd)
	if err != nil {
		return nil, err
	}

	w.step = StepSubmitted
	return registered, nil
}
