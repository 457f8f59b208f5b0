package parcel

import (
	"errors"
	"fmt"

	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

// ErrItemIsNotConstructed is returned when an Item instance was not created
// through the NewItem factory method.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is a value object describing a single physical item inside a parcel.
// Items are immutable once submitted as part of a parcel.
//
// Item invariants:
//   - Name must be non-empty
//   - Category must be one of the valid categories
//   - DeclaredValue must be non-negative
//   - WeightKg must be strictly positive
type Item struct { //nolint:recvcheck //using for validation
	name          string
	category      Category
	declaredValue float64
	weightKg      float64

	guard guard.ConstructorGuard
}

// NewItem creates a validated Item. Returns an error if any invariant
// is violated.
func NewItem(name string, category Category, declaredValue, weightKg float64) (Item, error) {
	item := Item{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setName(name),
		item.setCategory(category),
		item.setDeclaredValue(declaredValue),
		item.setWeightKg(weightKg),
	); err != nil {
		return Item{}, err
	}

	return item, nil
}

// Validate ensures the Item instance was properly constructed through NewItem.
func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// Name returns the item's display name.
func (i Item) Name() string {
	return i.name
}

// Category returns the item's content category.
func (i Item) Category() Category {
	return i.category
}

// DeclaredValue returns the value declared for the item by the sender.
func (i Item) DeclaredValue() float64 {
	return i.declaredValue
}

// WeightKg returns the item's weight in kilograms.
func (i Item) WeightKg() float64 {
	return i.weightKg
}

func (i *Item) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("item name")
	}
	i.name = name
	return nil
}

func (i *Item) setCategory(category Category) error {
	if err := category.Validate(); err != nil {
		return err
	}
	i.category = category
	return nil
}

func (i *Item) setDeclaredValue(declaredValue float64) error {
	if declaredValue < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"declared value",
			fmt.Errorf("%v is negative", declaredValue),
		)
	}
	i.declaredValue = declaredValue
	return nil
}

func (i *Item) setWeightKg(weightKg float64) error {
	if weightKg <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"weight",
			fmt.Errorf("%v is not greater than 0", weightKg),
		)
	}
	i.weightKg = weightKg
	return nil
}
