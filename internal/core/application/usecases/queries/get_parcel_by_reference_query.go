// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Reads go through the parcel repository rather than a separate read store;
// the key-value layout already serves each query with a single lookup.
package queries

import (
	"errors"

	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/guard"
)

var ErrGetParcelByReferenceQueryIsNotConstructed = errors.New(
	"GetParcelByReferenceQuery must be created via NewGetParcelByReferenceQuery constructor",
)

// GetParcelByReferenceQuery resolves a tracking code to its parcel. The
// reference code is the shared lookup token: anyone authenticated who holds
// it may resolve it, so the result is not scoped to ownership.
//
// Example:
//
//	query, err := NewGetParcelByReferenceQuery(caller, "NEWDAY-MBXK2T1A-7QHV")
//	if err != nil {
//	    return fmt.Errorf("invalid tracking code: %w", err)
//	}
//
//	found, err := handler.Handle(ctx, query)
type GetParcelByReferenceQuery struct { //nolint:recvcheck //using for validation
	caller        user.Caller
	referenceCode string

	guard guard.ConstructorGuard
}

// NewGetParcelByReferenceQuery creates a query to look a parcel up by its
// tracking code. The code must match the generator's format.
func NewGetParcelByReferenceQuery(caller user.Caller, referenceCode string) (GetParcelByReferenceQuery, error) {
	query := GetParcelByReferenceQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		query.setCaller(caller),
		query.setReferenceCode(referenceCode),
	); err != nil {
		return GetParcelByReferenceQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetParcelByReferenceQuery) Validate() error {
	return q.guard.Validate(ErrGetParcelByReferenceQueryIsNotConstructed)
}

// Caller returns the authenticated identity performing the lookup.
func (q GetParcelByReferenceQuery) Caller() user.Caller {
	return q.caller
}

// ReferenceCode returns the tracking code to resolve.
func (q GetParcelByReferenceQuery) ReferenceCode() string {
	return q.referenceCode
}

func (q *GetParcelByReferenceQuery) setCaller(caller user.Caller) error {
	if err := caller.Validate(); err != nil {
		return err
	}
	q.caller = caller
	return nil
}

func (q *GetParcelByReferenceQuery) setReferenceCode(referenceCode string) error {
	if err := parcel.ValidateReferenceCode(referenceCode); err != nil {
		return err
	}
	q.referenceCode = referenceCode
	return nil
}
