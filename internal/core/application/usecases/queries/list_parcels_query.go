package queries

import (
	"errors"

	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/guard"
)

var ErrListParcelsQueryIsNotConstructed = errors.New(
	"ListParcelsQuery must be created via NewListParcelsQuery constructor",
)

// ListParcelsQuery lists the parcels visible to the caller. The scope follows
// the caller's role: a driver sees their own parcels in registration order,
// an official sees every parcel in the system.
type ListParcelsQuery struct { //nolint:recvcheck //using for validation
	caller user.Caller

	guard guard.ConstructorGuard
}

// NewListParcelsQuery creates a query for the caller's visible parcels.
func NewListParcelsQuery(caller user.Caller) (ListParcelsQuery, error) {
	query := ListParcelsQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setCaller(caller); err != nil {
		return ListParcelsQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q ListParcelsQuery) Validate() error {
	return q.guard.Validate(ErrListParcelsQueryIsNotConstructed)
}

// Caller returns the authenticated identity whose visible parcels are listed.
func (q ListParcelsQuery) Caller() user.Caller {
	return q.caller
}

func (q *ListParcelsQuery) setCaller(caller user.Caller) error {
	if err := caller.Validate(); err != nil {
		return err
	}
	q.caller = caller
	return nil
}
