package services

import (
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/errs"
)

// Operation identifies a repository operation gated by the access rules.
type Operation string

const (
	// OpCreateParcel registers a new parcel on behalf of the caller.
	OpCreateParcel Operation = "createParcel"

	// OpGetByReference looks a parcel up by its tracking code.
	OpGetByReference Operation = "getByReference"

	// OpListForDriver lists one driver's parcels in registration order.
	OpListForDriver Operation = "listForDriver"

	// OpListAll lists every parcel in the system.
	OpListAll Operation = "listAll"

	// OpUpdateStatus moves a parcel forward in its lifecycle.
	OpUpdateStatus Operation = "updateStatus"
)

// AccessGate is a pure decision service that answers whether a caller may
// perform an operation, and against which target. It holds no state and never
// touches storage: callers hand it the identity and, where ownership matters,
// the owner of the targeted record.
//
// Rules:
//   - createParcel: drivers only; the created record's owner is always the
//     caller, regardless of any client-supplied value
//   - listForDriver: drivers only, restricted to their own id
//   - listAll: officials only
//   - getByReference: officials and drivers; the reference code itself is the
//     shared lookup token, so driver results are not scoped to ownership
//   - updateStatus: officials, or the driver who owns the parcel
//
// A caller without a valid identity is denied with Unauthenticated before any
// role is considered.
type AccessGate struct{}

// NewAccessGate creates a new AccessGate instance.
func NewAccessGate() AccessGate {
	return AccessGate{}
}

// AuthorizeCreateParcel decides whether the caller may register a parcel.
func (g AccessGate) AuthorizeCreateParcel(caller user.Caller) error {
	if err := g.authenticate(caller); err != nil {
		return err
	}
	if caller.Role != user.RoleDriver {
		return errs.NewUnauthorizedError(string(OpCreateParcel), "only drivers can register parcels")
	}
	return nil
}

// AuthorizeGetByReference decides whether the caller may look up a parcel by
// its tracking code.
func (g AccessGate) AuthorizeGetByReference(caller user.Caller) error {
	return g.authenticate(caller)
}

// AuthorizeListForDriver decides whether the caller may list the parcels of
// the given driver. A driver requesting another driver's list is denied.
func (g AccessGate) AuthorizeListForDriver(caller user.Caller, driverID kernel.UUID) error {
	if err := g.authenticate(caller); err != nil {
		return err
	}
	if caller.Role != user.RoleDriver {
		return errs.NewUnauthorizedError(string(OpListForDriver), "only drivers have a personal parcel list")
	}
	if !caller.ID.IsEqual(driverID) {
		return errs.NewUnauthorizedError(string(OpListForDriver), "drivers can only list their own parcels")
	}
	return nil
}

// AuthorizeListAll decides whether the caller may list every parcel.
func (g AccessGate) AuthorizeListAll(caller user.Caller) error {
	if err := g.authenticate(caller); err != nil {
		return err
	}
	if caller.Role != user.RoleOfficial {
		return errs.NewUnauthorizedError(string(OpListAll), "only officials can list all parcels")
	}
	return nil
}

// AuthorizeUpdateStatus decides whether the caller may change the status of a
// parcel owned by ownerDriverID. Officials may always; a driver only for
// their own parcel.
func (g AccessGate) AuthorizeUpdateStatus(caller user.Caller, ownerDriverID kernel.UUID) error {
	if err := g.authenticate(caller); err != nil {
		return err
	}
	if caller.Role == user.RoleOfficial {
		return nil
	}
	if caller.Role == user.RoleDriver && caller.ID.IsEqual(ownerDriverID) {
		return nil
	}
	return errs.NewUnauthorizedError(string(OpUpdateStatus), "only officials or the owning driver can update status")
}

func (g AccessGate) authenticate(caller user.Caller) error {
	if err := caller.Validate(); err != nil {
		return errs.NewUnauthenticatedErrorWithCause("caller has no valid identity", err)
	}
	return nil
}
