package queries

import (
	"context"

	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/core/ports"
	"parceltrack/internal/pkg/errs"
)

// ListParcelsQueryHandler serves the role-scoped parcel listing. The scope is
// decided here, server side; there is no way for a caller to request a wider
// scope than their role grants.
type ListParcelsQueryHandler struct {
	gate    services.AccessGate
	parcels ports.ParcelRepository
}

// NewListParcelsQueryHandler creates a handler for parcel listings.
func NewListParcelsQueryHandler(
	gate services.AccessGate,
	parcels ports.ParcelRepository,
) ListParcelsQueryHandler {
	return ListParcelsQueryHandler{
		gate:    gate,
		parcels: parcels,
	}
}

// Handle executes the listing for the caller's role.
func (h ListParcelsQueryHandler) Handle(
	ctx context.Context,
	query ListParcelsQuery,
) ([]*parcel.Parcel, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	caller := query.Caller()
	switch caller.Role {
	case user.RoleDriver:
		if err := h.gate.AuthorizeListForDriver(caller, caller.ID); err != nil {
			return nil, err
		}
		return h.parcels.ListForDriver(ctx, caller.ID)
	case user.RoleOfficial:
		if err := h.gate.AuthorizeListAll(caller); err != nil {
			return nil, err
		}
		return h.parcels.ListAll(ctx)
	default:
		return nil, errs.NewUnauthenticatedError("caller has no recognized role")
	}
}
