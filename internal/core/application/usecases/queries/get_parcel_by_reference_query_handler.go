package queries

import (
	"context"

	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/core/ports"
)

// GetParcelByReferenceQueryHandler resolves tracking codes for authenticated
// callers.
type GetParcelByReferenceQueryHandler struct {
	gate    services.AccessGate
	parcels ports.ParcelRepository
}

// NewGetParcelByReferenceQueryHandler creates a handler for reference lookups.
func NewGetParcelByReferenceQueryHandler(
	gate services.AccessGate,
	parcels ports.ParcelRepository,
) GetParcelByReferenceQueryHandler {
	return GetParcelByReferenceQueryHandler{
		gate:    gate,
		parcels: parcels,
	}
}

// Handle executes the lookup. A code with no index entry is reported as not
// found; an index entry pointing at a missing record surfaces as an
// inconsistency, not a not-found, so the difference stays observable.
func (h GetParcelByReferenceQueryHandler) Handle(
	ctx context.Context,
	query GetParcelByReferenceQuery,
) (*parcel.Parcel, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if err := h.gate.AuthorizeGetByReference(query.Caller()); err != nil {
		return nil, err
	}

	return h.parcels.GetByReference(ctx, query.ReferenceCode())
}
