package commands

import (
	"context"

	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/core/ports"
)

// UpdateParcelStatusCommandHandler handles parcel lifecycle transitions.
// The parcel is loaded first so the access decision can take ownership into
// account; the transition rules themselves live on the aggregate.
type UpdateParcelStatusCommandHandler struct {
	gate    services.AccessGate
	parcels ports.ParcelRepository
}

// NewUpdateParcelStatusCommandHandler creates a handler for status updates.
func NewUpdateParcelStatusCommandHandler(
	gate services.AccessGate,
	parcels ports.ParcelRepository,
) UpdateParcelStatusCommandHandler {
	return UpdateParcelStatusCommandHandler{
		gate:    gate,
		parcels: parcels,
	}
}

// Handle processes the status update command and returns the updated parcel.
// An unknown parcel id is reported as not found before any access decision,
// matching the repository's behavior for reads.
func (h UpdateParcelStatusCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateParcelStatusCommand,
) (*parcel.Parcel, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	target, err := h.parcels.Get(ctx, cmd.ParcelID())
	if err != nil {
		return nil, err
	}

	if err := h.gate.AuthorizeUpdateStatus(cmd.Caller(), target.OwnerDriverID()); err != nil {
		return nil, err
	}

	if err := target.ChangeStatus(cmd.Next()); err != nil {
		return nil, err
	}

	if err := h.parcels.Update(ctx, target); err != nil {
		return nil, err
	}

	return target, nil
}
