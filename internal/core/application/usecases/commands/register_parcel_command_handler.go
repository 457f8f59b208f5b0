package commands

import (
	"context"

	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/core/ports"
)

// RegisterParcelCommandHandler handles the business logic for parcel
// registration. The access gate is consulted before any domain object is
// built, and the aggregate is fully constructed and validated before the
// first store write.
type RegisterParcelCommandHandler struct {
	gate    services.AccessGate
	parcels ports.ParcelRepository
}

// NewRegisterParcelCommandHandler creates a handler for parcel registration.
func NewRegisterParcelCommandHandler(
	gate services.AccessGate,
	parcels ports.ParcelRepository,
) RegisterParcelCommandHandler {
	return RegisterParcelCommandHandler{
		gate:    gate,
		parcels: parcels,
	}
}

// Handle processes the registration command and returns the registered
// parcel, including its generated reference code. The parcel's owner is the
// caller; any other ownership is unrepresentable at this level.
func (h RegisterParcelCommandHandler) Handle(
	ctx context.Context,
	cmd RegisterParcelCommand,
) (*parcel.Parcel, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if err := h.gate.AuthorizeCreateParcel(cmd.Caller()); err != nil {
		return nil, err
	}

	registered, err := parcel.NewParcel(
		cmd.ParcelID(),
		cmd.Caller().ID,
		cmd.Sender(),
		cmd.Receiver(),
		cmd.Items(),
	)
	if err != nil {
		return nil, err
	}

	if err := h.parcels.Add(ctx, registered); err != nil {
		return nil, err
	}

	return registered, nil
}
