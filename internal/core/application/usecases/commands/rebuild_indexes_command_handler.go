package commands

import (
	"context"

	"parceltrack/internal/core/ports"
)

// RebuildIndexesCommandHandler triggers the repository's index
// reconciliation and reports what was rebuilt.
type RebuildIndexesCommandHandler struct {
	parcels ports.ParcelRepository
}

// NewRebuildIndexesCommandHandler creates a handler for index rebuilds.
func NewRebuildIndexesCommandHandler(parcels ports.ParcelRepository) RebuildIndexesCommandHandler {
	return RebuildIndexesCommandHandler{parcels: parcels}
}

// Handle runs the reconciliation pass.
func (h RebuildIndexesCommandHandler) Handle(
	ctx context.Context,
	cmd RebuildIndexesCommand,
) (ports.IndexRebuildReport, error) {
	if err := cmd.Validate(); err != nil {
		return ports.IndexRebuildReport{}, err
	}

	return h.parcels.RebuildIndexes(ctx)
}
