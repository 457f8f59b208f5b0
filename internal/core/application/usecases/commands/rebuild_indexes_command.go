package commands

import (
	"errors"

	"parceltrack/internal/pkg/guard"
)

var ErrRebuildIndexesCommandIsNotConstructed = errors.New(
	"RebuildIndexesCommand must be created via NewRebuildIndexesCommand constructor",
)

// RebuildIndexesCommand requests a reconciliation pass that re-derives the
// reference and driver indexes from the primary parcel records. It is an
// operational command, issued by the scheduled repair job rather than by a
// user-facing boundary, so it carries no caller identity.
type RebuildIndexesCommand struct {
	guard guard.ConstructorGuard
}

// NewRebuildIndexesCommand creates a command to rebuild the secondary indexes.
func NewRebuildIndexesCommand() RebuildIndexesCommand {
	return RebuildIndexesCommand{guard: guard.NewConstructorGuard()}
}

// Validate ensures the command was created through the constructor.
func (c RebuildIndexesCommand) Validate() error {
	return c.guard.Validate(ErrRebuildIndexesCommandIsNotConstructed)
}
