package ports

import (
	"context"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
)

// IndexRebuildReport summarizes one reconciliation pass over the parcel
// key namespace.
type IndexRebuildReport struct {
	ParcelsScanned    int
	ReferenceIndexes  int
	DriverListsBuilt  int
	SkippedNonParcels int
}

// ParcelRepository defines the persistence contract for parcel aggregates.
// Implementations maintain the secondary indexes (by reference code, by
// owning driver) in lock-step with the primary record; the indexes are never
// the source of truth.
type ParcelRepository interface {
	// Add persists a new parcel and its index entries. The primary record is
	// written first so an index-write failure leaves a recoverable orphan
	// primary rather than a dangling index. A reference code collision is
	// resolved by regenerating the code a bounded number of times.
	Add(ctx context.Context, aggregate *parcel.Parcel) error

	// Update rewrites the primary record of an existing parcel.
	Update(ctx context.Context, aggregate *parcel.Parcel) error

	// Get retrieves a parcel by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error)

	// GetByReference resolves a tracking code to its parcel. A missing index
	// entry or primary is ObjectNotFound; an index entry pointing at a
	// missing primary is InconsistentState.
	GetByReference(ctx context.Context, referenceCode string) (*parcel.Parcel, error)

	// ListForDriver returns a driver's parcels in registration order.
	// Ids whose primary record is missing are skipped, not fatal.
	ListForDriver(ctx context.Context, driverID kernel.UUID) ([]*parcel.Parcel, error)

	// ListAll returns every parcel, filtering out non-parcel entries that
	// share the key namespace.
	ListAll(ctx context.Context) ([]*parcel.Parcel, error)

	// RebuildIndexes scans the primary records and rewrites both secondary
	// indexes from scratch. An operational repair tool, not a hot-path call.
	RebuildIndexes(ctx context.Context) (IndexRebuildReport, error)
}
