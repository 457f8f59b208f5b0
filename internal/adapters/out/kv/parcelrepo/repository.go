package parcelrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"sort"
	"strings"
	"sync"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/ports"
	"parceltrack/internal/pkg/errs"
)

// maxReferenceAttempts bounds the regenerate-and-retry loop on reference
// code collision before the operation fails with a StorageError.
const maxReferenceAttempts = 3

// driverLockStripes sizes the mutex pool serializing per-driver index appends.
const driverLockStripes = 32

// Repository implements ports.ParcelRepository over a KVStore.
//
// Write ordering in Add follows the recoverability rule: the primary record
// goes in first, so an index-write failure leaves an orphan primary (the
// rebuild pass re-derives its indexes) rather than a dangling index pointing
// at data that never existed.
//
// The driver index append is a read-modify-write against a store with no
// compare-and-swap, so concurrent registrations by the same driver could lose
// an id. Appends are serialized per driver through a striped mutex pool;
// unrelated drivers proceed concurrently.
type Repository struct {
	store       ports.KVStore
	driverLocks [driverLockStripes]sync.Mutex
}

// NewRepository creates a parcel repository over the given store.
func NewRepository(store ports.KVStore) *Repository {
	return &Repository{store: store}
}

// Add persists a new parcel and its secondary indexes.
func (r *Repository) Add(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	id := aggregate.ID().String()

	claimed := false
	for attempt := 0; attempt < maxReferenceAttempts; attempt++ {
		raw, err := json.Marshal(fromDomain(aggregate))
		if err != nil {
			return errs.NewStorageError("marshal parcel", err)
		}

		if err = r.store.Set(ctx, parcelKey(id), raw); err != nil {
			return err
		}

		written, err := r.store.SetIfAbsent(ctx, referenceKey(aggregate.ReferenceCode()), []byte(id))
		if err != nil {
			return err
		}
		if written {
			claimed = true
			break
		}

		// another parcel already owns this code; pick a fresh one and
		// rewrite the primary so record and index always agree
		aggregate.RegenerateReferenceCode()
	}
	if !claimed {
		return errs.NewStorageError(
			"claim reference code",
			fmt.Errorf("could not claim a unique reference code in %d attempts", maxReferenceAttempts),
		)
	}

	return r.appendToDriverIndex(ctx, aggregate.OwnerDriverID(), id)
}

// Update rewrites the primary record of an existing parcel.
func (r *Repository) Update(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	id := aggregate.ID().String()
	_, found, err := r.store.Get(ctx, parcelKey(id))
	if err != nil {
		return err
	}
	if !found {
		return errs.NewObjectNotFoundError("parcelId", id)
	}

	raw, err := json.Marshal(fromDomain(aggregate))
	if err != nil {
		return errs.NewStorageError("marshal parcel", err)
	}
	return r.store.Set(ctx, parcelKey(id), raw)
}

// Get retrieves a parcel by its unique identifier.
func (r *Repository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	raw, found, err := r.store.Get(ctx, parcelKey(id.String()))
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errs.NewObjectNotFoundError("parcelId", id.String())
	}

	aggregate, err := decodeParcel(raw)
	if err != nil {
		return nil, errs.NewStorageError(fmt.Sprintf("decode %s", parcelKey(id.String())), err)
	}
	return aggregate, nil
}

// GetByReference resolves a tracking code to its parcel.
func (r *Repository) GetByReference(ctx context.Context, referenceCode string) (*parcel.Parcel, error) {
	if err := parcel.ValidateReferenceCode(referenceCode); err != nil {
		return nil, err
	}

	rawID, found, err := r.store.Get(ctx, referenceKey(referenceCode))
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errs.NewObjectNotFoundError("referenceCode", referenceCode)
	}

	id := string(rawID)
	raw, found, err := r.store.Get(ctx, parcelKey(id))
	if err != nil {
		return nil, err
	}
	if !found {
		// the index resolved but the primary is gone: data corruption,
		// surfaced distinctly from an ordinary miss
		return nil, errs.NewInconsistentStateError(referenceKey(referenceCode), parcelKey(id))
	}

	aggregate, err := decodeParcel(raw)
	if err != nil {
		return nil, errs.NewStorageError(fmt.Sprintf("decode %s", parcelKey(id)), err)
	}
	return aggregate, nil
}

// ListForDriver returns a driver's parcels in registration order. Ids whose
// primary record is missing are skipped to tolerate eventual-consistency lag.
func (r *Repository) ListForDriver(ctx context.Context, driverID kernel.UUID) ([]*parcel.Parcel, error) {
	if err := driverID.Validate(); err != nil {
		return nil, err
	}

	ids, err := r.readDriverIndex(ctx, driverID.String())
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*parcel.Parcel{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = parcelKey(id)
	}

	values, err := r.store.MGet(ctx, keys)
	if err != nil {
		return nil, err
	}

	parcels := make([]*parcel.Parcel, 0, len(values))
	for i, raw := range values {
		if raw == nil {
			continue
		}
		aggregate, decodeErr := decodeParcel(raw)
		if decodeErr != nil {
			return nil, errs.NewStorageError(fmt.Sprintf("decode %s", keys[i]), decodeErr)
		}
		parcels = append(parcels, aggregate)
	}
	return parcels, nil
}

// ListAll returns every parcel in the store. Non-parcel entries sharing the
// key namespace (reference index entries, foreign documents) are filtered
// out, since the store enforces no schema.
func (r *Repository) ListAll(ctx context.Context) ([]*parcel.Parcel, error) {
	pairs, err := r.store.GetByPrefix(ctx, parcelKeyPrefix)
	if err != nil {
		return nil, err
	}

	parcels := make([]*parcel.Parcel, 0, len(pairs))
	for _, pair := range pairs {
		if strings.HasPrefix(pair.Key, referenceKeyPrefix) {
			continue
		}
		aggregate, decodeErr := decodeParcel(pair.Value)
		if decodeErr != nil {
			continue
		}
		parcels = append(parcels, aggregate)
	}
	return parcels, nil
}

// RebuildIndexes re-derives both secondary indexes from the primary records.
// Existing index entries are overwritten; driver lists are rebuilt in
// registration order. Intended as an operational repair tool.
func (r *Repository) RebuildIndexes(ctx context.Context) (ports.IndexRebuildReport, error) {
	report := ports.IndexRebuildReport{}

	pairs, err := r.store.GetByPrefix(ctx, parcelKeyPrefix)
	if err != nil {
		return report, err
	}

	byDriver := make(map[string][]*parcel.Parcel)
	for _, pair := range pairs {
		if strings.HasPrefix(pair.Key, referenceKeyPrefix) {
			continue
		}
		aggregate, decodeErr := decodeParcel(pair.Value)
		if decodeErr != nil {
			report.SkippedNonParcels++
			continue
		}
		report.ParcelsScanned++

		id := aggregate.ID().String()
		if err = r.store.Set(ctx, referenceKey(aggregate.ReferenceCode()), []byte(id)); err != nil {
			return report, err
		}
		report.ReferenceIndexes++

		driverID := aggregate.OwnerDriverID().String()
		byDriver[driverID] = append(byDriver[driverID], aggregate)
	}

	for driverID, parcels := range byDriver {
		sort.Slice(parcels, func(i, j int) bool {
			if parcels[i].CreatedAt().Equal(parcels[j].CreatedAt()) {
				return parcels[i].ID().String() < parcels[j].ID().String()
			}
			return parcels[i].CreatedAt().Before(parcels[j].CreatedAt())
		})

		ids := make([]string, len(parcels))
		for i, aggregate := range parcels {
			ids[i] = aggregate.ID().String()
		}
		raw, marshalErr := json.Marshal(ids)
		if marshalErr != nil {
			return report, errs.NewStorageError("marshal driver index", marshalErr)
		}
		if err = r.store.Set(ctx, driverParcelsKey(driverID), raw); err != nil {
			return report, err
		}
		report.DriverListsBuilt++
	}

	return report, nil
}

func (r *Repository) readDriverIndex(ctx context.Context, driverID string) ([]string, error) {
	raw, found, err := r.store.Get(ctx, driverParcelsKey(driverID))
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	var ids []string
	if err = json.Unmarshal(raw, &ids); err != nil {
		return nil, errs.NewStorageError(fmt.Sprintf("decode %s", driverParcelsKey(driverID)), err)
	}
	return ids, nil
}

func (r *Repository) appendToDriverIndex(ctx context.Context, driverID kernel.UUID, parcelID string) error {
	lock := r.driverLock(driverID.String())
	lock.Lock()
	defer lock.Unlock()

	ids, err := r.readDriverIndex(ctx, driverID.String())
	if err != nil {
		return err
	}

	ids = append(ids, parcelID)
	raw, err := json.Marshal(ids)
	if err != nil {
		return errs.NewStorageError("marshal driver index", err)
	}
	return r.store.Set(ctx, driverParcelsKey(driverID.String()), raw)
}

func (r *Repository) driverLock(driverID string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(driverID))
	return &r.driverLocks[h.Sum32()%driverLockStripes]
}
