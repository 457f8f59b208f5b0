// Package parcelrepo implements the ParcelRepository port on top of the
// KVStore contract, maintaining the parcel key namespace:
//
//	parcel:{id}            primary record (JSON document)
//	parcel:ref:{code}      reference index, value is the raw parcel id
//	driver:{id}:parcels    JSON array of parcel ids in registration order
//
// The indexes are derived structures; the primary records are the only
// source of truth and the indexes can always be rebuilt from them.
package parcelrepo

import (
	"encoding/json"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
)

const (
	parcelKeyPrefix    = "parcel:"
	referenceKeyPrefix = "parcel:ref:"
)

func parcelKey(id string) string {
	return parcelKeyPrefix + id
}

func referenceKey(code string) string {
	return referenceKeyPrefix + code
}

func driverParcelsKey(driverID string) string {
	return "driver:" + driverID + ":parcels"
}

// ItemDTO is the stored representation of one parcel item.
type ItemDTO struct {
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	DeclaredValue float64 `json:"declared_value"`
	WeightKg      float64 `json:"weight_kg"`
}

// ParcelDTO is the JSON document stored under parcel:{id}.
type ParcelDTO struct {
	ID              string    `json:"id"`
	ReferenceNumber string    `json:"reference_number"`
	SenderName      string    `json:"sender_name"`
	SenderAddress   string    `json:"sender_address"`
	SenderContact   string    `json:"sender_contact"`
	ReceiverName    string    `json:"receiver_name"`
	ReceiverAddress string    `json:"receiver_address"`
	ReceiverContact string    `json:"receiver_contact"`
	Items           []ItemDTO `json:"items"`
	Status          string    `json:"status"`
	DriverID        string    `json:"driver_id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// fromDomain converts a parcel aggregate to its stored representation.
func fromDomain(aggregate *parcel.Parcel) ParcelDTO {
	items := aggregate.Items()
	itemDTOs := make([]ItemDTO, len(items))
	for i, item := range items {
		itemDTOs[i] = ItemDTO{
			Name:          item.Name(),
			Category:      item.Category().String(),
			DeclaredValue: item.DeclaredValue(),
			WeightKg:      item.WeightKg(),
		}
	}

	return ParcelDTO{
		ID:              aggregate.ID().String(),
		ReferenceNumber: aggregate.ReferenceCode(),
		SenderName:      aggregate.Sender().Name(),
		SenderAddress:   aggregate.Sender().Address(),
		SenderContact:   aggregate.Sender().Contact(),
		ReceiverName:    aggregate.Receiver().Name(),
		ReceiverAddress: aggregate.Receiver().Address(),
		ReceiverContact: aggregate.Receiver().Contact(),
		Items:           itemDTOs,
		Status:          aggregate.Status().String(),
		DriverID:        aggregate.OwnerDriverID().String(),
		CreatedAt:       aggregate.CreatedAt(),
		UpdatedAt:       aggregate.UpdatedAt(),
	}
}

// toDomain reconstructs a parcel aggregate from its stored representation.
// Every structural invariant is re-validated, so a corrupt document fails
// here rather than deeper in the system.
func toDomain(dto ParcelDTO) (*parcel.Parcel, error) {
	id, err := kernel.UUIDFromString(dto.ID)
	if err != nil {
		return nil, err
	}

	driverID, err := kernel.UUIDFromString(dto.DriverID)
	if err != nil {
		return nil, err
	}

	sender, err := parcel.NewParty(dto.SenderName, dto.SenderAddress, dto.SenderContact)
	if err != nil {
		return nil, err
	}

	receiver, err := parcel.NewParty(dto.ReceiverName, dto.ReceiverAddress, dto.ReceiverContact)
	if err != nil {
		return nil, err
	}

	items := make([]parcel.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		category, categoryErr := parcel.ParseCategory(itemDTO.Category)
		if categoryErr != nil {
			return nil, categoryErr
		}
		item, itemErr := parcel.NewItem(itemDTO.Name, category, itemDTO.DeclaredValue, itemDTO.WeightKg)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	status, err := parcel.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return parcel.RestoreParcel(
		id, dto.ReferenceNumber, driverID,
		sender, receiver, items,
		status, dto.CreatedAt, dto.UpdatedAt,
	)
}

// decodeParcel unmarshals and reconstructs a stored parcel document.
func decodeParcel(raw []byte) (*parcel.Parcel, error) {
	var dto ParcelDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return nil, err
	}
	return toDomain(dto)
}
