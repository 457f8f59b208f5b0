package http

import (
	"time"

	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/model/user"
)

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ItemPayload is an item as it crosses the HTTP boundary.
type ItemPayload struct {
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	DeclaredValue float64 `json:"declared_value"`
	WeightKg      float64 `json:"weight_kg"`
}

// RegisterParcelRequest is the body of POST /api/v1/parcels. The owner is
// never part of the request; it is always the authenticated caller.
type RegisterParcelRequest struct {
	SenderName      string        `json:"sender_name"`
	SenderAddress   string        `json:"sender_address"`
	SenderContact   string        `json:"sender_contact"`
	ReceiverName    string        `json:"receiver_name"`
	ReceiverAddress string        `json:"receiver_address"`
	ReceiverContact string        `json:"receiver_contact"`
	Items           []ItemPayload `json:"items"`
}

// UpdateStatusRequest is the body of PUT /api/v1/parcels/:id/status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ParcelResponse is a parcel as returned to clients.
type ParcelResponse struct {
	ID              string        `json:"id"`
	ReferenceNumber string        `json:"reference_number"`
	SenderName      string        `json:"sender_name"`
	SenderAddress   string        `json:"sender_address"`
	SenderContact   string        `json:"sender_contact"`
	ReceiverName    string        `json:"receiver_name"`
	ReceiverAddress string        `json:"receiver_address"`
	ReceiverContact string        `json:"receiver_contact"`
	Items           []ItemPayload `json:"items"`
	Status          string        `json:"status"`
	DriverID        string        `json:"driver_id"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// ProfileResponse is the caller's profile as returned by GET /api/v1/profile.
type ProfileResponse struct {
	ID            string    `json:"id"`
	FullName      string    `json:"full_name"`
	Phone         string    `json:"phone,omitempty"`
	Role          string    `json:"role"`
	VehicleNumber string    `json:"vehicle_number,omitempty"`
	CompanyName   string    `json:"company_name,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func toParcelResponse(p *parcel.Parcel) ParcelResponse {
	items := p.Items()
	payloads := make([]ItemPayload, len(items))
	for i, item := range items {
		payloads[i] = ItemPayload{
			Name:          item.Name(),
			Category:      item.Category().String(),
			DeclaredValue: item.DeclaredValue(),
			WeightKg:      item.WeightKg(),
		}
	}

	return ParcelResponse{
		ID:              p.ID().String(),
		ReferenceNumber: p.ReferenceCode(),
		SenderName:      p.Sender().Name(),
		SenderAddress:   p.Sender().Address(),
		SenderContact:   p.Sender().Contact(),
		ReceiverName:    p.Receiver().Name(),
		ReceiverAddress: p.Receiver().Address(),
		ReceiverContact: p.Receiver().Contact(),
		Items:           payloads,
		Status:          p.Status().String(),
		DriverID:        p.OwnerDriverID().String(),
		CreatedAt:       p.CreatedAt(),
		UpdatedAt:       p.UpdatedAt(),
	}
}

func toParcelResponses(parcels []*parcel.Parcel) []ParcelResponse {
	responses := make([]ParcelResponse, len(parcels))
	for i, p := range parcels {
		responses[i] = toParcelResponse(p)
	}
	return responses
}

func toProfileResponse(profile user.Profile) ProfileResponse {
	return ProfileResponse{
		ID:            profile.ID().String(),
		FullName:      profile.FullName(),
		Phone:         profile.Phone(),
		Role:          profile.Role().String(),
		VehicleNumber: profile.VehicleNumber(),
		CompanyName:   profile.CompanyName(),
		CreatedAt:     profile.CreatedAt(),
	}
}

func (r RegisterParcelRequest) toDomain() (parcel.Party, parcel.Party, []parcel.Item, error) {
	sender, err := parcel.NewParty(r.SenderName, r.SenderAddress, r.SenderContact)
	if err != nil {
		return parcel.Party{}, parcel.Party{}, nil, err
	}
	receiver, err := parcel.NewParty(r.ReceiverName, r.ReceiverAddress, r.ReceiverContact)
	if err != nil {
		return parcel.Party{}, parcel.Party{}, nil, err
	}

	items := make([]parcel.Item, 0, len(r.Items))
	for _, payload := range r.Items {
		category, err := parcel.ParseCategory(payload.Category)
		if err != nil {
			return parcel.Party{}, parcel.Party{}, nil, err
		}
		item, err := parcel.NewItem(payload.Name, category, payload.DeclaredValue, payload.WeightKg)
		if err != nil {
			return parcel.Party{}, parcel.Party{}, nil, err
		}
		items = append(items, item)
	}

	return sender, receiver, items, nil
}
