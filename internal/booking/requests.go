package booking

import (
	"errors"
	"fmt"
	"time"

	"kennel-service/internal/model"
	"kennel-service/internal/pricing"
)

// ErrValidation marks malformed input caught before any write.
// Handlers translate it to a 400.
var ErrValidation = errors.New("validation error")

// DogAssignment pairs an existing dog with its assigned room
type DogAssignment struct {
	DogID  uint `json:"dog_id"`
	RoomID uint `json:"room_id"`
}

// NewDog describes a dog to create alongside a new-client booking
type NewDog struct {
	Name         string `json:"name"`
	Breed        string `json:"breed"`
	SpecialNeeds string `json:"special_needs"`
	RoomID       uint   `json:"room_id"`
}

// CreateRequest is the booking creation payload. It is a tagged
// union: IsNewClient selects between the new-client variant (owner
// fields plus NewDogs) and the existing-client variant (OwnerID plus
// Dogs). Each variant has its own required-field set, checked by
// Validate before anything is written.
type CreateRequest struct {
	IsNewClient bool `json:"is_new_client"`

	// New-client variant
	OwnerName    string   `json:"owner_name,omitempty"`
	OwnerPhone   string   `json:"owner_phone,omitempty"`
	OwnerEmail   string   `json:"owner_email,omitempty"`
	OwnerAddress string   `json:"owner_address,omitempty"`
	NewDogs      []NewDog `json:"new_dogs,omitempty"`

	// Existing-client variant
	OwnerID uint            `json:"owner_id,omitempty"`
	Dogs    []DogAssignment `json:"dogs,omitempty"`

	// Shared by every created row
	StartDate     time.Time           `json:"start_date"`
	EndDate       time.Time           `json:"end_date"`
	Status        model.BookingStatus `json:"status,omitempty"`
	PriceType     model.PriceType     `json:"price_type"`
	PricePerDay   *float64            `json:"price_per_day,omitempty"`
	TotalPrice    *float64            `json:"total_price,omitempty"`
	PaymentMethod model.PaymentMethod `json:"payment_method"`
	ExemptLastDay bool                `json:"exempt_last_day"`
}

// DogCount returns the number of bookings the request will create
func (r *CreateRequest) DogCount() int {
	if r.IsNewClient {
		return len(r.NewDogs)
	}
	return len(r.Dogs)
}

// Validate checks the shared fields and the active variant's required
// fields. It wraps ErrValidation so callers can classify the failure.
func (r *CreateRequest) Validate() error {
	if r.StartDate.IsZero() || r.EndDate.IsZero() {
		return fmt.Errorf("%w: start_date and end_date are required", ErrValidation)
	}
	if pricing.DateOnly(r.EndDate).Before(pricing.DateOnly(r.StartDate)) {
		return fmt.Errorf("%w: end_date must not be before start_date", ErrValidation)
	}

	switch r.Status {
	case "", model.BookingStatusPending, model.BookingStatusConfirmed:
	default:
		return fmt.Errorf("%w: bookings can only be created as PENDING or CONFIRMED", ErrValidation)
	}

	switch r.PriceType {
	case model.PriceTypeDaily, model.PriceTypeFixed:
	default:
		return fmt.Errorf("%w: price_type must be DAILY or FIXED", ErrValidation)
	}

	if r.IsNewClient {
		if r.OwnerName == "" || r.OwnerPhone == "" {
			return fmt.Errorf("%w: owner_name and owner_phone are required for a new client", ErrValidation)
		}
		if len(r.NewDogs) == 0 {
			return fmt.Errorf("%w: at least one dog is required", ErrValidation)
		}
		for i, d := range r.NewDogs {
			if d.Name == "" {
				return fmt.Errorf("%w: new_dogs[%d] is missing a name", ErrValidation, i)
			}
			if d.RoomID == 0 {
				return fmt.Errorf("%w: new_dogs[%d] is missing a room assignment", ErrValidation, i)
			}
		}
		return nil
	}

	if r.OwnerID == 0 {
		return fmt.Errorf("%w: owner_id is required for an existing client", ErrValidation)
	}
	if len(r.Dogs) == 0 {
		return fmt.Errorf("%w: at least one dog is required", ErrValidation)
	}
	for i, d := range r.Dogs {
		if d.DogID == 0 || d.RoomID == 0 {
			return fmt.Errorf("%w: dogs[%d] needs both dog_id and room_id", ErrValidation, i)
		}
	}
	return nil
}

// Patch is the whitelist of fields an update may touch. Unrecognized
// payload fields never reach the row. Note is free text carried into
// the confirmation or cancellation email only.
type Patch struct {
	RoomID        *uint                `json:"room_id,omitempty"`
	Status        *model.BookingStatus `json:"status,omitempty"`
	PriceType     *model.PriceType     `json:"price_type,omitempty"`
	PricePerDay   *float64             `json:"price_per_day,omitempty"`
	ExemptLastDay *bool                `json:"exempt_last_day,omitempty"`
	StartDate     *time.Time           `json:"start_date,omitempty"`
	EndDate       *time.Time           `json:"end_date,omitempty"`
	Note          *string              `json:"note,omitempty"`
}

// touchesPricing reports whether the patch changes any input of the
// total price computation.
func (p *Patch) touchesPricing() bool {
	return p.PriceType != nil || p.PricePerDay != nil ||
		p.ExemptLastDay != nil || p.StartDate != nil || p.EndDate != nil
}
