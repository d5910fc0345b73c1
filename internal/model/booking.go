package model

import (
	"time"
)

// BookingStatus is the booking lifecycle state.
// PENDING -> CONFIRMED and PENDING|CONFIRMED -> CANCELLED are the only
// transitions with side effects; CANCELLED is terminal.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// PriceType selects between a per-day rate and a flat total
type PriceType string

const (
	PriceTypeDaily PriceType = "DAILY"
	PriceTypeFixed PriceType = "FIXED"
)

// PaymentMethod is the payment channel agreed at booking time
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodCreditCard   PaymentMethod = "CREDIT_CARD"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodBit          PaymentMethod = "BIT"
)

// Booking reserves one dog in one room for an inclusive date range.
// StartDate and EndDate are calendar boundaries stored as timestamps;
// a non-midnight EndDate time means the dog is present for part of the
// departure day. ExemptLastDay excludes the final calendar day from
// both day-count pricing and occupancy.
type Booking struct {
	ID            uint          `json:"id" gorm:"primaryKey"`
	TenantID      uint          `json:"tenant_id" gorm:"index;not null"`
	DogID         uint          `json:"dog_id" gorm:"index;not null"`
	OwnerID       uint          `json:"owner_id" gorm:"index;not null"`
	RoomID        uint          `json:"room_id" gorm:"index;not null"`
	StartDate     time.Time     `json:"start_date" gorm:"index;not null"`
	EndDate       time.Time     `json:"end_date" gorm:"index;not null"`
	Status        BookingStatus `json:"status" gorm:"type:varchar(16);not null;default:'PENDING';index"`
	PriceType     PriceType     `json:"price_type" gorm:"type:varchar(8);not null;default:'DAILY'"`
	PricePerDay   *float64      `json:"price_per_day"`
	TotalPrice    *float64      `json:"total_price"`
	PaymentMethod PaymentMethod `json:"payment_method" gorm:"type:varchar(16);not null;default:'CASH'"`
	ExemptLastDay bool          `json:"exempt_last_day" gorm:"default:false"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`

	// Relations
	Dog      *Dog      `json:"dog,omitempty" gorm:"foreignKey:DogID"`
	Owner    *Owner    `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Room     *Room     `json:"room,omitempty" gorm:"foreignKey:RoomID"`
	Payments []Payment `json:"payments,omitempty" gorm:"foreignKey:BookingID"`
}
