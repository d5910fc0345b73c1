package model

import (
	"time"
)

// Payment is a partial or full payment applied to a booking.
// Many payments may apply to one booking; their sum nets against the
// booking's computed total to derive the remaining balance.
type Payment struct {
	ID        uint          `json:"id" gorm:"primaryKey"`
	TenantID  uint          `json:"tenant_id" gorm:"index;not null"`
	BookingID uint          `json:"booking_id" gorm:"index;not null"`
	Amount    float64       `json:"amount" gorm:"not null"`
	Method    PaymentMethod `json:"method" gorm:"type:varchar(16);not null;default:'CASH'"`
	CreatedAt time.Time     `json:"created_at"`
}
