package model

import (
	"time"
)

// NotificationTrigger identifies which booking event a template or a
// scheduled send belongs to
type NotificationTrigger string

const (
	TriggerBookingConfirmation NotificationTrigger = "booking_confirmation"
	TriggerCheckInReminder     NotificationTrigger = "check_in_reminder"
	TriggerCheckOutReminder    NotificationTrigger = "check_out_reminder"
	TriggerBookingCancelled    NotificationTrigger = "booking_cancelled"
)

// NotificationTemplate defines a tenant's message template for a trigger
type NotificationTemplate struct {
	ID        uint                `json:"id" gorm:"primaryKey"`
	TenantID  uint                `json:"tenant_id" gorm:"index;not null"`
	Trigger   NotificationTrigger `json:"trigger" gorm:"type:varchar(32);not null"`
	Subject   string              `json:"subject" gorm:"type:varchar(255)"`
	Body      string              `json:"body" gorm:"type:text"`
	Active    bool                `json:"active" gorm:"default:true"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// ScheduledNotification is a per-booking pending send, consumed by the
// external notification pipeline. Rows are deleted before their booking.
type ScheduledNotification struct {
	ID        uint                `json:"id" gorm:"primaryKey"`
	TenantID  uint                `json:"tenant_id" gorm:"index;not null"`
	BookingID uint                `json:"booking_id" gorm:"index;not null"`
	Trigger   NotificationTrigger `json:"trigger" gorm:"type:varchar(32);not null"`
	SendAt    time.Time           `json:"send_at"`
	Sent      bool                `json:"sent" gorm:"default:false"`
	CreatedAt time.Time           `json:"created_at"`
}
