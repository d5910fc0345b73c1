package model

import (
	"time"
)

// Tenant represents a single kennel business account.
// This is the root of data isolation: every other entity carries a
// tenant_id that must match the caller's resolved tenant.
type Tenant struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(100);not null"`
	Subdomain string    `json:"subdomain" gorm:"type:varchar(63);uniqueIndex"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
