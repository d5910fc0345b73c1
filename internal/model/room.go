package model

import (
	"time"
)

// Room represents a kennel room (a shared run, not an exclusive unit).
// Capacity is informational current occupancy; MaxCapacity is the hard
// cap used for occupancy coloring.
type Room struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	TenantID    uint      `json:"tenant_id" gorm:"index;not null"`
	Name        string    `json:"name" gorm:"type:varchar(100);not null"`
	DisplayName string    `json:"display_name" gorm:"type:varchar(100)"`
	Capacity    int       `json:"capacity" gorm:"default:0"`
	MaxCapacity int       `json:"max_capacity" gorm:"default:1"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
