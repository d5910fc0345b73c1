package model

import (
	"time"
)

// Dog represents a boarded dog. CurrentRoomID holds the most recent
// room assignment and is overwritten whenever a new booking touches
// the dog; it is not a historical record.
type Dog struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	TenantID      uint      `json:"tenant_id" gorm:"index;not null"`
	OwnerID       uint      `json:"owner_id" gorm:"index;not null"`
	Name          string    `json:"name" gorm:"type:varchar(100);not null"`
	Breed         string    `json:"breed" gorm:"type:varchar(100)"`
	SpecialNeeds  string    `json:"special_needs" gorm:"type:text"`
	CurrentRoomID *uint     `json:"current_room_id" gorm:"index"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Relations
	Owner *Owner `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
}
