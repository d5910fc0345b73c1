package model

import (
	"time"
)

// Owner represents a client of the kennel (a dog owner)
type Owner struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	TenantID  uint      `json:"tenant_id" gorm:"index;not null"`
	Name      string    `json:"name" gorm:"type:varchar(100);not null"`
	Phone     string    `json:"phone" gorm:"type:varchar(32);not null"`
	Email     string    `json:"email" gorm:"type:varchar(255)"`
	Address   string    `json:"address" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Dogs []Dog `json:"dogs,omitempty" gorm:"foreignKey:OwnerID"`
}
