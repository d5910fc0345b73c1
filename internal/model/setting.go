package model

import (
	"time"
)

// Well-known setting keys
const (
	SettingKennelName   = "kennel_name"
	SettingCurrency     = "currency"
	SettingLanguage     = "language"
	SettingDefaultPrice = "default_price_per_day"
)

// Setting is a tenant-scoped key/value pair (display name, currency,
// pricing defaults, messaging credentials)
type Setting struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	TenantID  uint      `json:"tenant_id" gorm:"uniqueIndex:idx_settings_tenant_key;not null"`
	Key       string    `json:"key" gorm:"type:varchar(100);uniqueIndex:idx_settings_tenant_key;not null"`
	Value     string    `json:"value" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
