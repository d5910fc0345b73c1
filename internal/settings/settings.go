// Package settings is the tenant-scoped key/value store backing
// display names, currency, language and pricing defaults.
package settings

import (
	"context"
	"errors"

	"kennel-service/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store reads and writes tenant settings
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Get returns the value for key, or fallback when the key is unset
func (s *Store) Get(ctx context.Context, tenantID uint, key, fallback string) (string, error) {
	var setting model.Setting
	err := s.db.WithContext(ctx).
		Where("tenant_id = ? AND key = ?", tenantID, key).
		First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fallback, nil
	}
	if err != nil {
		return fallback, err
	}
	return setting.Value, nil
}

// GetAll returns every setting for the tenant as a map
func (s *Store) GetAll(ctx context.Context, tenantID uint) (map[string]string, error) {
	var settings []model.Setting
	if err := s.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Find(&settings).Error; err != nil {
		return nil, err
	}

	out := make(map[string]string, len(settings))
	for _, st := range settings {
		out[st.Key] = st.Value
	}
	return out, nil
}

// Set upserts a single setting for the tenant
func (s *Store) Set(ctx context.Context, tenantID uint, key, value string) error {
	setting := model.Setting{TenantID: tenantID, Key: key, Value: value}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tenant_id"}, {Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&setting).Error
}
