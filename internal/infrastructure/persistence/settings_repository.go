package persistence

import (
	"context"
	"errors"

	"github.com/inventory/backend/internal/domain/system"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSettingsRepository implements SettingsRepository using GORM
type GormSettingsRepository struct {
	db *gorm.DB
}

// NewGormSettingsRepository creates a new GormSettingsRepository
func NewGormSettingsRepository(db *gorm.DB) *GormSettingsRepository {
	return &GormSettingsRepository{db: db}
}

// Get returns the singleton row, inserting the defaults on first access
func (r *GormSettingsRepository) Get(ctx context.Context) (*system.Settings, error) {
	var settings system.Settings
	err := r.db.WithContext(ctx).First(&settings, "id = ?", system.SettingsID).Error
	if err == nil {
		return &settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	defaults := system.DefaultSettings()
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(defaults).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).First(&settings, "id = ?", system.SettingsID).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

// Save writes the singleton row
func (r *GormSettingsRepository) Save(ctx context.Context, settings *system.Settings) error {
	settings.ID = system.SettingsID
	return r.db.WithContext(ctx).Save(settings).Error
}

// Ensure GormSettingsRepository implements SettingsRepository
var _ system.SettingsRepository = (*GormSettingsRepository)(nil)
