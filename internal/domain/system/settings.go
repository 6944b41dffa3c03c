package system

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/inventory/backend/internal/domain/shared"
)

// SettingsID is the primary key of the singleton settings row
const SettingsID int64 = 1

// Default values inserted when the settings row is missing
const (
	DefaultAppName             = "Inventory"
	DefaultItemsPerPage        = 50
	DefaultBackupRetentionDays = 30
	DefaultLowStockThreshold   = 10
)

// Settings holds the application wide options editable by administrators
type Settings struct {
	ID                  int64     `gorm:"primaryKey" json:"id"`
	AppName             string    `gorm:"type:varchar(100);not null" json:"app_name"`
	ItemsPerPage        int       `gorm:"not null" json:"items_per_page"`
	AllowNegativeStock  bool      `gorm:"not null" json:"allow_negative_stock"`
	AutoBackupEnabled   bool      `gorm:"not null" json:"auto_backup_enabled"`
	BackupRetentionDays int       `gorm:"not null" json:"backup_retention_days"`
	LowStockThreshold   int       `gorm:"not null" json:"low_stock_threshold"`
	EnableNotifications bool      `gorm:"not null" json:"enable_notifications"`
	UpdatedAt           time.Time `gorm:"not null" json:"updated_at"`
	UpdatedBy           *string   `gorm:"type:varchar(200)" json:"updated_by"`
}

// TableName returns the table name for GORM
func (Settings) TableName() string {
	return "settings"
}

// DefaultSettings returns the settings used when none are stored
func DefaultSettings() *Settings {
	return &Settings{
		ID:                  SettingsID,
		AppName:             DefaultAppName,
		ItemsPerPage:        DefaultItemsPerPage,
		AllowNegativeStock:  false,
		AutoBackupEnabled:   false,
		BackupRetentionDays: DefaultBackupRetentionDays,
		LowStockThreshold:   DefaultLowStockThreshold,
		EnableNotifications: true,
		UpdatedAt:           time.Now(),
	}
}

// SettingsPatch is a partial update; nil fields are left unchanged
type SettingsPatch struct {
	AppName             *string
	ItemsPerPage        *int
	AllowNegativeStock  *bool
	AutoBackupEnabled   *bool
	BackupRetentionDays *int
	LowStockThreshold   *int
	EnableNotifications *bool
}

// IsEmpty reports whether the patch changes nothing
func (p SettingsPatch) IsEmpty() bool {
	return p.AppName == nil && p.ItemsPerPage == nil && p.AllowNegativeStock == nil &&
		p.AutoBackupEnabled == nil && p.BackupRetentionDays == nil &&
		p.LowStockThreshold == nil && p.EnableNotifications == nil
}

// Apply validates the whole patch first, then applies it
func (s *Settings) Apply(p SettingsPatch, updatedBy string) error {
	if p.AppName != nil {
		name := strings.TrimSpace(*p.AppName)
		if name == "" {
			return shared.NewDomainError(shared.CodeInvalidInput, "Application name cannot be empty")
		}
		if utf8.RuneCountInString(name) > 100 {
			return shared.NewDomainError(shared.CodeInvalidInput, "Application name cannot exceed 100 characters")
		}
		p.AppName = &name
	}
	if p.ItemsPerPage != nil && (*p.ItemsPerPage < 1 || *p.ItemsPerPage > 100) {
		return shared.NewDomainError(shared.CodeInvalidInput, "Items per page must be between 1 and 100")
	}
	if p.BackupRetentionDays != nil && (*p.BackupRetentionDays < 1 || *p.BackupRetentionDays > 365) {
		return shared.NewDomainError(shared.CodeInvalidInput, "Backup retention days must be between 1 and 365")
	}
	if p.LowStockThreshold != nil && *p.LowStockThreshold < 0 {
		return shared.NewDomainError(shared.CodeInvalidInput, "Low stock threshold cannot be negative")
	}

	if p.AppName != nil {
		s.AppName = *p.AppName
	}
	if p.ItemsPerPage != nil {
		s.ItemsPerPage = *p.ItemsPerPage
	}
	if p.AllowNegativeStock != nil {
		s.AllowNegativeStock = *p.AllowNegativeStock
	}
	if p.AutoBackupEnabled != nil {
		s.AutoBackupEnabled = *p.AutoBackupEnabled
	}
	if p.BackupRetentionDays != nil {
		s.BackupRetentionDays = *p.BackupRetentionDays
	}
	if p.LowStockThreshold != nil {
		s.LowStockThreshold = *p.LowStockThreshold
	}
	if p.EnableNotifications != nil {
		s.EnableNotifications = *p.EnableNotifications
	}

	s.UpdatedAt = time.Now()
	if updatedBy != "" {
		by := updatedBy
		s.UpdatedBy = &by
	}
	return nil
}

// BackupCutoff returns the time before which backups are pruned
func (s *Settings) BackupCutoff(now time.Time) time.Time {
	return now.AddDate(0, 0, -s.BackupRetentionDays)
}
