package system

import (
	"time"

	"github.com/inventory/backend/internal/domain/system"
)

// SettingsResponse represents the settings singleton in API responses
type SettingsResponse struct {
	AppName             string    `json:"app_name"`
	ItemsPerPage        int       `json:"items_per_page"`
	AllowNegativeStock  bool      `json:"allow_negative_stock"`
	AutoBackupEnabled   bool      `json:"auto_backup_enabled"`
	BackupRetentionDays int       `json:"backup_retention_days"`
	LowStockThreshold   int       `json:"low_stock_threshold"`
	EnableNotifications bool      `json:"enable_notifications"`
	UpdatedAt           time.Time `json:"updated_at"`
	UpdatedBy           *string   `json:"updated_by"`
}

// UpdateSettingsRequest is a partial update; nil fields are left unchanged
type UpdateSettingsRequest struct {
	AppName             *string `json:"app_name" binding:"omitempty,min=1,max=100"`
	ItemsPerPage        *int    `json:"items_per_page" binding:"omitempty,min=1,max=100"`
	AllowNegativeStock  *bool   `json:"allow_negative_stock"`
	AutoBackupEnabled   *bool   `json:"auto_backup_enabled"`
	BackupRetentionDays *int    `json:"backup_retention_days" binding:"omitempty,min=1,max=365"`
	LowStockThreshold   *int    `json:"low_stock_threshold" binding:"omitempty,min=0"`
	EnableNotifications *bool   `json:"enable_notifications"`
}

func (r UpdateSettingsRequest) toPatch() system.SettingsPatch {
	return system.SettingsPatch{
		AppName:             r.AppName,
		ItemsPerPage:        r.ItemsPerPage,
		AllowNegativeStock:  r.AllowNegativeStock,
		AutoBackupEnabled:   r.AutoBackupEnabled,
		BackupRetentionDays: r.BackupRetentionDays,
		LowStockThreshold:   r.LowStockThreshold,
		EnableNotifications: r.EnableNotifications,
	}
}

// ToSettingsResponse converts the domain settings to a response
func ToSettingsResponse(s *system.Settings) *SettingsResponse {
	return &SettingsResponse{
		AppName:             s.AppName,
		ItemsPerPage:        s.ItemsPerPage,
		AllowNegativeStock:  s.AllowNegativeStock,
		AutoBackupEnabled:   s.AutoBackupEnabled,
		BackupRetentionDays: s.BackupRetentionDays,
		LowStockThreshold:   s.LowStockThreshold,
		EnableNotifications: s.EnableNotifications,
		UpdatedAt:           s.UpdatedAt,
		UpdatedBy:           s.UpdatedBy,
	}
}

// BackupResult describes a completed backup
type BackupResult struct {
	Key       string         `json:"key"`
	Size      int64          `json:"size"`
	Tables    map[string]int `json:"tables"`
	Pruned    []string       `json:"pruned"`
	CreatedAt time.Time      `json:"created_at"`
}

// SystemInfo is the runtime report behind GET /settings/system-info
type SystemInfo struct {
	AppName        string            `json:"app_name"`
	AppVersion     string            `json:"app_version"`
	Environment    string            `json:"environment"`
	GoVersion      string            `json:"go_version"`
	OS             string            `json:"os"`
	Arch           string            `json:"arch"`
	NumCPU         int               `json:"num_cpu"`
	NumGoroutine   int               `json:"num_goroutine"`
	StartedAt      time.Time         `json:"started_at"`
	Uptime         string            `json:"uptime"`
	UptimeSeconds  int64             `json:"uptime_seconds"`
	DatabaseDriver string            `json:"database_driver"`
	Dependencies   map[string]string `json:"dependencies"`
}
