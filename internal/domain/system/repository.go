package system

import (
	"context"
	"io"
	"time"
)

// SettingsRepository persists the singleton settings row
type SettingsRepository interface {
	// Get returns the settings, inserting defaults when the row is missing
	Get(ctx context.Context) (*Settings, error)
	Save(ctx context.Context, settings *Settings) error
}

// TableExport is one table's rows in a backup
type TableExport struct {
	Name string           `json:"name"`
	Rows []map[string]any `json:"rows"`
}

// BackupSource reads every table for export
type BackupSource interface {
	ExportTables(ctx context.Context) ([]TableExport, error)
}

// BackupObject describes a stored backup
type BackupObject struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// BackupStore stores backup archives
type BackupStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	List(ctx context.Context, prefix string) ([]BackupObject, error)
	Delete(ctx context.Context, key string) error
}

// SettingsProvider returns the current settings, typically through a cache
type SettingsProvider interface {
	Current(ctx context.Context) (*Settings, error)
}
