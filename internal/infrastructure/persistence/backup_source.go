package persistence

import (
	"context"
	"fmt"

	"github.com/inventory/backend/internal/domain/system"
	"gorm.io/gorm"
)

// BackupTables lists the exported tables in foreign key order
var BackupTables = []string{
	"settings",
	"users",
	"categories",
	"units",
	"locations",
	"items",
	"stock_levels",
	"stock_transactions",
	"issues",
	"issue_items",
}

// GormBackupSource reads whole tables for the backup archive
type GormBackupSource struct {
	db     *gorm.DB
	tables []string
}

// NewGormBackupSource creates a backup source over BackupTables
func NewGormBackupSource(db *gorm.DB) *GormBackupSource {
	return &GormBackupSource{db: db, tables: BackupTables}
}

// ExportTables reads every table inside one read transaction so the snapshot is consistent
func (s *GormBackupSource) ExportTables(ctx context.Context) ([]system.TableExport, error) {
	exports := make([]system.TableExport, 0, len(s.tables))
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, table := range s.tables {
			var rows []map[string]any
			if err := tx.Table(table).Order("id ASC").Find(&rows).Error; err != nil {
				return fmt.Errorf("export %s: %w", table, err)
			}
			if rows == nil {
				rows = []map[string]any{}
			}
			exports = append(exports, system.TableExport{Name: table, Rows: rows})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return exports, nil
}

// Ensure GormBackupSource implements BackupSource
var _ system.BackupSource = (*GormBackupSource)(nil)
