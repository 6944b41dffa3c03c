package system

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/inventory/backend/internal/domain/shared"
	"github.com/inventory/backend/internal/domain/system"
	"go.uber.org/zap"
)

// DefaultBackupPrefix is the object key prefix for backups
const DefaultBackupPrefix = "backups/"

// backupDocument is the JSON layout of a backup archive
type backupDocument struct {
	Format    int                  `json:"format"`
	AppName   string               `json:"app_name"`
	Version   string               `json:"version"`
	CreatedAt time.Time            `json:"created_at"`
	Tables    []system.TableExport `json:"tables"`
}

// BackupService exports every table to object storage and prunes expired backups
type BackupService struct {
	source   system.BackupSource
	store    system.BackupStore
	settings system.SettingsProvider
	prefix   string
	version  string
	logger   *zap.Logger
	now      func() time.Time
}

// NewBackupService creates a new BackupService. A nil store means object storage is disabled.
func NewBackupService(
	source system.BackupSource,
	store system.BackupStore,
	settings system.SettingsProvider,
	prefix, version string,
	logger *zap.Logger,
) *BackupService {
	if prefix == "" {
		prefix = DefaultBackupPrefix
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &BackupService{
		source:   source,
		store:    store,
		settings: settings,
		prefix:   prefix,
		version:  version,
		logger:   logger,
		now:      time.Now,
	}
}

// Enabled reports whether backups can be written
func (s *BackupService) Enabled() bool {
	return s.store != nil
}

// Run writes a gzipped JSON export of all tables and removes backups past retention
func (s *BackupService) Run(ctx context.Context) (*BackupResult, error) {
	if s.store == nil {
		return nil, shared.NewDomainError(shared.CodeServiceUnavailable, "Object storage is not configured")
	}

	settings, err := s.settings.Current(ctx)
	if err != nil {
		return nil, err
	}

	tables, err := s.source.ExportTables(ctx)
	if err != nil {
		return nil, fmt.Errorf("export tables: %w", err)
	}

	now := s.now().UTC()
	body, err := encodeBackup(backupDocument{
		Format:    1,
		AppName:   settings.AppName,
		Version:   s.version,
		CreatedAt: now,
		Tables:    tables,
	})
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s%s-%s.json.gz", s.prefix, now.Format("20060102T150405Z"), uuid.NewString())
	if err := s.store.Put(ctx, key, bytes.NewReader(body), int64(len(body)), "application/gzip"); err != nil {
		return nil, fmt.Errorf("store backup: %w", err)
	}

	counts := make(map[string]int, len(tables))
	for _, t := range tables {
		counts[t.Name] = len(t.Rows)
	}

	pruned, err := s.prune(ctx, key, settings.BackupCutoff(now))
	if err != nil {
		// the new backup is stored; a failed prune is retried on the next run
		s.logger.Warn("backup pruning failed", zap.Error(err))
	}

	s.logger.Info("backup completed",
		zap.String("key", key),
		zap.Int("size", len(body)),
		zap.Int("pruned", len(pruned)),
	)

	return &BackupResult{
		Key:       key,
		Size:      int64(len(body)),
		Tables:    counts,
		Pruned:    pruned,
		CreatedAt: now,
	}, nil
}

// RunScheduled is the auto backup entry point: it runs a backup only when
// storage is configured and auto_backup_enabled is set.
func (s *BackupService) RunScheduled(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	settings, err := s.settings.Current(ctx)
	if err != nil {
		return err
	}
	if !settings.AutoBackupEnabled {
		s.logger.Debug("auto backup disabled, skipping")
		return nil
	}
	_, err = s.Run(ctx)
	return err
}

func (s *BackupService) prune(ctx context.Context, keep string, cutoff time.Time) ([]string, error) {
	objects, err := s.store.List(ctx, s.prefix)
	if err != nil {
		return nil, err
	}

	pruned := make([]string, 0)
	for _, obj := range objects {
		if obj.Key == keep || !obj.LastModified.Before(cutoff) {
			continue
		}
		if err := s.store.Delete(ctx, obj.Key); err != nil {
			return pruned, fmt.Errorf("delete %s: %w", obj.Key, err)
		}
		pruned = append(pruned, obj.Key)
	}
	return pruned, nil
}

func encodeBackup(doc backupDocument) ([]byte, error) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if err := json.NewEncoder(gz).Encode(doc); err != nil {
		return nil, fmt.Errorf("encode backup: %w", err)
	}
	if err := gz.Close(); err != nil {
		return nil, fmt.Errorf("compress backup: %w", err)
	}
	return buf.Bytes(), nil
}
