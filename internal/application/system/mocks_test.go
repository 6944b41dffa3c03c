package system

import (
	"context"

	"github.com/inventory/backend/internal/domain/system"
	"github.com/stretchr/testify/mock"
)

// MockSettingsRepository is a mock implementation of SettingsRepository
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) Get(ctx context.Context) (*system.Settings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*system.Settings), args.Error(1)
}

func (m *MockSettingsRepository) Save(ctx context.Context, settings *system.Settings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

// MockBackupSource is a mock implementation of BackupSource
type MockBackupSource struct {
	mock.Mock
}

func (m *MockBackupSource) ExportTables(ctx context.Context) ([]system.TableExport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]system.TableExport), args.Error(1)
}

// staticSettings serves fixed settings
type staticSettings struct {
	settings *system.Settings
	err      error
}

func (s staticSettings) Current(context.Context) (*system.Settings, error) {
	return s.settings, s.err
}
