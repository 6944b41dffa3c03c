package system

import (
	"errors"
	"testing"
	"time"

	"github.com/inventory/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, "Inventory", s.AppName)
	assert.Equal(t, 50, s.ItemsPerPage)
	assert.False(t, s.AllowNegativeStock)
	assert.False(t, s.AutoBackupEnabled)
	assert.Equal(t, 30, s.BackupRetentionDays)
	assert.Equal(t, 10, s.LowStockThreshold)
	assert.True(t, s.EnableNotifications)
	assert.Nil(t, s.UpdatedBy)
}

func TestSettings_Apply(t *testing.T) {
	t.Run("partial update", func(t *testing.T) {
		s := DefaultSettings()
		err := s.Apply(SettingsPatch{AllowNegativeStock: ptr(true), AppName: ptr("  Store  ")}, "ada@example.com")
		require.NoError(t, err)
		assert.True(t, s.AllowNegativeStock)
		assert.Equal(t, "Store", s.AppName)
		assert.Equal(t, 50, s.ItemsPerPage)
		require.NotNil(t, s.UpdatedBy)
		assert.Equal(t, "ada@example.com", *s.UpdatedBy)
	})

	tests := []struct {
		name  string
		patch SettingsPatch
	}{
		{"empty app name", SettingsPatch{AppName: ptr(" ")}},
		{"items per page zero", SettingsPatch{ItemsPerPage: ptr(0)}},
		{"items per page too big", SettingsPatch{ItemsPerPage: ptr(101)}},
		{"retention zero", SettingsPatch{BackupRetentionDays: ptr(0)}},
		{"retention too long", SettingsPatch{BackupRetentionDays: ptr(366)}},
		{"negative threshold", SettingsPatch{LowStockThreshold: ptr(-1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.patch.AllowNegativeStock = ptr(true)
			err := s.Apply(tt.patch, "")
			require.Error(t, err)
			assert.True(t, errors.Is(err, shared.ErrInvalidInput))
			assert.False(t, s.AllowNegativeStock, "invalid patch must not be partially applied")
		})
	}
}

func TestSettings_BackupCutoff(t *testing.T) {
	s := DefaultSettings()
	now := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), s.BackupCutoff(now))
}

func TestSettingsPatch_IsEmpty(t *testing.T) {
	assert.True(t, SettingsPatch{}.IsEmpty())
	assert.False(t, SettingsPatch{LowStockThreshold: ptr(0)}.IsEmpty())
}
