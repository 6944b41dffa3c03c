package persistence

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/inventory/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newPingMonitoredDatabase wraps sqlmock so Ping and Close can be asserted
func newPingMonitoredDatabase(t *testing.T) (*Database, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: conn, DriverName: "postgres"}), &gorm.Config{
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
	})
	require.NoError(t, err)
	return &Database{DB: gormDB}, mock
}

func TestNewDatabase(t *testing.T) {
	t.Run("sqlite file with a single connection", func(t *testing.T) {
		db, err := NewDatabase(&config.DatabaseConfig{
			Driver:     DriverSQLite,
			SQLitePath: filepath.Join(t.TempDir(), "inventory.db"),
		})
		require.NoError(t, err)
		defer db.Close()

		assert.Equal(t, "sqlite", db.Dialect())
		assert.NoError(t, db.Ping(context.Background()))

		sqlDB, err := db.DB.DB()
		require.NoError(t, err)
		assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, err := NewDatabase(&config.DatabaseConfig{Driver: "oracle"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported database driver")
	})
}

func TestDatabase_AutoMigrate(t *testing.T) {
	db, err := NewDatabase(&config.DatabaseConfig{
		Driver:     DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "schema.db"),
	})
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.AutoMigrate())
	for _, model := range Models() {
		assert.True(t, db.DB.Migrator().HasTable(model), "%T has no table", model)
	}
	// running it twice is harmless
	assert.NoError(t, db.AutoMigrate())
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "inv.db?_foreign_keys=on&_busy_timeout=5000", SQLiteDSN("inv.db"))
	assert.Equal(t, "file:inv.db?mode=rwc&_foreign_keys=on&_busy_timeout=5000", SQLiteDSN("file:inv.db?mode=rwc"))
	assert.Contains(t, SQLiteDSN(""), "file::memory:")
}

func TestDatabase_PingAndClose(t *testing.T) {
	db, mock := newPingMonitoredDatabase(t)
	assert.Equal(t, "postgres", db.Dialect())

	mock.ExpectPing()
	assert.NoError(t, db.Ping(context.Background()))

	mock.ExpectPing().WillReturnError(assert.AnError)
	assert.ErrorIs(t, db.Ping(context.Background()), assert.AnError)

	mock.ExpectClose()
	assert.NoError(t, db.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}
