package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type probe struct {
	ID   int64
	Name string
}

func TestInstrumentDB_RecordsQueries(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	reader, provider := newTestMeter(t)
	require.NoError(t, InstrumentDB(db, sqlDB, provider.Meter("test"), DBInstrumentationConfig{DBSystem: "sqlite"}, zap.NewNop()))
	require.NoError(t, db.AutoMigrate(&probe{}))

	ctx := context.Background()
	require.NoError(t, db.WithContext(ctx).Create(&probe{Name: "a"}).Error)
	var found []probe
	require.NoError(t, db.WithContext(ctx).Find(&found).Error)

	data := collect(t, reader)
	assert.GreaterOrEqual(t, sumTotal(t, data["db_query_total"]), int64(2))

	pool, ok := data["db_pool_connections_max"].(metricdata.Gauge[int64])
	require.True(t, ok)
	require.NotEmpty(t, pool.DataPoints)
}

func TestInstrumentDB_WithoutMeter(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	assert.NoError(t, InstrumentDB(db, nil, nil, DBInstrumentationConfig{}, nil))
}

func TestOperationFromSQL(t *testing.T) {
	tests := map[string]string{
		"SELECT * FROM items":        "select",
		"  insert into units values": "insert",
		"UPDATE stock_levels SET":    "update",
		"DELETE FROM issues":         "delete",
		"PRAGMA foreign_keys = ON":   "raw",
		"":                           "raw",
	}
	for stmt, want := range tests {
		t.Run(stmt, func(t *testing.T) {
			assert.Equal(t, want, operationFromSQL(stmt))
		})
	}
}
