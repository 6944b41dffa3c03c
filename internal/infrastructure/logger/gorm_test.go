package logger

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func newObservedGorm(level gormlogger.LogLevel, opts ...GormOption) (*GormLogger, *observer.ObservedLogs) {
	core, recorded := observer.New(zapcore.DebugLevel)
	return NewGormLogger(zap.New(core), level, opts...), recorded
}

func statement(sql string, rows int64) func() (string, int64) {
	return func() (string, int64) { return sql, rows }
}

func TestGormLogger_LogMode(t *testing.T) {
	l, _ := newObservedGorm(gormlogger.Info)
	switched := l.LogMode(gormlogger.Error).(*GormLogger)

	assert.Equal(t, gormlogger.Info, l.level, "original is untouched")
	assert.Equal(t, gormlogger.Error, switched.level)
	assert.Equal(t, defaultSlowQuery, switched.slow)
}

func TestGormLogger_Messages(t *testing.T) {
	l, recorded := newObservedGorm(gormlogger.Warn)
	ctx, _ := WithRequestID(context.Background(), zap.NewNop(), "req-9")

	l.Info(ctx, "hidden %d", 1)
	l.Warn(ctx, "replaced %s", "column")
	l.Error(ctx, "broken")

	entries := recorded.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "replaced column", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "req-9", entries[0].ContextMap()["request_id"])
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
}

func TestGormLogger_Trace(t *testing.T) {
	t.Run("failed statement", func(t *testing.T) {
		l, recorded := newObservedGorm(gormlogger.Error)
		l.Trace(context.Background(), time.Now(), statement("SELECT * FROM items", 0), errors.New("boom"))

		require.Len(t, recorded.All(), 1)
		entry := recorded.All()[0]
		assert.Equal(t, "sql failed", entry.Message)
		assert.Equal(t, "boom", entry.ContextMap()["error"])
	})

	t.Run("not found is skipped unless asked for", func(t *testing.T) {
		l, recorded := newObservedGorm(gormlogger.Error)
		l.Trace(context.Background(), time.Now(), statement("SELECT * FROM users WHERE id = 1", 0), gormlogger.ErrRecordNotFound)
		assert.Empty(t, recorded.All())

		l, recorded = newObservedGorm(gormlogger.Error, WithNotFoundErrors())
		l.Trace(context.Background(), time.Now(), statement("SELECT * FROM users WHERE id = 1", 0), gormlogger.ErrRecordNotFound)
		assert.Len(t, recorded.All(), 1)
	})

	t.Run("slow statement", func(t *testing.T) {
		l, recorded := newObservedGorm(gormlogger.Warn, WithSlowThreshold(time.Millisecond))
		l.Trace(context.Background(), time.Now().Add(-time.Second), statement("SELECT * FROM stock_levels", 3), nil)

		require.Len(t, recorded.All(), 1)
		assert.Equal(t, "slow sql", recorded.All()[0].Message)
		assert.Equal(t, zapcore.WarnLevel, recorded.All()[0].Level)
	})

	t.Run("zero threshold disables slow logging", func(t *testing.T) {
		l, recorded := newObservedGorm(gormlogger.Warn, WithSlowThreshold(0))
		l.Trace(context.Background(), time.Now().Add(-time.Hour), statement("SELECT 1", 1), nil)
		assert.Empty(t, recorded.All())
	})

	t.Run("info traces every statement with request fields", func(t *testing.T) {
		l, recorded := newObservedGorm(gormlogger.Info)
		ctx, _ := WithRequestID(context.Background(), zap.NewNop(), "req-1")
		ctx, _ = WithUserID(ctx, zap.NewNop(), 12)

		l.Trace(ctx, time.Now(), statement("SELECT * FROM items", 5), nil)

		require.Len(t, recorded.All(), 1)
		entry := recorded.All()[0]
		assert.Equal(t, zapcore.DebugLevel, entry.Level)
		fields := entry.ContextMap()
		assert.Equal(t, "SELECT * FROM items", fields["sql"])
		assert.Equal(t, int64(5), fields["rows"])
		assert.Equal(t, "req-1", fields["request_id"])
		assert.Equal(t, int64(12), fields["user_id"])
	})

	t.Run("long statements are truncated", func(t *testing.T) {
		l, recorded := newObservedGorm(gormlogger.Info)
		long := "INSERT INTO stock_transactions VALUES " + strings.Repeat("(1),", 1000)
		l.Trace(context.Background(), time.Now(), statement(long, 1000), nil)

		sql := recorded.All()[0].ContextMap()["sql"].(string)
		assert.Len(t, sql, maxLoggedSQL+3)
		assert.True(t, strings.HasSuffix(sql, "..."))
	})

	t.Run("silent logs nothing", func(t *testing.T) {
		l, recorded := newObservedGorm(gormlogger.Silent)
		l.Trace(context.Background(), time.Now(), statement("SELECT 1", 1), errors.New("boom"))
		assert.Empty(t, recorded.All())
	})
}

func TestMapGormLogLevel(t *testing.T) {
	cases := map[string]gormlogger.LogLevel{
		"silent":  gormlogger.Silent,
		"error":   gormlogger.Error,
		"FATAL":   gormlogger.Error,
		"warn":    gormlogger.Warn,
		"info":    gormlogger.Info,
		"debug":   gormlogger.Info,
		"unknown": gormlogger.Warn,
		"":        gormlogger.Warn,
	}
	for level, want := range cases {
		assert.Equal(t, want, MapGormLogLevel(level), level)
	}
}
