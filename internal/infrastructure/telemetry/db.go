package telemetry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBInstrumentationConfig controls GORM tracing and metrics
type DBInstrumentationConfig struct {
	TraceEnabled    bool
	LogFullSQL      bool
	DBSystem        string
	SlowQueryThresh time.Duration
}

type queryStartKey struct{}

// dbMetrics holds the query instruments registered on a GORM instance
type dbMetrics struct {
	queries   *Counter
	duration  *Histogram
	slow      *Counter
	threshold time.Duration
	logger    *zap.Logger
}

// InstrumentDB registers otelgorm tracing (when enabled) and query metrics on
// db, plus observable connection pool gauges for sqlDB. meter may be nil to
// skip metrics.
func InstrumentDB(db *gorm.DB, sqlDB *sql.DB, meter metric.Meter, cfg DBInstrumentationConfig, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.SlowQueryThresh <= 0 {
		cfg.SlowQueryThresh = 200 * time.Millisecond
	}

	if cfg.TraceEnabled {
		opts := []otelgorm.Option{otelgorm.WithDBName(cfg.DBSystem)}
		if !cfg.LogFullSQL {
			opts = append(opts, otelgorm.WithoutQueryVariables())
		}
		if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
			return fmt.Errorf("failed to register otelgorm: %w", err)
		}
		logger.Info("Database tracing enabled", zap.Bool("log_full_sql", cfg.LogFullSQL))
	}

	if meter == nil {
		return nil
	}
	m, err := newDBMetrics(meter, cfg.SlowQueryThresh, logger)
	if err != nil {
		return err
	}
	if err := m.register(db); err != nil {
		return err
	}
	if sqlDB != nil {
		if err := registerPoolGauges(meter, sqlDB); err != nil {
			return err
		}
	}
	return nil
}

func newDBMetrics(meter metric.Meter, threshold time.Duration, logger *zap.Logger) (*dbMetrics, error) {
	queries, err := NewCounter(meter, "db_query_total", "Database queries by operation and table", "{query}")
	if err != nil {
		return nil, err
	}
	duration, err := NewHistogram(meter, HistogramOpts{
		Name:        "db_query_duration_seconds",
		Description: "Database query latency",
		Unit:        "s",
		Boundaries:  DBDurationBuckets,
	})
	if err != nil {
		return nil, err
	}
	slow, err := NewCounter(meter, "db_slow_query_total", "Queries slower than the slow query threshold", "{query}")
	if err != nil {
		return nil, err
	}
	return &dbMetrics{queries: queries, duration: duration, slow: slow, threshold: threshold, logger: logger}, nil
}

func (m *dbMetrics) register(db *gorm.DB) error {
	cb := db.Callback()
	after := func(op string) func(*gorm.DB) {
		return func(tx *gorm.DB) { m.after(tx, op) }
	}
	registrations := []func() error{
		func() error { return cb.Create().Before("gorm:create").Register("metrics:before_create", m.before) },
		func() error { return cb.Create().After("gorm:create").Register("metrics:after_create", after("create")) },
		func() error { return cb.Query().Before("gorm:query").Register("metrics:before_query", m.before) },
		func() error { return cb.Query().After("gorm:query").Register("metrics:after_query", after("select")) },
		func() error { return cb.Update().Before("gorm:update").Register("metrics:before_update", m.before) },
		func() error { return cb.Update().After("gorm:update").Register("metrics:after_update", after("update")) },
		func() error { return cb.Delete().Before("gorm:delete").Register("metrics:before_delete", m.before) },
		func() error { return cb.Delete().After("gorm:delete").Register("metrics:after_delete", after("delete")) },
		func() error { return cb.Row().Before("gorm:row").Register("metrics:before_row", m.before) },
		func() error { return cb.Row().After("gorm:row").Register("metrics:after_row", after("raw")) },
		func() error { return cb.Raw().Before("gorm:raw").Register("metrics:before_raw", m.before) },
		func() error { return cb.Raw().After("gorm:raw").Register("metrics:after_raw", after("raw")) },
	}
	for _, register := range registrations {
		if err := register(); err != nil {
			return fmt.Errorf("failed to register query metrics callback: %w", err)
		}
	}
	return nil
}

func (m *dbMetrics) before(tx *gorm.DB) {
	if tx.Statement.Context == nil {
		return
	}
	tx.Statement.Context = context.WithValue(tx.Statement.Context, queryStartKey{}, time.Now())
}

func (m *dbMetrics) after(tx *gorm.DB, op string) {
	ctx := tx.Statement.Context
	if ctx == nil {
		return
	}
	start, ok := ctx.Value(queryStartKey{}).(time.Time)
	if !ok {
		return
	}
	elapsed := time.Since(start)
	if op == "raw" {
		op = operationFromSQL(tx.Statement.SQL.String())
	}
	attrs := []attribute.KeyValue{AttrDBOperation.String(op), AttrDBTable.String(tx.Statement.Table)}
	m.queries.Inc(ctx, attrs...)
	m.duration.RecordDuration(ctx, elapsed, attrs...)

	if elapsed >= m.threshold {
		m.slow.Inc(ctx, attrs...)
		m.logger.Warn("Slow query",
			zap.String("operation", op),
			zap.String("table", tx.Statement.Table),
			zap.Duration("elapsed", elapsed),
			zap.Int64("rows", tx.RowsAffected),
		)
	}
	if tx.Error != nil && !errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		m.logger.Debug("Query failed", zap.String("operation", op), zap.Error(tx.Error))
	}
}

func operationFromSQL(stmt string) string {
	fields := strings.Fields(stmt)
	if len(fields) == 0 {
		return "raw"
	}
	switch op := strings.ToLower(fields[0]); op {
	case "select", "insert", "update", "delete":
		return op
	default:
		return "raw"
	}
}

func registerPoolGauges(meter metric.Meter, sqlDB *sql.DB) error {
	conns, err := meter.Int64ObservableGauge("db_pool_connections",
		metric.WithDescription("Connections in the pool by state"),
		metric.WithUnit("{connection}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create pool gauge: %w", err)
	}
	maxConns, err := meter.Int64ObservableGauge("db_pool_connections_max",
		metric.WithDescription("Maximum open connections"),
		metric.WithUnit("{connection}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create pool gauge: %w", err)
	}
	_, err = meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		stats := sqlDB.Stats()
		o.ObserveInt64(conns, int64(stats.InUse), metric.WithAttributes(AttrDBState.String("in_use")))
		o.ObserveInt64(conns, int64(stats.Idle), metric.WithAttributes(AttrDBState.String("idle")))
		o.ObserveInt64(maxConns, int64(stats.MaxOpenConnections))
		return nil
	}, conns, maxConns)
	return err
}
