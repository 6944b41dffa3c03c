package logger

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

const defaultSlowQuery = 200 * time.Millisecond

// maxLoggedSQL bounds the statement text in a log entry; bulk inserts from a
// restore would otherwise flood the output
const maxLoggedSQL = 2048

// GormLogger routes GORM's statement log into zap under the "gorm" name.
// Failed statements log at error, slow ones at warn and the rest at debug.
type GormLogger struct {
	log         *zap.Logger
	level       gormlogger.LogLevel
	slow        time.Duration
	logNotFound bool
}

// GormOption customises a GormLogger
type GormOption func(*GormLogger)

// WithSlowThreshold sets the duration above which a statement counts as slow; 0 disables it
func WithSlowThreshold(d time.Duration) GormOption {
	return func(l *GormLogger) { l.slow = d }
}

// WithNotFoundErrors also logs gorm.ErrRecordNotFound, which lookups return routinely
func WithNotFoundErrors() GormOption {
	return func(l *GormLogger) { l.logNotFound = true }
}

func NewGormLogger(log *zap.Logger, level gormlogger.LogLevel, opts ...GormOption) *GormLogger {
	l := &GormLogger{log: log.Named("gorm"), level: level, slow: defaultSlowQuery}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Info {
		l.log.Sugar().With(fieldsAsAny(ctx)...).Infof(msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Warn {
		l.log.Sugar().With(fieldsAsAny(ctx)...).Warnf(msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Error {
		l.log.Sugar().With(fieldsAsAny(ctx)...).Errorf(msg, data...)
	}
}

// Trace is called by GORM after every statement
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)

	switch {
	case err != nil && l.level >= gormlogger.Error:
		if !l.logNotFound && errors.Is(err, gormlogger.ErrRecordNotFound) {
			return
		}
		l.log.Error("sql failed", append(l.statementFields(ctx, elapsed, fc), zap.Error(err))...)
	case l.slow > 0 && elapsed > l.slow && l.level >= gormlogger.Warn:
		l.log.Warn("slow sql", append(l.statementFields(ctx, elapsed, fc), zap.Duration("threshold", l.slow))...)
	case l.level >= gormlogger.Info:
		l.log.Debug("sql", l.statementFields(ctx, elapsed, fc)...)
	}
}

func (l *GormLogger) statementFields(ctx context.Context, elapsed time.Duration, fc func() (string, int64)) []zap.Field {
	sql, rows := fc()
	if len(sql) > maxLoggedSQL {
		sql = sql[:maxLoggedSQL] + "..."
	}
	return append([]zap.Field{
		zap.String("sql", sql),
		zap.Int64("rows", rows),
		zap.Duration("elapsed", elapsed),
	}, Fields(ctx)...)
}

func fieldsAsAny(ctx context.Context) []any {
	fields := Fields(ctx)
	out := make([]any, len(fields))
	for i, f := range fields {
		out[i] = f
	}
	return out
}

// MapGormLogLevel maps the application log level onto GORM's levels.
// Statements are only traced when the application logs at debug or info.
func MapGormLogLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return gormlogger.Silent
	case "error", "fatal":
		return gormlogger.Error
	case "debug", "info":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}

var _ gormlogger.Interface = (*GormLogger)(nil)
