package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type ctxKey int

const (
	loggerKey ctxKey = iota
	scopeKey
)

// requestScope carries the identifiers every log line of a request repeats
type requestScope struct {
	requestID string
	userID    int64
}

func scopeOf(ctx context.Context) requestScope {
	s, _ := ctx.Value(scopeKey).(requestScope)
	return s
}

// WithContext stores logger in ctx
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the request logger, or a no-op logger outside a request
func FromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(loggerKey).(*zap.Logger); ok {
		return l
	}
	return zap.NewNop()
}

// WithRequestID tags ctx and logger with the request ID
func WithRequestID(ctx context.Context, logger *zap.Logger, requestID string) (context.Context, *zap.Logger) {
	s := scopeOf(ctx)
	s.requestID = requestID
	logger = logger.With(zap.String("request_id", requestID))
	return WithContext(context.WithValue(ctx, scopeKey, s), logger), logger
}

// WithUserID tags ctx and logger with the authenticated user
func WithUserID(ctx context.Context, logger *zap.Logger, userID int64) (context.Context, *zap.Logger) {
	s := scopeOf(ctx)
	s.userID = userID
	logger = logger.With(zap.Int64("user_id", userID))
	return WithContext(context.WithValue(ctx, scopeKey, s), logger), logger
}

func GetRequestID(ctx context.Context) string {
	return scopeOf(ctx).requestID
}

// GetUserID returns 0 for anonymous requests
func GetUserID(ctx context.Context) int64 {
	return scopeOf(ctx).userID
}

// GetTraceID returns the active span's trace ID, empty without a valid span
func GetTraceID(ctx context.Context) string {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return ""
	}
	return sc.TraceID().String()
}

// Fields returns the correlation fields present in ctx, for loggers that
// were not derived from the request logger.
func Fields(ctx context.Context) []zap.Field {
	var fields []zap.Field
	s := scopeOf(ctx)
	if s.requestID != "" {
		fields = append(fields, zap.String("request_id", s.requestID))
	}
	if s.userID != 0 {
		fields = append(fields, zap.Int64("user_id", s.userID))
	}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		fields = append(fields,
			zap.String("trace_id", sc.TraceID().String()),
			zap.String("span_id", sc.SpanID().String()),
		)
	}
	return fields
}
