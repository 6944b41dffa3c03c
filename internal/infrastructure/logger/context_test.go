package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromContext(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))

	l := zap.NewExample()
	ctx := WithContext(context.Background(), l)
	assert.Same(t, l, FromContext(ctx))
}

func TestRequestScope(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)

	ctx, l := WithRequestID(context.Background(), zap.New(core), "req-1")
	ctx, l = WithUserID(ctx, l, 42)

	assert.Equal(t, "req-1", GetRequestID(ctx))
	assert.Equal(t, int64(42), GetUserID(ctx))
	assert.Same(t, l, FromContext(ctx))

	l.Info("msg")
	fields := recorded.All()[0].ContextMap()
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, int64(42), fields["user_id"])

	t.Run("anonymous context is empty", func(t *testing.T) {
		assert.Empty(t, GetRequestID(context.Background()))
		assert.Zero(t, GetUserID(context.Background()))
		assert.Empty(t, GetTraceID(context.Background()))
		assert.Empty(t, Fields(context.Background()))
	})

	t.Run("user id keeps the request id", func(t *testing.T) {
		ctx, _ := WithRequestID(context.Background(), zap.NewNop(), "req-2")
		ctx, _ = WithUserID(ctx, zap.NewNop(), 9)
		assert.Equal(t, "req-2", GetRequestID(ctx))
	})
}

func TestFields(t *testing.T) {
	ctx, _ := WithRequestID(context.Background(), zap.NewNop(), "req-3")
	ctx, _ = WithUserID(ctx, zap.NewNop(), 7)

	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)
	ctx = trace.ContextWithSpanContext(ctx, trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: traceID, SpanID: spanID, TraceFlags: trace.FlagsSampled,
	}))

	core, recorded := observer.New(zapcore.InfoLevel)
	zap.New(core).Info("enriched", Fields(ctx)...)

	m := recorded.All()[0].ContextMap()
	assert.Equal(t, "req-3", m["request_id"])
	assert.Equal(t, int64(7), m["user_id"])
	assert.Equal(t, traceID.String(), m["trace_id"])
	assert.Equal(t, spanID.String(), m["span_id"])
	assert.Equal(t, traceID.String(), GetTraceID(ctx))
}
