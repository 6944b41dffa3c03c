package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
)

func TestNewTracerProvider_Disabled(t *testing.T) {
	tp, err := NewTracerProvider(context.Background(), Config{Enabled: false}, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, tp.IsEnabled())
	assert.NotNil(t, tp.Tracer("test"))

	assert.False(t, tp.EnableSpanProfiles())
	assert.NoError(t, tp.Shutdown(context.Background()))
}

func TestTracerProvider_EnableSpanProfilesOnce(t *testing.T) {
	previous := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	sdk := sdktrace.NewTracerProvider()
	t.Cleanup(func() { _ = sdk.Shutdown(context.Background()) })
	tp := &TracerProvider{sdk: sdk, log: zap.NewNop()}

	assert.True(t, tp.EnableSpanProfiles())
	assert.NotSame(t, sdk, otel.GetTracerProvider())
	assert.False(t, tp.EnableSpanProfiles())
}

func TestSamplerFor(t *testing.T) {
	assert.Contains(t, samplerFor(1).Description(), "AlwaysOnSampler")
	assert.Contains(t, samplerFor(0).Description(), "AlwaysOffSampler")
	assert.Contains(t, samplerFor(0.25).Description(), "TraceIDRatioBased{0.25}")
}

func useRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() { otel.SetTracerProvider(previous) })
	return recorder
}

func TestStartSpan(t *testing.T) {
	recorder := useRecorder(t)

	ctx, span := StartSpan(context.Background(), "labels", "render", attribute.Int("labels", 24))
	assert.NotEmpty(t, TraceID(ctx))
	EndSpan(span, nil)

	_, failed := StartSpan(context.Background(), "backup", "run")
	EndSpan(failed, errors.New("bucket missing"))

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "labels.render", spans[0].Name())
	assert.Equal(t, codes.Ok, spans[0].Status().Code)
	assert.Contains(t, spans[0].Attributes(), attribute.Int("labels", 24))
	assert.Equal(t, codes.Error, spans[1].Status().Code)
	assert.Equal(t, "bucket missing", spans[1].Status().Description)
}

func TestTraceID_NoSpan(t *testing.T) {
	assert.Empty(t, TraceID(context.Background()))
}

type stubShutdowner struct {
	err    error
	called bool
}

func (s *stubShutdowner) Shutdown(context.Context) error {
	s.called = true
	return s.err
}

func TestShutdownAll(t *testing.T) {
	first := &stubShutdowner{err: errors.New("first")}
	second := &stubShutdowner{}

	err := ShutdownAll(context.Background(), first, nil, second)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "first")
	assert.True(t, first.called)
	assert.True(t, second.called)
}
