package telemetry

import (
	"context"
	"fmt"
	"sync/atomic"

	otelpyroscope "github.com/grafana/otel-profiling-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Config enables tracing. SamplingRatio applies to root spans; child spans
// follow their parent's decision.
type Config struct {
	Enabled       bool
	SamplingRatio float64
	Collector
}

type TracerProvider struct {
	sdk      *sdktrace.TracerProvider
	log      *zap.Logger
	profiled atomic.Bool
}

// NewTracerProvider installs a batching OTLP provider and the W3C trace
// context propagator as globals. Disabled tracing leaves the no-op globals.
func NewTracerProvider(ctx context.Context, cfg Config, log *zap.Logger) (*TracerProvider, error) {
	if !cfg.Enabled {
		log.Info("Tracing disabled")
		return &TracerProvider{log: log}, nil
	}

	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}
	exporter, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("otlp trace exporter: %w", err)
	}
	res, err := cfg.resource()
	if err != nil {
		return nil, err
	}

	sdk := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(samplerFor(cfg.SamplingRatio)),
	)
	otel.SetTracerProvider(sdk)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	log.Info("Tracing enabled",
		zap.String("collector_endpoint", cfg.Endpoint),
		zap.String("service_name", cfg.ServiceName),
		zap.Float64("sampling_ratio", cfg.SamplingRatio))
	return &TracerProvider{sdk: sdk, log: log}, nil
}

func samplerFor(ratio float64) sdktrace.Sampler {
	root := sdktrace.TraceIDRatioBased(ratio)
	switch {
	case ratio >= 1:
		root = sdktrace.AlwaysSample()
	case ratio <= 0:
		root = sdktrace.NeverSample()
	}
	return sdktrace.ParentBased(root)
}

// EnableSpanProfiles tags CPU profile samples with span IDs so Pyroscope can
// link them to traces. It needs a running profiler and reports whether the
// global provider was replaced.
func (tp *TracerProvider) EnableSpanProfiles() bool {
	if tp.sdk == nil || !tp.profiled.CompareAndSwap(false, true) {
		return false
	}
	otel.SetTracerProvider(otelpyroscope.NewTracerProvider(tp.sdk))
	tp.log.Info("Span profiles enabled")
	return true
}

func (tp *TracerProvider) Tracer(name string, opts ...trace.TracerOption) trace.Tracer {
	if tp.sdk != nil {
		return tp.sdk.Tracer(name, opts...)
	}
	return otel.GetTracerProvider().Tracer(name, opts...)
}

func (tp *TracerProvider) IsEnabled() bool { return tp.sdk != nil }

// Shutdown exports buffered spans before closing the exporter.
func (tp *TracerProvider) Shutdown(ctx context.Context) error {
	if tp.sdk == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := tp.sdk.Shutdown(ctx); err != nil {
		return fmt.Errorf("tracer provider shutdown: %w", err)
	}
	tp.log.Info("Tracing exporter stopped")
	return nil
}
