package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/zap"
)

const defaultExportInterval = time.Minute

// MetricsConfig configures the OTLP metrics pipeline. ExportInterval falls
// back to one minute when unset.
type MetricsConfig struct {
	Enabled        bool
	ExportInterval time.Duration
	Collector
}

func (c MetricsConfig) interval() time.Duration {
	if c.ExportInterval > 0 {
		return c.ExportInterval
	}
	return defaultExportInterval
}

// MeterProvider owns the SDK provider when metrics are exported. A disabled
// provider hands out meters from the global no-op provider.
type MeterProvider struct {
	sdk *sdkmetric.MeterProvider
	log *zap.Logger
}

func NewMeterProvider(ctx context.Context, cfg MetricsConfig, log *zap.Logger) (*MeterProvider, error) {
	if !cfg.Enabled {
		log.Info("Metrics export disabled")
		return &MeterProvider{log: log}, nil
	}

	reader, err := newMetricReader(ctx, cfg)
	if err != nil {
		return nil, err
	}
	res, err := cfg.resource()
	if err != nil {
		return nil, err
	}

	sdk := sdkmetric.NewMeterProvider(sdkmetric.WithResource(res), sdkmetric.WithReader(reader))
	otel.SetMeterProvider(sdk)
	log.Info("Metrics export enabled",
		zap.String("collector_endpoint", cfg.Endpoint),
		zap.Duration("export_interval", cfg.interval()),
	)
	return &MeterProvider{sdk: sdk, log: log}, nil
}

func newMetricReader(ctx context.Context, cfg MetricsConfig) (sdkmetric.Reader, error) {
	opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}
	exporter, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("otlp metric exporter: %w", err)
	}
	return sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(cfg.interval())), nil
}

// Meter returns a meter scoped to name.
func (p *MeterProvider) Meter(name string, opts ...metric.MeterOption) metric.Meter {
	if p.sdk != nil {
		return p.sdk.Meter(name, opts...)
	}
	return otel.GetMeterProvider().Meter(name, opts...)
}

func (p *MeterProvider) IsEnabled() bool { return p.sdk != nil }

// Shutdown pushes the last collection and stops the periodic reader.
func (p *MeterProvider) Shutdown(ctx context.Context) error {
	if p.sdk == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := p.sdk.Shutdown(ctx); err != nil {
		return fmt.Errorf("meter provider shutdown: %w", err)
	}
	p.log.Info("Metrics exporter stopped")
	return nil
}
