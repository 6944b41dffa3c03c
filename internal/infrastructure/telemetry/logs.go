package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/log/global"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LogsConfig struct {
	Enabled bool
	Collector
}

// LoggerProvider ships zap records to the collector through the otelzap
// bridge. It does nothing while disabled.
type LoggerProvider struct {
	sdk     *sdklog.LoggerProvider
	service string
	log     *zap.Logger
}

func NewLoggerProvider(ctx context.Context, cfg LogsConfig, log *zap.Logger) (*LoggerProvider, error) {
	lp := &LoggerProvider{service: cfg.ServiceName, log: log}
	if !cfg.Enabled {
		log.Info("Log export disabled")
		return lp, nil
	}

	opts := []otlploggrpc.Option{otlploggrpc.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlploggrpc.WithInsecure())
	}
	exporter, err := otlploggrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("otlp log exporter: %w", err)
	}
	res, err := cfg.resource()
	if err != nil {
		return nil, err
	}

	lp.sdk = sdklog.NewLoggerProvider(sdklog.WithResource(res), sdklog.WithProcessor(sdklog.NewBatchProcessor(exporter)))
	global.SetLoggerProvider(lp.sdk)
	log.Info("Log export enabled", zap.String("collector_endpoint", cfg.Endpoint))
	return lp, nil
}

func (lp *LoggerProvider) IsEnabled() bool { return lp.sdk != nil }

// Bridge tees base into the OTLP pipeline for records at minLevel and
// above. base is returned as is when export is disabled.
func (lp *LoggerProvider) Bridge(base *zap.Logger, minLevel zapcore.Level) *zap.Logger {
	if lp.sdk == nil {
		return base
	}
	exported, err := zapcore.NewIncreaseLevelCore(
		otelzap.NewCore(lp.service, otelzap.WithLoggerProvider(lp.sdk)), minLevel)
	if err != nil {
		lp.log.Warn("Log export level ignored", zap.Stringer("level", minLevel), zap.Error(err))
		exported = otelzap.NewCore(lp.service, otelzap.WithLoggerProvider(lp.sdk))
	}
	return base.WithOptions(zap.WrapCore(func(local zapcore.Core) zapcore.Core {
		return zapcore.NewTee(local, exported)
	}))
}

// Shutdown flushes the batch processor.
func (lp *LoggerProvider) Shutdown(ctx context.Context) error {
	if lp.sdk == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := lp.sdk.Shutdown(ctx); err != nil {
		return fmt.Errorf("logger provider shutdown: %w", err)
	}
	return nil
}
