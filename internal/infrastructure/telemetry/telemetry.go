// Package telemetry wires OpenTelemetry tracing, metrics and logs plus the
// Pyroscope profiler. Every provider is optional: when disabled it falls back
// to the global no-op implementation so callers never need nil checks.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
)

// InstrumentationName names the tracer and meter used by this service
const InstrumentationName = "inventory-backend"

// shutdownTimeout bounds each provider shutdown
const shutdownTimeout = 10 * time.Second

// Collector is the OTLP/gRPC endpoint and the service identity shared by
// the trace, metric and log pipelines.
type Collector struct {
	Endpoint       string
	Insecure       bool
	ServiceName    string
	ServiceVersion string
}

func (c Collector) resource() (*resource.Resource, error) {
	version := c.ServiceVersion
	if version == "" {
		version = "dev"
	}
	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(semconv.SchemaURL,
		semconv.ServiceName(c.ServiceName),
		semconv.ServiceVersion(version),
	))
	if err != nil {
		return nil, fmt.Errorf("otel resource: %w", err)
	}
	return res, nil
}

// Shutdowner is implemented by every provider in this package
type Shutdowner interface {
	Shutdown(ctx context.Context) error
}

// ShutdownAll shuts providers down in order and joins their errors
func ShutdownAll(ctx context.Context, providers ...Shutdowner) error {
	var errs []error
	for _, p := range providers {
		if p == nil {
			continue
		}
		if err := p.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
