package telemetry

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// ErrMeterNil is returned when a metrics constructor receives no meter
var ErrMeterNil = errors.New("meter cannot be nil")

// LowStockProvider counts the stock rows under their threshold
type LowStockProvider interface {
	LowStockCount(ctx context.Context) (int64, error)
}

// LowStockFunc adapts a function to LowStockProvider
type LowStockFunc func(ctx context.Context) (int64, error)

// LowStockCount calls f
func (f LowStockFunc) LowStockCount(ctx context.Context) (int64, error) {
	return f(ctx)
}

// BusinessMetrics records stock movements, issue lifecycle transitions,
// label sheet rendering and the low stock gauge.
type BusinessMetrics struct {
	logger *zap.Logger

	stockTransactions *Counter
	issueTransitions  *Counter
	labelSheets       *Counter
	labelsPrinted     *Counter
	renderDuration    *Histogram
	lowStock          *Gauge

	lowStockProvider LowStockProvider
	stopCh           chan struct{}
	stopOnce         sync.Once
	startOnce        sync.Once
	wg               sync.WaitGroup
}

// BusinessMetricsConfig holds configuration for business metrics.
type BusinessMetricsConfig struct {
	Meter            metric.Meter
	Logger           *zap.Logger
	LowStockProvider LowStockProvider
}

// NewBusinessMetrics creates the business instruments on cfg.Meter
func NewBusinessMetrics(cfg BusinessMetricsConfig) (*BusinessMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	bm := &BusinessMetrics{
		logger:           logger,
		lowStockProvider: cfg.LowStockProvider,
		stopCh:           make(chan struct{}),
	}

	var err error
	if bm.stockTransactions, err = NewCounter(cfg.Meter,
		"inventory_stock_transactions_total",
		"Stock transactions written, by type and operation",
		"{transactions}",
	); err != nil {
		return nil, err
	}
	if bm.issueTransitions, err = NewCounter(cfg.Meter,
		"inventory_issue_transitions_total",
		"Issue status transitions",
		"{transitions}",
	); err != nil {
		return nil, err
	}
	if bm.labelSheets, err = NewCounter(cfg.Meter,
		"inventory_label_sheets_total",
		"QR label sheets rendered, by result",
		"{sheets}",
	); err != nil {
		return nil, err
	}
	if bm.labelsPrinted, err = NewCounter(cfg.Meter,
		"inventory_labels_printed_total",
		"Labels placed on rendered sheets",
		"{labels}",
	); err != nil {
		return nil, err
	}
	if bm.renderDuration, err = NewHistogram(cfg.Meter, HistogramOpts{
		Name:        "inventory_label_render_duration_seconds",
		Description: "Label sheet PDF render latency",
		Unit:        "s",
		Boundaries:  RenderDurationBuckets,
	}); err != nil {
		return nil, err
	}
	if bm.lowStock, err = NewGauge(cfg.Meter,
		"inventory_low_stock_count",
		"Stock rows below their minimum stock threshold",
		"{rows}",
	); err != nil {
		return nil, err
	}
	return bm, nil
}

// RecordStockTransaction counts one stock transaction write.
// operation is create, update, delete or issue.
func (bm *BusinessMetrics) RecordStockTransaction(ctx context.Context, txType, operation string) {
	bm.stockTransactions.Inc(ctx, AttrTxType.String(txType), AttrOperation.String(operation))
}

// RecordIssueTransition counts an issue moving from one status to another
func (bm *BusinessMetrics) RecordIssueTransition(ctx context.Context, from, to string) {
	bm.issueTransitions.Inc(ctx, AttrFromStatus.String(from), AttrToStatus.String(to))
}

// RecordLabelSheet records a label sheet render attempt
func (bm *BusinessMetrics) RecordLabelSheet(ctx context.Context, labels int, duration time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	bm.labelSheets.Inc(ctx, AttrLabelResult.String(result))
	bm.renderDuration.RecordDuration(ctx, duration, AttrLabelResult.String(result))
	if err == nil {
		bm.labelsPrinted.Add(ctx, int64(labels))
	}
}

// RecordLowStockCount sets the low stock gauge
func (bm *BusinessMetrics) RecordLowStockCount(ctx context.Context, count int64) {
	bm.lowStock.Record(ctx, count)
}

// StartPeriodicCollection refreshes the low stock gauge every interval
// (default 5 minutes) until Stop is called or ctx ends.
func (bm *BusinessMetrics) StartPeriodicCollection(ctx context.Context, interval time.Duration) {
	if bm.lowStockProvider == nil {
		bm.logger.Debug("No low stock provider configured, skipping periodic collection")
		return
	}
	bm.startOnce.Do(func() {
		if interval <= 0 {
			interval = 5 * time.Minute
		}
		bm.wg.Add(1)
		go bm.runPeriodicCollection(ctx, interval)
	})
}

func (bm *BusinessMetrics) runPeriodicCollection(ctx context.Context, interval time.Duration) {
	defer bm.wg.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	bm.collect(ctx)
	for {
		select {
		case <-bm.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			bm.collect(ctx)
		}
	}
}

func (bm *BusinessMetrics) collect(ctx context.Context) {
	count, err := bm.lowStockProvider.LowStockCount(ctx)
	if err != nil {
		bm.logger.Warn("Failed to collect low stock count", zap.Error(err))
		return
	}
	bm.RecordLowStockCount(ctx, count)
}

// Stop ends periodic collection and waits for the collector to exit
func (bm *BusinessMetrics) Stop() {
	bm.stopOnce.Do(func() {
		close(bm.stopCh)
	})
	bm.wg.Wait()
}
