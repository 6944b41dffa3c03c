package telemetry

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
)

func TestNewBusinessMetrics_NilMeter(t *testing.T) {
	bm, err := NewBusinessMetrics(BusinessMetricsConfig{})
	assert.ErrorIs(t, err, ErrMeterNil)
	assert.Nil(t, bm)
}

func TestBusinessMetrics_NoopMeter(t *testing.T) {
	bm, err := NewBusinessMetrics(BusinessMetricsConfig{Meter: noop.NewMeterProvider().Meter("test")})
	require.NoError(t, err)

	ctx := context.Background()
	bm.RecordStockTransaction(ctx, "IN", "create")
	bm.RecordIssueTransition(ctx, "DRAFT", "APPROVED")
	bm.RecordLabelSheet(ctx, 24, time.Second, nil)
	bm.RecordLowStockCount(ctx, 3)
	bm.Stop()
}

func TestBusinessMetrics_Counters(t *testing.T) {
	reader, provider := newTestMeter(t)
	bm, err := NewBusinessMetrics(BusinessMetricsConfig{Meter: provider.Meter("test")})
	require.NoError(t, err)

	ctx := context.Background()
	bm.RecordStockTransaction(ctx, "IN", "create")
	bm.RecordStockTransaction(ctx, "OUT", "issue")
	bm.RecordStockTransaction(ctx, "OUT", "issue")
	bm.RecordIssueTransition(ctx, "APPROVED", "ISSUED")
	bm.RecordLabelSheet(ctx, 24, 2*time.Second, nil)
	bm.RecordLabelSheet(ctx, 24, time.Second, errors.New("render failed"))

	data := collect(t, reader)
	assert.Equal(t, int64(3), sumTotal(t, data["inventory_stock_transactions_total"]))
	assert.Equal(t, int64(1), sumTotal(t, data["inventory_issue_transitions_total"]))
	assert.Equal(t, int64(2), sumTotal(t, data["inventory_label_sheets_total"]))
	assert.Equal(t, int64(24), sumTotal(t, data["inventory_labels_printed_total"]))

	sum := data["inventory_stock_transactions_total"].(metricdata.Sum[int64])
	for _, dp := range sum.DataPoints {
		txType, _ := dp.Attributes.Value(attribute.Key("tx_type"))
		if txType.AsString() == "OUT" {
			op, _ := dp.Attributes.Value(attribute.Key("operation"))
			assert.Equal(t, "issue", op.AsString())
			assert.Equal(t, int64(2), dp.Value)
		}
	}
}

func TestBusinessMetrics_PeriodicLowStock(t *testing.T) {
	reader, provider := newTestMeter(t)
	var calls atomic.Int32
	bm, err := NewBusinessMetrics(BusinessMetricsConfig{
		Meter:  provider.Meter("test"),
		Logger: zap.NewNop(),
		LowStockProvider: LowStockFunc(func(context.Context) (int64, error) {
			calls.Add(1)
			return 7, nil
		}),
	})
	require.NoError(t, err)

	bm.StartPeriodicCollection(context.Background(), time.Hour)
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	bm.Stop()

	gauge, ok := collect(t, reader)["inventory_low_stock_count"].(metricdata.Gauge[int64])
	require.True(t, ok)
	require.Len(t, gauge.DataPoints, 1)
	assert.Equal(t, int64(7), gauge.DataPoints[0].Value)
}

func TestBusinessMetrics_PeriodicWithoutProvider(t *testing.T) {
	bm, err := NewBusinessMetrics(BusinessMetricsConfig{Meter: noop.NewMeterProvider().Meter("test")})
	require.NoError(t, err)
	bm.StartPeriodicCollection(context.Background(), time.Millisecond)
	bm.Stop()
}
