package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	apptrade "github.com/retailpos/backend/internal/application/trade"
	"github.com/retailpos/backend/internal/domain/finance"
	"github.com/retailpos/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

type stubStock struct {
	lowStock int64
	total    int64
	err      error
}

func (s stubStock) CountLowStock(context.Context) (int64, error) { return s.lowStock, s.err }
func (s stubStock) TotalStock(context.Context) (int64, error)    { return s.total, s.err }

func newTestMeter(t *testing.T) (*sdkmetric.ManualReader, *sdkmetric.MeterProvider) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })
	return reader, provider
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	out := map[string]metricdata.Metrics{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func TestNewPaymentMetrics_NilMeter(t *testing.T) {
	_, err := NewPaymentMetrics(nil, nil, nil)
	assert.ErrorIs(t, err, ErrMeterNil)
}

func TestPaymentMetrics_PaymentCompleted(t *testing.T) {
	reader, provider := newTestMeter(t)
	m, err := NewPaymentMetrics(provider.Meter("test"), nil, nil)
	require.NoError(t, err)

	sale := &trade.Sale{Quantity: 3}
	sale.ID = uuid.New()
	payment := &finance.Payment{Amount: decimal.RequireFromString("12.50"), Method: finance.PaymentMethodCard}

	m.PaymentCompleted(context.Background(), sale, payment)
	m.PaymentCompleted(context.Background(), sale, payment)

	metrics := collect(t, reader)

	payments := metrics["pos_payments_total"].Data.(metricdata.Sum[int64])
	require.Len(t, payments.DataPoints, 1)
	assert.Equal(t, int64(2), payments.DataPoints[0].Value)
	method, _ := payments.DataPoints[0].Attributes.Value(AttrPaymentMethod)
	assert.Equal(t, "card", method.AsString())

	revenue := metrics["pos_revenue_total"].Data.(metricdata.Sum[float64])
	require.Len(t, revenue.DataPoints, 1)
	assert.InDelta(t, 25.0, revenue.DataPoints[0].Value, 0.001)

	items := metrics["pos_items_sold_total"].Data.(metricdata.Sum[int64])
	require.Len(t, items.DataPoints, 1)
	assert.Equal(t, int64(6), items.DataPoints[0].Value)

	amounts := metrics["pos_sale_amount"].Data.(metricdata.Histogram[float64])
	require.Len(t, amounts.DataPoints, 1)
	assert.Equal(t, uint64(2), amounts.DataPoints[0].Count)
}

func TestPaymentMetrics_PaymentFailed(t *testing.T) {
	reader, provider := newTestMeter(t)
	m, err := NewPaymentMetrics(provider.Meter("test"), nil, nil)
	require.NoError(t, err)

	m.PaymentFailed(context.Background(), uuid.New(), apptrade.PaymentErrorInsufficientStock)

	metrics := collect(t, reader)
	failures := metrics["pos_payment_failures_total"].Data.(metricdata.Sum[int64])
	require.Len(t, failures.DataPoints, 1)
	kind, _ := failures.DataPoints[0].Attributes.Value(AttrFailureKind)
	assert.Equal(t, "insufficient_stock", kind.AsString())

	payments := metrics["pos_payments_total"].Data.(metricdata.Sum[int64])
	require.Len(t, payments.DataPoints, 1)
	status, _ := payments.DataPoints[0].Attributes.Value(AttrPaymentStatus)
	assert.Equal(t, "failed", status.AsString())
}

func TestPaymentMetrics_StockGauges(t *testing.T) {
	t.Run("observes stock on collection", func(t *testing.T) {
		reader, provider := newTestMeter(t)
		m, err := NewPaymentMetrics(provider.Meter("test"), stubStock{lowStock: 2, total: 140}, nil)
		require.NoError(t, err)

		metrics := collect(t, reader)
		low := metrics["pos_low_stock_products"].Data.(metricdata.Gauge[int64])
		require.Len(t, low.DataPoints, 1)
		assert.Equal(t, int64(2), low.DataPoints[0].Value)

		units := metrics["pos_stock_units"].Data.(metricdata.Gauge[int64])
		require.Len(t, units.DataPoints, 1)
		assert.Equal(t, int64(140), units.DataPoints[0].Value)

		assert.NoError(t, m.Stop())
	})

	t.Run("skips failed reads", func(t *testing.T) {
		reader, provider := newTestMeter(t)
		_, err := NewPaymentMetrics(provider.Meter("test"), stubStock{err: errors.New("db down")}, nil)
		require.NoError(t, err)

		if low, ok := collect(t, reader)["pos_low_stock_products"]; ok {
			assert.Empty(t, low.Data.(metricdata.Gauge[int64]).DataPoints)
		}
	})
}
