package telemetry

import (
	"context"
	"errors"

	"github.com/google/uuid"
	apptrade "github.com/retailpos/backend/internal/application/trade"
	"github.com/retailpos/backend/internal/domain/finance"
	"github.com/retailpos/backend/internal/domain/trade"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// ErrMeterNil is returned when metrics are built without a meter
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")

// StockSource reports catalog figures observed on each collection
type StockSource interface {
	CountLowStock(ctx context.Context) (int64, error)
	TotalStock(ctx context.Context) (int64, error)
}

// PaymentMetrics records sale payments as OpenTelemetry metrics. It is
// registered on the payment processor as a listener.
type PaymentMetrics struct {
	logger *zap.Logger

	payments     metric.Int64Counter
	revenue      metric.Float64Counter
	saleAmount   metric.Float64Histogram
	itemsSold    metric.Int64Counter
	failures     metric.Int64Counter
	registration metric.Registration
}

// NewPaymentMetrics creates the payment instruments on meter. When stock is
// non-nil the low stock count and units on hand are observed as gauges.
func NewPaymentMetrics(meter metric.Meter, stock StockSource, logger *zap.Logger) (*PaymentMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &PaymentMetrics{logger: logger}

	var err error
	if m.payments, err = meter.Int64Counter("pos_payments_total",
		metric.WithDescription("Payment attempts by method and outcome"),
		metric.WithUnit("{payments}")); err != nil {
		return nil, err
	}
	if m.revenue, err = meter.Float64Counter("pos_revenue_total",
		metric.WithDescription("Revenue from completed sales"),
		metric.WithUnit("{currency}")); err != nil {
		return nil, err
	}
	if m.saleAmount, err = meter.Float64Histogram("pos_sale_amount",
		metric.WithDescription("Distribution of completed sale totals"),
		metric.WithUnit("{currency}"),
		metric.WithExplicitBucketBoundaries(SaleAmountBuckets...)); err != nil {
		return nil, err
	}
	if m.itemsSold, err = meter.Int64Counter("pos_items_sold_total",
		metric.WithDescription("Units removed from stock by completed sales"),
		metric.WithUnit("{units}")); err != nil {
		return nil, err
	}
	if m.failures, err = meter.Int64Counter("pos_payment_failures_total",
		metric.WithDescription("Failed payment attempts by failure kind"),
		metric.WithUnit("{payments}")); err != nil {
		return nil, err
	}

	if stock != nil {
		if err := m.observeStock(meter, stock); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *PaymentMetrics) observeStock(meter metric.Meter, stock StockSource) error {
	lowStock, err := meter.Int64ObservableGauge("pos_low_stock_products",
		metric.WithDescription("Products below their minimum stock"),
		metric.WithUnit("{products}"))
	if err != nil {
		return err
	}
	onHand, err := meter.Int64ObservableGauge("pos_stock_units",
		metric.WithDescription("Units in stock across all products"),
		metric.WithUnit("{units}"))
	if err != nil {
		return err
	}

	m.registration, err = meter.RegisterCallback(func(ctx context.Context, o metric.Observer) error {
		if n, err := stock.CountLowStock(ctx); err == nil {
			o.ObserveInt64(lowStock, n)
		} else {
			m.logger.Warn("Failed to collect low stock count", zap.Error(err))
		}
		if n, err := stock.TotalStock(ctx); err == nil {
			o.ObserveInt64(onHand, n)
		} else {
			m.logger.Warn("Failed to collect stock units", zap.Error(err))
		}
		return nil
	}, lowStock, onHand)
	return err
}

// PaymentCompleted records a settled sale
func (m *PaymentMetrics) PaymentCompleted(ctx context.Context, sale *trade.Sale, payment *finance.Payment) {
	amount := payment.Amount.InexactFloat64()
	method := AttrPaymentMethod.String(string(payment.Method))

	m.payments.Add(ctx, 1, metric.WithAttributes(method, AttrPaymentStatus.String(string(finance.PaymentStatusCompleted))))
	m.revenue.Add(ctx, amount, metric.WithAttributes(method))
	m.saleAmount.Record(ctx, amount, metric.WithAttributes(method))
	m.itemsSold.Add(ctx, int64(sale.Quantity))

	AddEvent(ctx, "payment.completed",
		SpanAttrSaleID, sale.ID.String(),
		SpanAttrCustomerID, sale.CustomerID.String(),
		SpanAttrProductID, sale.ProductID.String(),
		SpanAttrPaymentMethod, string(payment.Method),
		SpanAttrAmount, payment.Amount.StringFixed(2),
	)
}

// PaymentFailed records a rejected or rolled back payment
func (m *PaymentMetrics) PaymentFailed(ctx context.Context, saleID uuid.UUID, kind apptrade.PaymentErrorKind) {
	attrs := []attribute.KeyValue{AttrFailureKind.String(string(kind))}
	m.failures.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.payments.Add(ctx, 1, metric.WithAttributes(AttrPaymentStatus.String(string(finance.PaymentStatusFailed))))

	AddEvent(ctx, "payment.failed",
		SpanAttrSaleID, saleID.String(),
		SpanAttrFailureKind, string(kind),
	)
}

// Stop unregisters the stock gauges
func (m *PaymentMetrics) Stop() error {
	if m.registration == nil {
		return nil
	}
	return m.registration.Unregister()
}

var _ apptrade.PaymentListener = (*PaymentMetrics)(nil)
