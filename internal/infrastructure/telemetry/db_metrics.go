package telemetry

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBMetrics records query latency and connection pool usage
type DBMetrics struct {
	queryDuration metric.Float64Histogram
	slowQueries   metric.Int64Counter
	slowThreshold time.Duration
	registration  metric.Registration
}

// RegisterDBMetrics instruments db on meter. Pool gauges are observed on each
// collection so no background goroutine is needed.
func RegisterDBMetrics(db *gorm.DB, meter metric.Meter, slowThreshold time.Duration, logger *zap.Logger) (*DBMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	m := &DBMetrics{slowThreshold: slowThreshold}
	if m.queryDuration, err = meter.Float64Histogram("db_client_query_duration",
		metric.WithDescription("Duration of database statements"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(DBDurationBuckets...)); err != nil {
		return nil, err
	}
	if m.slowQueries, err = meter.Int64Counter("db_client_slow_queries_total",
		metric.WithDescription("Statements slower than the slow query threshold"),
		metric.WithUnit("{queries}")); err != nil {
		return nil, err
	}
	if err := m.observePool(meter, sqlDB); err != nil {
		return nil, err
	}

	if err := registerAroundCallbacks(db, "otel_metrics", markQueryStart, m.after); err != nil {
		return nil, err
	}

	logger.Info("Database metrics registered", zap.Duration("slow_query_threshold", slowThreshold))
	return m, nil
}

func (m *DBMetrics) observePool(meter metric.Meter, sqlDB *sql.DB) error {
	connections, err := meter.Int64ObservableGauge("db_client_connections",
		metric.WithDescription("Connections in the pool by state"),
		metric.WithUnit("{connections}"))
	if err != nil {
		return err
	}
	maxOpen, err := meter.Int64ObservableGauge("db_client_connections_max",
		metric.WithDescription("Maximum open connections"),
		metric.WithUnit("{connections}"))
	if err != nil {
		return err
	}

	m.registration, err = meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		stats := sqlDB.Stats()
		o.ObserveInt64(maxOpen, int64(stats.MaxOpenConnections))
		o.ObserveInt64(connections, int64(stats.Idle), metric.WithAttributes(AttrDBPoolState.String("idle")))
		o.ObserveInt64(connections, int64(stats.InUse), metric.WithAttributes(AttrDBPoolState.String("in_use")))
		return nil
	}, connections, maxOpen)
	return err
}

func (m *DBMetrics) after(db *gorm.DB) {
	elapsed, ok := queryElapsed(db)
	if !ok {
		return
	}
	ctx := db.Statement.Context
	op := metric.WithAttributes(AttrDBOperation.String(operationOf(db.Statement.SQL.String())))
	m.queryDuration.Record(ctx, elapsed.Seconds(), op)

	if m.slowThreshold > 0 && elapsed > m.slowThreshold {
		table := db.Statement.Table
		if table == "" {
			table = "unknown"
		}
		m.slowQueries.Add(ctx, 1, metric.WithAttributes(AttrDBTable.String(table)))
	}
}

// Stop unregisters the pool gauges
func (m *DBMetrics) Stop() error {
	if m.registration == nil {
		return nil
	}
	return m.registration.Unregister()
}

func operationOf(statement string) string {
	statement = strings.ToUpper(strings.TrimSpace(statement))
	for _, op := range []string{"SELECT", "INSERT", "UPDATE", "DELETE"} {
		if strings.HasPrefix(statement, op) {
			return op
		}
	}
	return "OTHER"
}
