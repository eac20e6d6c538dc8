package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/retailpos/backend/internal/infrastructure/config"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type queryStartKey struct{}

// RegisterDBTracing installs otelgorm so every query becomes a child span of
// the request. Query variables are dropped unless db_log_full_sql is set.
// Statements slower than the configured threshold are flagged on their span.
func RegisterDBTracing(db *gorm.DB, cfg config.TelemetryConfig, logger *zap.Logger) error {
	if !cfg.DBTraceEnabled {
		logger.Debug("Database tracing disabled")
		return nil
	}

	// The marker must run before otelgorm ends the span, so it registers first.
	slow := &slowQueryMarker{threshold: cfg.DBSlowQueryThresh, logger: logger}
	if err := registerAroundCallbacks(db, "otel_slow_query", markQueryStart, slow.after); err != nil {
		return err
	}

	opts := []otelgorm.Option{otelgorm.WithDBName("postgresql")}
	if !cfg.DBLogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", cfg.DBLogFullSQL),
		zap.Duration("slow_query_threshold", cfg.DBSlowQueryThresh),
	)
	return nil
}

func markQueryStart(db *gorm.DB) {
	if db.Statement.Context != nil {
		db.Statement.Context = context.WithValue(db.Statement.Context, queryStartKey{}, time.Now())
	}
}

func queryElapsed(db *gorm.DB) (time.Duration, bool) {
	if db.Statement.Context == nil {
		return 0, false
	}
	start, ok := db.Statement.Context.Value(queryStartKey{}).(time.Time)
	if !ok {
		return 0, false
	}
	return time.Since(start), true
}

type slowQueryMarker struct {
	threshold time.Duration
	logger    *zap.Logger
}

func (m *slowQueryMarker) after(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	if db.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
	}
	span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))

	if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
		span.RecordError(db.Error)
		span.SetStatus(codes.Error, db.Error.Error())
	}

	if elapsed, ok := queryElapsed(db); ok && m.threshold > 0 && elapsed > m.threshold {
		span.SetAttributes(
			attribute.Bool("db.slow_query", true),
			attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
		)
		m.logger.Warn("Slow query",
			zap.String("table", db.Statement.Table),
			zap.Duration("elapsed", elapsed),
			zap.String("trace_id", TraceID(ctx)),
		)
	}
}

// registerAroundCallbacks hooks before and after every gorm operation
func registerAroundCallbacks(db *gorm.DB, prefix string, before, after func(*gorm.DB)) error {
	type register func(name string, fn func(*gorm.DB)) error
	cb := db.Callback()
	steps := []struct {
		op            string
		before, after register
	}{
		{"create", cb.Create().Before("gorm:create").Register, cb.Create().After("gorm:create").Register},
		{"query", cb.Query().Before("gorm:query").Register, cb.Query().After("gorm:query").Register},
		{"update", cb.Update().Before("gorm:update").Register, cb.Update().After("gorm:update").Register},
		{"delete", cb.Delete().Before("gorm:delete").Register, cb.Delete().After("gorm:delete").Register},
		{"row", cb.Row().Before("gorm:row").Register, cb.Row().After("gorm:row").Register},
		{"raw", cb.Raw().Before("gorm:raw").Register, cb.Raw().After("gorm:raw").Register},
	}

	for _, s := range steps {
		if before != nil {
			if err := s.before(prefix+":before_"+s.op, before); err != nil {
				return err
			}
		}
		if err := s.after(prefix+":after_"+s.op, after); err != nil {
			return err
		}
	}
	return nil
}
