package cache

import (
	"context"
	"fmt"
	"io"

	"github.com/retailpos/backend/internal/application/report"
	"github.com/retailpos/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ReportCache is a report.Cache that holds resources until closed
type ReportCache interface {
	report.Cache
	io.Closer
}

// ReportCacheFactory creates the report cache based on configuration
type ReportCacheFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// ReportCacheFactoryOption is a functional option for configuring the factory
type ReportCacheFactoryOption func(*ReportCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) ReportCacheFactoryOption {
	return func(f *ReportCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether an unreachable Redis falls back to
// process memory. Defaults to true.
func WithInMemoryFallback(allow bool) ReportCacheFactoryOption {
	return func(f *ReportCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewReportCacheFactory creates a new factory
func NewReportCacheFactory(cfg config.RedisConfig, opts ...ReportCacheFactoryOption) *ReportCacheFactory {
	f := &ReportCacheFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateCache returns a Redis cache when a host is configured and reachable,
// otherwise an in-memory cache
func (f *ReportCacheFactory) CreateCache(ctx context.Context) (ReportCache, error) {
	if f.redisConfig.Host == "" {
		f.logger.Info("Redis not configured, using in-memory report cache")
		return NewInMemoryReportCache(), nil
	}

	c, err := NewRedisReportCache(ctx, f.redisConfig, WithCacheLogger(f.logger.Named("redis")))
	if err == nil {
		f.logger.Info("Using Redis report cache", zap.String("addr", f.redisConfig.Addr()))
		return c, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("redis required for report cache but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory report cache. "+
		"Instances will not share cached reports.",
		zap.Error(err),
	)
	return NewInMemoryReportCache(), nil
}
