package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/application/trade"
	"github.com/retailpos/backend/internal/domain/finance"
	"github.com/retailpos/backend/internal/domain/report"
	"github.com/retailpos/backend/internal/domain/shared"
	domainTrade "github.com/retailpos/backend/internal/domain/trade"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ReportService builds the dashboard and reports read models
type ReportService struct {
	queryRepo report.QueryRepository
	saleRepo  domainTrade.SaleRepository
	cache     Cache
	cacheTTL  time.Duration
	logger    *zap.Logger
	now       func() time.Time
}

// Option configures a ReportService
type Option func(*ReportService)

// WithCache caches payloads for ttl. A zero ttl disables caching.
func WithCache(cache Cache, ttl time.Duration) Option {
	return func(s *ReportService) {
		s.cache = cache
		s.cacheTTL = ttl
	}
}

// WithClock overrides the time source for report windows
func WithClock(now func() time.Time) Option {
	return func(s *ReportService) {
		s.now = now
	}
}

// NewReportService creates a new ReportService
func NewReportService(queryRepo report.QueryRepository, saleRepo domainTrade.SaleRepository, logger *zap.Logger, opts ...Option) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &ReportService{
		queryRepo: queryRepo,
		saleRepo:  saleRepo,
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dashboard returns today's point-of-sale figures
func (s *ReportService) Dashboard(ctx context.Context) (*DashboardResponse, error) {
	var cached DashboardResponse
	if s.cacheGet(ctx, dashboardCacheKey, &cached) {
		return &cached, nil
	}

	w := report.NewWindows(s.now())
	var (
		today     report.SalesTotals
		stock     int64
		lowCount  int64
		active    int64
		recent    []domainTrade.Sale
		lowItems  []report.LowStockItem
		payCounts report.PaymentCounts
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		today, err = s.queryRepo.CompletedSalesTotals(gctx, &w.Today)
		return err
	})
	g.Go(func() (err error) {
		stock, err = s.queryRepo.TotalStock(gctx)
		return err
	})
	g.Go(func() (err error) {
		lowCount, err = s.queryRepo.CountLowStock(gctx)
		return err
	})
	g.Go(func() (err error) {
		active, err = s.queryRepo.CountActiveCustomers(gctx)
		return err
	})
	g.Go(func() (err error) {
		filter := shared.NewListFilter(1, report.RecentSalesLimit, "sale_date", "desc", "", "sale_date", "sale_date")
		filter.Filters["payment_status"] = string(finance.PaymentStatusCompleted)
		recent, err = s.saleRepo.FindAll(gctx, filter)
		return err
	})
	g.Go(func() (err error) {
		lowItems, err = s.queryRepo.LowStockItems(gctx, report.LowStockItemsLimit)
		return err
	})
	g.Go(func() (err error) {
		payCounts, err = s.queryRepo.PaymentCountsSince(gctx, w.Today)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("failed to build dashboard", zap.Error(err))
		return nil, err
	}

	if lowItems == nil {
		lowItems = []report.LowStockItem{}
	}
	resp := &DashboardResponse{
		TodaySales:          shared.NewAmount(today.Revenue),
		Transactions:        today.Count,
		ProductsInStock:     stock,
		LowStockCount:       lowCount,
		ActiveCustomers:     active,
		RecentSales:         trade.ToSaleResponses(recent),
		LowStockItems:       lowItems,
		PaymentSuccessRate:  payCounts.SuccessRate(),
		AvgTransactionValue: shared.NewAmount(today.Average()),
		AvgCheckoutTime:     report.AverageCheckoutTimeMinutes,
	}

	s.cacheSet(ctx, dashboardCacheKey, resp)
	return resp, nil
}

// Reports returns revenue, orders and customer figures over the
// today/week/month/all-time windows, plus rankings
func (s *ReportService) Reports(ctx context.Context) (*ReportsResponse, error) {
	var cached ReportsResponse
	if s.cacheGet(ctx, reportsCacheKey, &cached) {
		return &cached, nil
	}

	w := report.NewWindows(s.now())
	var (
		all, today, week, month                report.SalesTotals
		customers, newToday, newWeek, newMonth int64
		top                                    []report.ProductSales
		methods                                []report.PaymentMethodShare
	)

	g, gctx := errgroup.WithContext(ctx)
	salesWindow := func(dst *report.SalesTotals, since *time.Time) {
		g.Go(func() (err error) {
			*dst, err = s.queryRepo.CompletedSalesTotals(gctx, since)
			return err
		})
	}
	customerWindow := func(dst *int64, since *time.Time) {
		g.Go(func() (err error) {
			*dst, err = s.queryRepo.CountCustomersSince(gctx, since)
			return err
		})
	}
	salesWindow(&all, nil)
	salesWindow(&today, &w.Today)
	salesWindow(&week, &w.WeekAgo)
	salesWindow(&month, &w.MonthAgo)
	customerWindow(&customers, nil)
	customerWindow(&newToday, &w.Today)
	customerWindow(&newWeek, &w.WeekAgo)
	customerWindow(&newMonth, &w.MonthAgo)
	g.Go(func() (err error) {
		top, err = s.queryRepo.TopProducts(gctx, report.TopProductsLimit)
		return err
	})
	g.Go(func() (err error) {
		methods, err = s.queryRepo.PaymentMethodShares(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("failed to build reports", zap.Error(err))
		return nil, err
	}

	resp := &ReportsResponse{
		Metrics: ReportMetrics{
			Revenue: WindowedAmounts{
				Total: shared.NewAmount(all.Revenue),
				Today: shared.NewAmount(today.Revenue),
				Week:  shared.NewAmount(week.Revenue),
				Month: shared.NewAmount(month.Revenue),
			},
			Orders: WindowedCounts{
				Total: all.Count,
				Today: today.Count,
				Week:  week.Count,
				Month: month.Count,
			},
			AvgOrderValue: shared.NewAmount(all.Average()),
			Customers: CustomerMetrics{
				Total:    customers,
				NewToday: newToday,
				NewWeek:  newWeek,
				NewMonth: newMonth,
			},
		},
		TopProducts:    toTopProductResponses(top),
		PaymentMethods: toPaymentMethodShareResponses(methods),
		RecentReports:  w.RecentReports(),
	}

	s.cacheSet(ctx, reportsCacheKey, resp)
	return resp, nil
}

// Invalidate drops cached dashboard and reports payloads
func (s *ReportService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, dashboardCacheKey, reportsCacheKey); err != nil {
		s.logger.Warn("failed to invalidate report cache", zap.Error(err))
	}
}

// PaymentCompleted invalidates cached figures after a sale is paid
func (s *ReportService) PaymentCompleted(ctx context.Context, _ *domainTrade.Sale, _ *finance.Payment) {
	s.Invalidate(ctx)
}

// PaymentFailed is a no-op; failed sales do not change report figures
func (s *ReportService) PaymentFailed(context.Context, uuid.UUID, trade.PaymentErrorKind) {}

var _ trade.PaymentListener = (*ReportService)(nil)

func (s *ReportService) cacheGet(ctx context.Context, key string, dest any) bool {
	if s.cache == nil || s.cacheTTL <= 0 {
		return false
	}
	found, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		s.logger.Warn("report cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return found
}

func (s *ReportService) cacheSet(ctx context.Context, key string, value any) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return
	}
	if err := s.cache.Set(ctx, key, value, s.cacheTTL); err != nil {
		s.logger.Warn("report cache write failed", zap.String("key", key), zap.Error(err))
	}
}
