package persistence

import (
	"context"
	"time"

	"github.com/retailpos/backend/internal/domain/finance"
	"github.com/retailpos/backend/internal/domain/partner"
	"github.com/retailpos/backend/internal/domain/report"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormReportQueryRepository implements report.QueryRepository with
// aggregate SQL over sales, products, customers and payments
type GormReportQueryRepository struct {
	db *gorm.DB
}

// NewGormReportQueryRepository creates a new GormReportQueryRepository
func NewGormReportQueryRepository(db *gorm.DB) *GormReportQueryRepository {
	return &GormReportQueryRepository{db: db}
}

func (r *GormReportQueryRepository) completedSales(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.SaleModel{}).
		Where("payment_status = ?", finance.PaymentStatusCompleted)
}

// CompletedSalesTotals returns revenue and count of completed sales
func (r *GormReportQueryRepository) CompletedSalesTotals(ctx context.Context, since *time.Time) (report.SalesTotals, error) {
	var result struct {
		Revenue decimal.Decimal
		Count   int64
	}

	query := r.completedSales(ctx).
		Select("COALESCE(SUM(total_price), 0) AS revenue, COUNT(*) AS count")
	if since != nil {
		query = query.Where("sale_date >= ?", *since)
	}
	if err := query.Scan(&result).Error; err != nil {
		return report.SalesTotals{}, err
	}
	return report.SalesTotals{Revenue: shared.RoundMoney(result.Revenue), Count: result.Count}, nil
}

// TotalStock sums stock over all products
func (r *GormReportQueryRepository) TotalStock(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.ProductModel{}).
		Select("COALESCE(SUM(stock), 0)").
		Scan(&total).Error
	return total, err
}

// CountLowStock counts products below their minimum stock
func (r *GormReportQueryRepository) CountLowStock(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ProductModel{}).
		Where("stock < min_stock").
		Count(&count).Error
	return count, err
}

// LowStockItems lists products below their minimum stock, emptiest first
func (r *GormReportQueryRepository) LowStockItems(ctx context.Context, limit int) ([]report.LowStockItem, error) {
	items := []report.LowStockItem{}
	err := r.db.WithContext(ctx).Model(&models.ProductModel{}).
		Select("name, stock, min_stock, category").
		Where("stock < min_stock").
		Order("stock ASC").Order("name ASC").
		Limit(limit).
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormReportQueryRepository) CountActiveCustomers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.CustomerModel{}).
		Where("status = ?", partner.CustomerStatusActive).
		Count(&count).Error
	return count, err
}

func (r *GormReportQueryRepository) CountCustomersSince(ctx context.Context, since *time.Time) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.CustomerModel{})
	if since != nil {
		query = query.Where("created_at >= ?", *since)
	}
	err := query.Count(&count).Error
	return count, err
}

// PaymentCountsSince counts payments dated at or after since and how many completed
func (r *GormReportQueryRepository) PaymentCountsSince(ctx context.Context, since time.Time) (report.PaymentCounts, error) {
	var result struct {
		Total     int64
		Completed int64
	}
	err := r.db.WithContext(ctx).Model(&models.PaymentModel{}).
		Select("COUNT(*) AS total, COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS completed",
			finance.PaymentStatusCompleted).
		Where("payment_date >= ?", since).
		Scan(&result).Error
	if err != nil {
		return report.PaymentCounts{}, err
	}
	return report.PaymentCounts{Total: result.Total, Completed: result.Completed}, nil
}

// TopProducts ranks products by units sold in completed sales
func (r *GormReportQueryRepository) TopProducts(ctx context.Context, limit int) ([]report.ProductSales, error) {
	var rows []struct {
		ProductName     string
		ProductCategory string
		TotalSold       int64
		TotalRevenue    decimal.Decimal
	}
	err := r.db.WithContext(ctx).Table("sales s").
		Select(`
			p.name AS product_name,
			p.category AS product_category,
			COALESCE(SUM(s.quantity), 0) AS total_sold,
			COALESCE(SUM(s.total_price), 0) AS total_revenue
		`).
		Joins("JOIN products p ON p.id = s.product_id").
		Where("s.payment_status = ?", finance.PaymentStatusCompleted).
		Group("p.name, p.category").
		Order("total_sold DESC").Order("p.name ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	ranking := make([]report.ProductSales, len(rows))
	for i, row := range rows {
		ranking[i] = report.ProductSales{
			ProductName:     row.ProductName,
			ProductCategory: row.ProductCategory,
			TotalSold:       row.TotalSold,
			TotalRevenue:    shared.RoundMoney(row.TotalRevenue),
		}
	}
	return ranking, nil
}

// PaymentMethodShares groups completed sales by payment method
func (r *GormReportQueryRepository) PaymentMethodShares(ctx context.Context) ([]report.PaymentMethodShare, error) {
	var rows []struct {
		PaymentMethod string
		Count         int64
		Total         decimal.Decimal
	}
	err := r.completedSales(ctx).
		Select("payment_method, COUNT(*) AS count, COALESCE(SUM(total_price), 0) AS total").
		Group("payment_method").
		Order("payment_method ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	shares := make([]report.PaymentMethodShare, len(rows))
	for i, row := range rows {
		shares[i] = report.PaymentMethodShare{
			PaymentMethod: row.PaymentMethod,
			Count:         row.Count,
			Total:         shared.RoundMoney(row.Total),
		}
	}
	return shares, nil
}

var _ report.QueryRepository = (*GormReportQueryRepository)(nil)
