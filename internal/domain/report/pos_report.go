package report

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// AverageCheckoutTimeMinutes is reported as-is on the dashboard; checkout
// duration is not tracked.
const AverageCheckoutTimeMinutes = 4.2

const (
	// RecentSalesLimit is the number of completed sales shown on the dashboard
	RecentSalesLimit = 5
	// LowStockItemsLimit is the number of low stock products shown on the dashboard
	LowStockItemsLimit = 5
	// TopProductsLimit is the number of products in the best seller ranking
	TopProductsLimit = 10

	weekWindowDays  = 7
	monthWindowDays = 30
	dateLayout      = "2006-01-02"
)

// SalesTotals is the revenue and count of completed sales in a window
type SalesTotals struct {
	Revenue decimal.Decimal
	Count   int64
}

// PaymentCounts is the number of payments and how many completed
type PaymentCounts struct {
	Total     int64
	Completed int64
}

// LowStockItem is the dashboard projection of a product below its minimum
type LowStockItem struct {
	Name     string `json:"name"`
	Stock    int    `json:"stock"`
	MinStock int    `json:"min_stock"`
	Category string `json:"category"`
}

// ProductSales is a best seller row
type ProductSales struct {
	ProductName     string          `json:"product__name"`
	ProductCategory string          `json:"product__category"`
	TotalSold       int64           `json:"total_sold"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
}

// PaymentMethodShare is the count and amount of completed sales per method
type PaymentMethodShare struct {
	PaymentMethod string          `json:"payment_method"`
	Count         int64           `json:"count"`
	Total         decimal.Decimal `json:"total"`
}

// ReportEntry describes a generated report. Entries are synthetic and
// have no stored artifact.
type ReportEntry struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Size string `json:"size"`
	Date string `json:"date"`
}

// Windows holds the start of each trailing report window
type Windows struct {
	Today    time.Time
	WeekAgo  time.Time
	MonthAgo time.Time
}

// NewWindows computes the report windows for the local date of now
func NewWindows(now time.Time) Windows {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return Windows{
		Today:    today,
		WeekAgo:  today.AddDate(0, 0, -weekWindowDays),
		MonthAgo: today.AddDate(0, 0, -monthWindowDays),
	}
}

// RecentReports returns the synthetic report listing for the windows
func (w Windows) RecentReports() []ReportEntry {
	today := w.Today.Format(dateLayout)
	return []ReportEntry{
		{Name: fmt.Sprintf("Daily Sales Summary - %s", today), Type: "Sales", Size: "245 KB", Date: today},
		{Name: fmt.Sprintf("Weekly Report - %s to %s", w.WeekAgo.Format(dateLayout), today), Type: "Sales", Size: "1.2 MB", Date: today},
		{Name: fmt.Sprintf("Monthly Report - %s to %s", w.MonthAgo.Format(dateLayout), today), Type: "Sales", Size: "2.5 MB", Date: today},
	}
}

// SuccessRate returns completed/total as a percentage, 0 when there is nothing to rate
func (c PaymentCounts) SuccessRate() float64 {
	if c.Total == 0 {
		return 0
	}
	rate, _ := decimal.NewFromInt(c.Completed).
		Div(decimal.NewFromInt(c.Total)).
		Mul(decimal.NewFromInt(100)).
		Round(2).
		Float64()
	return rate
}

// Average returns revenue divided by count, 0 when count is zero
func (t SalesTotals) Average() decimal.Decimal {
	if t.Count == 0 {
		return decimal.Zero
	}
	return t.Revenue.Div(decimal.NewFromInt(t.Count)).Round(2)
}

// QueryRepository provides the aggregate queries behind the dashboard and
// reports. A nil since means all time.
type QueryRepository interface {
	// CompletedSalesTotals sums completed sales with sale_date >= since
	CompletedSalesTotals(ctx context.Context, since *time.Time) (SalesTotals, error)

	// TotalStock sums stock over all products
	TotalStock(ctx context.Context) (int64, error)

	// CountLowStock counts products with stock below min_stock
	CountLowStock(ctx context.Context) (int64, error)

	// LowStockItems returns up to limit products with stock below min_stock
	LowStockItems(ctx context.Context, limit int) ([]LowStockItem, error)

	// CountActiveCustomers counts customers with status active
	CountActiveCustomers(ctx context.Context) (int64, error)

	// CountCustomersSince counts customers created at or after since
	CountCustomersSince(ctx context.Context, since *time.Time) (int64, error)

	// PaymentCountsSince counts payments dated at or after since
	PaymentCountsSince(ctx context.Context, since time.Time) (PaymentCounts, error)

	// TopProducts ranks products by units sold in completed sales
	TopProducts(ctx context.Context, limit int) ([]ProductSales, error)

	// PaymentMethodShares groups completed sales by payment method
	PaymentMethodShares(ctx context.Context) ([]PaymentMethodShare, error)
}
