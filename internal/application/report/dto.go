package report

import (
	"github.com/retailpos/backend/internal/application/trade"
	"github.com/retailpos/backend/internal/domain/report"
	"github.com/retailpos/backend/internal/domain/shared"
)

// DashboardResponse is the point-of-sale dashboard for the current day
type DashboardResponse struct {
	TodaySales          shared.Amount         `json:"today_sales"`
	Transactions        int64                 `json:"transactions"`
	ProductsInStock     int64                 `json:"products_in_stock"`
	LowStockCount       int64                 `json:"low_stock_count"`
	ActiveCustomers     int64                 `json:"active_customers"`
	RecentSales         []trade.SaleResponse  `json:"recent_sales"`
	LowStockItems       []report.LowStockItem `json:"low_stock_items"`
	PaymentSuccessRate  float64               `json:"payment_success_rate"`
	AvgTransactionValue shared.Amount         `json:"avg_transaction_value"`
	AvgCheckoutTime     float64               `json:"avg_checkout_time"`
}

// WindowedAmounts is a currency metric per report window
type WindowedAmounts struct {
	Total shared.Amount `json:"total"`
	Today shared.Amount `json:"today"`
	Week  shared.Amount `json:"week"`
	Month shared.Amount `json:"month"`
}

// WindowedCounts is a count metric per report window
type WindowedCounts struct {
	Total int64 `json:"total"`
	Today int64 `json:"today"`
	Week  int64 `json:"week"`
	Month int64 `json:"month"`
}

// CustomerMetrics counts all customers and those created in each window
type CustomerMetrics struct {
	Total    int64 `json:"total"`
	NewToday int64 `json:"new_today"`
	NewWeek  int64 `json:"new_week"`
	NewMonth int64 `json:"new_month"`
}

// ReportMetrics groups the headline report figures
type ReportMetrics struct {
	Revenue       WindowedAmounts `json:"revenue"`
	Orders        WindowedCounts  `json:"orders"`
	AvgOrderValue shared.Amount   `json:"avg_order_value"`
	Customers     CustomerMetrics `json:"customers"`
}

// ReportsResponse is the reports page payload
type ReportsResponse struct {
	Metrics        ReportMetrics               `json:"metrics"`
	TopProducts    []TopProductResponse         `json:"top_products"`
	PaymentMethods []PaymentMethodShareResponse `json:"payment_methods"`
	RecentReports  []report.ReportEntry         `json:"recent_reports"`
}

// TopProductResponse is one row of the best seller ranking
type TopProductResponse struct {
	ProductName     string        `json:"product__name"`
	ProductCategory string        `json:"product__category"`
	TotalSold       int64         `json:"total_sold"`
	TotalRevenue    shared.Amount `json:"total_revenue"`
}

// PaymentMethodShareResponse is the completed sales total for one method
type PaymentMethodShareResponse struct {
	PaymentMethod string        `json:"payment_method"`
	Count         int64         `json:"count"`
	Total         shared.Amount `json:"total"`
}

func toTopProductResponses(rows []report.ProductSales) []TopProductResponse {
	out := make([]TopProductResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, TopProductResponse{
			ProductName:     r.ProductName,
			ProductCategory: r.ProductCategory,
			TotalSold:       r.TotalSold,
			TotalRevenue:    shared.NewAmount(r.TotalRevenue),
		})
	}
	return out
}

func toPaymentMethodShareResponses(rows []report.PaymentMethodShare) []PaymentMethodShareResponse {
	out := make([]PaymentMethodShareResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, PaymentMethodShareResponse{
			PaymentMethod: r.PaymentMethod,
			Count:         r.Count,
			Total:         shared.NewAmount(r.Total),
		})
	}
	return out
}
