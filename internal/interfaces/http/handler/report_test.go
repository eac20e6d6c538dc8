package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	reportapp "github.com/retailpos/backend/internal/application/report"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupReportRoutes(svc *mockReportService) *gin.Engine {
	engine := newTestEngine()
	h := NewReportHandler(svc)
	engine.GET("/sales/dashboard", h.Dashboard)
	engine.GET("/sales/reports", h.Reports)
	return engine
}

func TestReportHandler_Dashboard(t *testing.T) {
	svc := new(mockReportService)
	svc.On("Dashboard", mock.Anything).Return(&reportapp.DashboardResponse{
		TodaySales:          shared.NewAmount(decimal.NewFromInt(30)),
		Transactions:        3,
		AvgTransactionValue: shared.NewAmount(decimal.NewFromInt(10)),
	}, nil)

	w := doRequest(setupReportRoutes(svc), http.MethodGet, "/sales/dashboard", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	data := string(decode(t, w).Data)
	assert.Contains(t, data, `"transactions":3`)
	assert.Contains(t, data, `"today_sales":"30.00"`)
	assert.Contains(t, data, `"avg_transaction_value":"10.00"`)
}

func TestReportHandler_Reports(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := new(mockReportService)
		svc.On("Reports", mock.Anything).Return(&reportapp.ReportsResponse{
			Metrics: reportapp.ReportMetrics{
				Revenue:       reportapp.WindowedAmounts{Total: shared.NewAmount(decimal.RequireFromString("120.5"))},
				AvgOrderValue: shared.NewAmount(decimal.RequireFromString("40.1666")),
			},
			TopProducts: []reportapp.TopProductResponse{
				{ProductName: "Latte", TotalSold: 4, TotalRevenue: shared.NewAmount(decimal.NewFromInt(14))},
			},
		}, nil)

		w := doRequest(setupReportRoutes(svc), http.MethodGet, "/sales/reports", nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		data := string(decode(t, w).Data)
		assert.Contains(t, data, `"total":"120.50"`)
		assert.Contains(t, data, `"avg_order_value":"40.17"`)
		assert.Contains(t, data, `"total_revenue":"14.00"`)
	})

	t.Run("service error", func(t *testing.T) {
		svc := new(mockReportService)
		svc.On("Reports", mock.Anything).Return(nil, shared.ErrInternal)

		w := doRequest(setupReportRoutes(svc), http.MethodGet, "/sales/reports", nil, "")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
