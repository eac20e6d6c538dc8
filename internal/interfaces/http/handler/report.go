package handler

import "github.com/gin-gonic/gin"

// ReportHandler serves the dashboard and reports views
type ReportHandler struct {
	BaseHandler
	reportService ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Dashboard godoc
// @ID           getSalesDashboard
// @Summary      Sales dashboard
// @Description  Today's sales, stock and customer counters with the latest sales and low stock items
// @Tags         reports
// @Produce      json
// @Success      200 {object} APIResponse[reportapp.DashboardResponse]
// @Failure      500 {object} ErrorResponse
// @Router       /sales/dashboard [get]
func (h *ReportHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.reportService.Dashboard(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dashboard)
}

// Reports godoc
// @ID           getSalesReports
// @Summary      Sales reports
// @Description  Revenue, order and customer metrics over today, week and month windows with top products and payment method shares
// @Tags         reports
// @Produce      json
// @Success      200 {object} APIResponse[reportapp.ReportsResponse]
// @Failure      500 {object} ErrorResponse
// @Router       /sales/reports [get]
func (h *ReportHandler) Reports(c *gin.Context) {
	reports, err := h.reportService.Reports(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, reports)
}
