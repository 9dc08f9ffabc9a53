package handler

import (
	reportapp "github.com/craftshop/backend/internal/application/report"
	"github.com/gin-gonic/gin"
)

// ReportHandler handles admin sales dashboard endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) bindFilter(c *gin.Context) (reportapp.SalesReportFilter, bool) {
	var filter reportapp.SalesReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return filter, false
	}
	return filter, true
}

// Dashboard handles GET /api/v1/admin/reports/dashboard
func (h *ReportHandler) Dashboard(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}

	resp, err := h.reportService.GetDashboard(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Summary handles GET /api/v1/admin/reports/summary
func (h *ReportHandler) Summary(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}

	resp, err := h.reportService.GetSalesSummary(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// StatusBreakdown handles GET /api/v1/admin/reports/status
func (h *ReportHandler) StatusBreakdown(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}

	resp, err := h.reportService.GetStatusBreakdown(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Trend handles GET /api/v1/admin/reports/trend
func (h *ReportHandler) Trend(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}

	resp, err := h.reportService.GetDailySalesTrend(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// TopProducts handles GET /api/v1/admin/reports/top-products
func (h *ReportHandler) TopProducts(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}

	resp, err := h.reportService.GetProductSalesRanking(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
