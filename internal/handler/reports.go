package handler

import (
	"net/http"

	"github.com/Sergiom84/Lucy3000/internal/dto"
	"github.com/Sergiom84/Lucy3000/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct{ svc service.ReportService }

func NewReportHandler(svc service.ReportService) *ReportHandler { return &ReportHandler{svc: svc} }

// Sales godoc
// @Summary Sales report for a date range
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param start_date query string false "YYYY-MM-DD"
// @Param end_date query string false "YYYY-MM-DD"
// @Success 200 {object} dto.SalesReportResponse
// @Router /api/reports/sales [get]
func (h *ReportHandler) Sales(c *gin.Context) {
	var filter dto.DateRangeFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.Sales(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Clients godoc
// @Summary Client spend and loyalty report
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ClientReportResponse
// @Router /api/reports/clients [get]
func (h *ReportHandler) Clients(c *gin.Context) {
	resp, err := h.svc.Clients(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Products godoc
// @Summary Inventory value, low stock and top sellers
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param start_date query string false "YYYY-MM-DD"
// @Param end_date query string false "YYYY-MM-DD"
// @Success 200 {object} dto.ProductReportResponse
// @Router /api/reports/products [get]
func (h *ReportHandler) Products(c *gin.Context) {
	var filter dto.DateRangeFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.Products(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Cash godoc
// @Summary Cash flow report for a date range
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param start_date query string false "YYYY-MM-DD"
// @Param end_date query string false "YYYY-MM-DD"
// @Success 200 {object} dto.CashReportResponse
// @Router /api/reports/cash [get]
func (h *ReportHandler) Cash(c *gin.Context) {
	var filter dto.DateRangeFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.Cash(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
