package handlers

import (
	"net/http"
	"time"

	"github.com/congnodev/cashflow_mgmt_app/internal/core/ledger"
	portssvc "github.com/congnodev/cashflow_mgmt_app/internal/core/ports/services"
	"github.com/congnodev/cashflow_mgmt_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// dashboardHandler handles HTTP requests for the dashboard metrics payload.
type dashboardHandler struct {
	dashboardService portssvc.DashboardSvcFacade
}

// registerDashboardRoutes registers the dashboard route.
func registerDashboardRoutes(rg *gin.RouterGroup, svc portssvc.DashboardSvcFacade) {
	h := &dashboardHandler{dashboardService: svc}
	rg.GET("/dashboard", h.getDashboard)
}

// getDashboard godoc
// @Summary Get dashboard metrics
// @Description Assembles the full dashboard payload for one time range. Every figure is recomputed from the transaction history.
// @Tags dashboard
// @Produce json
// @Param branchID query string false "Scope to one branch"
// @Param timeRange query string false "Bucket granularity" Enums(day, week, month, quarter, year) default(month)
// @Param rangeCount query int false "Number of periods" default(12)
// @Param asOf query string false "Reference date (YYYY-MM-DD), defaults to now"
// @Success 200 {object} domain.DashboardMetrics
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /dashboard [get]
func (h *dashboardHandler) getDashboard(c *gin.Context) {
	var params dto.DashboardQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	timeRange, err := ledger.ParseTimeRange(params.TimeRange)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	asOf := time.Now()
	if params.AsOf != nil {
		asOf = *params.AsOf
	}

	metrics, err := h.dashboardService.GetDashboardMetrics(c.Request.Context(), params.BranchID, timeRange, params.RangeCount, asOf)
	if err != nil {
		respondServiceError(c, err, "Failed to build dashboard metrics")
		return
	}
	c.JSON(http.StatusOK, metrics)
}
