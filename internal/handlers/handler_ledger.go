package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/congnodev/cashflow_mgmt_app/internal/core/ledger"
	portssvc "github.com/congnodev/cashflow_mgmt_app/internal/core/ports/services"
	"github.com/congnodev/cashflow_mgmt_app/internal/dto"
	"github.com/congnodev/cashflow_mgmt_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ledgerHandler handles HTTP requests for the receivable ledger.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// registerLedgerRoutes registers the ledger routes.
func registerLedgerRoutes(rg *gin.RouterGroup, svc portssvc.LedgerSvcFacade) {
	h := &ledgerHandler{ledgerService: svc}

	ledgerGroup := rg.Group("/ledger")
	{
		ledgerGroup.GET("", h.getLedger)
		ledgerGroup.GET("/export", h.exportLedgerCSV)
	}
}

func (h *ledgerHandler) buildLedger(c *gin.Context) (*dto.LedgerQueryParams, *time.Time, bool) {
	var params dto.LedgerQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return nil, nil, false
	}
	asOf := time.Now()
	if params.AsOf != nil {
		asOf = *params.AsOf
	}
	return &params, &asOf, true
}

// getLedger godoc
// @Summary Get the receivable ledger
// @Description Returns opening balance, per-transaction rows with running balances, and closing balance for one window.
// @Tags ledger
// @Produce json
// @Param branchID query string false "Scope to one branch"
// @Param timeRange query string false "Bucket granularity" Enums(day, week, month, quarter, year) default(month)
// @Param rangeCount query int false "Number of periods" default(12)
// @Param asOf query string false "Reference date (YYYY-MM-DD), defaults to now"
// @Success 200 {object} domain.ReceivableLedger
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /ledger [get]
func (h *ledgerHandler) getLedger(c *gin.Context) {
	params, asOf, ok := h.buildLedger(c)
	if !ok {
		return
	}
	timeRange, err := ledger.ParseTimeRange(params.TimeRange)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.ledgerService.GetReceivableLedger(c.Request.Context(), params.BranchID, timeRange, params.RangeCount, *asOf)
	if err != nil {
		respondServiceError(c, err, "Failed to build receivable ledger")
		return
	}
	c.JSON(http.StatusOK, result)
}

// exportLedgerCSV godoc
// @Summary Export the receivable ledger as CSV
// @Description Streams the ledger as a CSV attachment with opening and closing balance summary rows.
// @Tags ledger
// @Produce text/csv
// @Param branchID query string false "Scope to one branch"
// @Param timeRange query string false "Bucket granularity" Enums(day, week, month, quarter, year) default(month)
// @Param rangeCount query int false "Number of periods" default(12)
// @Param asOf query string false "Reference date (YYYY-MM-DD), defaults to now"
// @Success 200 {string} string "CSV content"
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /ledger/export [get]
func (h *ledgerHandler) exportLedgerCSV(c *gin.Context) {
	params, asOf, ok := h.buildLedger(c)
	if !ok {
		return
	}
	timeRange, err := ledger.ParseTimeRange(params.TimeRange)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.ledgerService.GetReceivableLedger(c.Request.Context(), params.BranchID, timeRange, params.RangeCount, *asOf)
	if err != nil {
		respondServiceError(c, err, "Failed to build receivable ledger")
		return
	}

	filename := fmt.Sprintf("ledger_%s.csv", asOf.Format("2006-01-02"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := dto.WriteLedgerCSV(c.Writer, result); err != nil {
		// Headers are already sent; log instead of a late error payload.
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to stream ledger CSV",
			slog.String("error", err.Error()))
	}
}
