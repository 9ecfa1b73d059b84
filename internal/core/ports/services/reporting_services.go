package services

import (
	"context"
	"time"

	"github.com/congnodev/cashflow_mgmt_app/internal/core/domain"
	"github.com/congnodev/cashflow_mgmt_app/internal/core/ledger"
)

// DashboardSvcFacade assembles the dashboard metrics payload.
type DashboardSvcFacade interface {
	// GetDashboardMetrics builds the full payload for one
	// (timeRange, rangeCount) request, optionally scoped to a branch.
	GetDashboardMetrics(ctx context.Context, branchID string, timeRange ledger.TimeRange, rangeCount int, asOf time.Time) (*domain.DashboardMetrics, error)
}

// LedgerSvcFacade produces the receivable ledger used for export.
type LedgerSvcFacade interface {
	GetReceivableLedger(ctx context.Context, branchID string, timeRange ledger.TimeRange, rangeCount int, asOf time.Time) (*domain.ReceivableLedger, error)
}
