package dto

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/congnodev/cashflow_mgmt_app/internal/core/domain"
)

// DashboardQueryParams defines query parameters for the dashboard metrics
// endpoint. AsOf defaults to the current time when omitted.
type DashboardQueryParams struct {
	BranchID   string     `form:"branchID"`
	TimeRange  string     `form:"timeRange,default=month" binding:"omitempty,oneof=day week month quarter year"`
	RangeCount int        `form:"rangeCount,default=12" binding:"omitempty,min=1,max=120"`
	AsOf       *time.Time `form:"asOf" time_format:"2006-01-02"`
}

// LedgerQueryParams defines query parameters for the receivable ledger
// endpoints (JSON and CSV export).
type LedgerQueryParams struct {
	BranchID   string     `form:"branchID"`
	TimeRange  string     `form:"timeRange,default=month" binding:"omitempty,oneof=day week month quarter year"`
	RangeCount int        `form:"rangeCount,default=12" binding:"omitempty,min=1,max=120"`
	AsOf       *time.Time `form:"asOf" time_format:"2006-01-02"`
}

// ledgerCSVHeader is the CSV header for the receivable ledger export.
const ledgerCSVHeader = "code,date,customer_id,type,amount,effect,running_balance,description"

const ledgerDateFormat = "2006-01-02"

// WriteLedgerCSV renders a receivable ledger as CSV, with opening and
// closing balances as summary rows around the transaction rows.
func WriteLedgerCSV(w io.Writer, l *domain.ReceivableLedger) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(ledgerCSVHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	opening := []string{"", l.From.Format(ledgerDateFormat), "", "opening_balance", "", "", l.OpeningBalance.StringFixed(2), ""}
	if err := cw.Write(opening); err != nil {
		return fmt.Errorf("writing opening balance: %w", err)
	}

	for i, row := range l.Rows {
		record := []string{
			row.Code,
			row.TransactionDate.Format(ledgerDateFormat),
			row.CustomerID,
			string(row.TransactionType),
			row.Amount.StringFixed(2),
			row.Effect.StringFixed(2),
			row.RunningBalance.StringFixed(2),
			row.Description,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	closing := []string{"", l.To.Format(ledgerDateFormat), "", "closing_balance", "", "", l.ClosingBalance.StringFixed(2), ""}
	if err := cw.Write(closing); err != nil {
		return fmt.Errorf("writing closing balance: %w", err)
	}
	return cw.Error()
}
