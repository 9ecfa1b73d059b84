package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashFlowPoint is one period bucket of the dashboard's cash-flow chart.
type CashFlowPoint struct {
	Date    time.Time       `json:"date"`
	Inflow  decimal.Decimal `json:"inflow"`
	Outflow decimal.Decimal `json:"outflow"`
	NetFlow decimal.Decimal `json:"netFlow"`
}

// CustomerBalance is a customer with its full-history receivable balance,
// used for the top-customers ranking.
type CustomerBalance struct {
	CustomerID   string          `json:"customerID"`
	CustomerCode string          `json:"customerCode"`
	FullName     string          `json:"fullName"`
	Balance      decimal.Decimal `json:"balance"`
}

// BranchActivity is the per-branch income/debt rollup for one window.
type BranchActivity struct {
	BranchID   string          `json:"branchID"`
	BranchName string          `json:"branchName"`
	Income     decimal.Decimal `json:"income"`
	Debt       decimal.Decimal `json:"debt"`
}

// DashboardMetrics is the full dashboard payload for one
// (timeRange, rangeCount) request. Deltas compare the current window against
// the equal-length window immediately preceding it.
type DashboardMetrics struct {
	TimeRange  string    `json:"timeRange"`
	RangeCount int       `json:"rangeCount"`
	AsOf       time.Time `json:"asOf"`

	TotalReceivable decimal.Decimal `json:"totalReceivable"`
	ReceivableDelta decimal.Decimal `json:"receivableDelta"`

	ActiveCustomers      int `json:"activeCustomers"`
	ActiveCustomersDelta int `json:"activeCustomersDelta"`

	PaymentCount      int `json:"paymentCount"`
	PaymentCountDelta int `json:"paymentCountDelta"`
	ChargeCount       int `json:"chargeCount"`
	ChargeCountDelta  int `json:"chargeCountDelta"`

	TotalIncome decimal.Decimal `json:"totalIncome"`
	IncomeDelta decimal.Decimal `json:"incomeDelta"`
	TotalDebt   decimal.Decimal `json:"totalDebt"`
	DebtDelta   decimal.Decimal `json:"debtDelta"`

	CashFlow           []CashFlowPoint   `json:"cashFlow"`
	BankAccounts       []BankAccount     `json:"bankAccounts"`
	TopCustomers       []CustomerBalance `json:"topCustomers"`
	RecentTransactions []Transaction     `json:"recentTransactions"`
	BranchActivity     []BranchActivity  `json:"branchActivity"`
}

// LedgerRow is one transaction of a receivable ledger with the balance after
// applying it.
type LedgerRow struct {
	TransactionID   string          `json:"transactionID"`
	Code            string          `json:"code"`
	TransactionDate time.Time       `json:"transactionDate"`
	CustomerID      string          `json:"customerID"`
	TransactionType TransactionType `json:"transactionType"`
	Amount          decimal.Decimal `json:"amount"`
	Effect          decimal.Decimal `json:"effect"` // Signed receivable effect
	RunningBalance  decimal.Decimal `json:"runningBalance"`
	Description     string          `json:"description"`
}

// ReceivableLedger is the opening/closing balance plus a row-per-transaction
// ledger for one window, used to drive CSV/JSON export.
type ReceivableLedger struct {
	BranchID       string          `json:"branchID,omitempty"`
	TimeRange      string          `json:"timeRange"`
	RangeCount     int             `json:"rangeCount"`
	From           time.Time       `json:"from"`
	To             time.Time       `json:"to"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
	Rows           []LedgerRow     `json:"rows"`
}
