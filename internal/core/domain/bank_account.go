package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceSnapshot is one point of a bank account's per-period balance series.
type BalanceSnapshot struct {
	Date    time.Time       `json:"date"`
	Balance decimal.Decimal `json:"balance"`
}

// BankAccount represents a cash account at a branch.
//
// Balance is derived by rolling cash effects forward over the transaction
// history: payments add, refunds subtract, adjustments apply their sign, and
// charges have no cash effect. Historical holds the per-period series
// produced by the same rollforward.
type BankAccount struct {
	BankAccountID string `json:"bankAccountID"`
	AccountName   string `json:"accountName"`
	AccountNumber string `json:"accountNumber"`
	BankName      string `json:"bankName"`
	BranchID      string `json:"branchID"`
	IsActive      bool   `json:"isActive"`
	AuditFields

	// Derived fields, populated on read.
	Balance    decimal.Decimal   `json:"balance"`
	Historical []BalanceSnapshot `json:"historical,omitempty"`
}
