package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer represents a receivables customer.
//
// TotalBalance and LastTransactionDate are derived from the full transaction
// set on every read; they are never maintained incrementally, so they are
// always consistent with the ledger at read time.
type Customer struct {
	CustomerID   string `json:"customerID"`
	CustomerCode string `json:"customerCode"`
	FullName     string `json:"fullName"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Address      string `json:"address"`
	BranchID     string `json:"branchID"`
	IsActive     bool   `json:"isActive"`
	AuditFields

	// Derived fields, populated on read.
	TotalBalance        decimal.Decimal `json:"totalBalance"` // Negative means the customer owes money
	LastTransactionDate *time.Time      `json:"lastTransactionDate,omitempty"`
}
