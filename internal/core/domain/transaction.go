package domain

import (
	"fmt"
	"time"

	"github.com/congnodev/cashflow_mgmt_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// TransactionType is the closed set of financial event kinds.
// The type decides how the amount affects receivable and cash balances.
type TransactionType string

const (
	Payment    TransactionType = "payment"
	Charge     TransactionType = "charge"
	Adjustment TransactionType = "adjustment"
	Refund     TransactionType = "refund"
)

// IsValid reports whether t is one of the known transaction types.
func (t TransactionType) IsValid() bool {
	switch t {
	case Payment, Charge, Adjustment, Refund:
		return true
	}
	return false
}

// Transaction represents a single financial event against a customer's
// receivable balance. Transactions are immutable once created: they are never
// updated or deleted, only appended by manual entry, bulk import, or seeding.
type Transaction struct {
	TransactionID   string          `json:"transactionID"` // Primary key (UUID)
	Code            string          `json:"code"`          // Human-facing code, unique
	CustomerID      string          `json:"customerID"`    // FK -> Customer
	BankAccountID   string          `json:"bankAccountID"` // FK -> BankAccount
	BranchID        string          `json:"branchID"`      // FK -> Branch
	TransactionType TransactionType `json:"transactionType"`
	Amount          decimal.Decimal `json:"amount"` // Signed for adjustment, unsigned magnitude otherwise
	TransactionDate time.Time       `json:"transactionDate"`
	Description     string          `json:"description"`
	ReferenceNumber string          `json:"referenceNumber"`
	AuditFields
}

// Validate rejects malformed transactions before they ever reach the
// aggregation paths. Records that would previously have been silently
// excluded (bad type, zero date) now fail loudly.
func (t Transaction) Validate() error {
	if !t.TransactionType.IsValid() {
		return fmt.Errorf("unknown transaction type %q: %w", t.TransactionType, apperrors.ErrValidation)
	}
	if t.TransactionDate.IsZero() {
		return fmt.Errorf("transaction date is required: %w", apperrors.ErrValidation)
	}
	if t.CustomerID == "" {
		return fmt.Errorf("customer ID is required: %w", apperrors.ErrValidation)
	}
	// Only adjustments carry a sign; other types are stored as a magnitude.
	if t.TransactionType != Adjustment && t.Amount.IsNegative() {
		return fmt.Errorf("%s amount must not be negative: %w", t.TransactionType, apperrors.ErrValidation)
	}
	if t.Amount.IsZero() {
		return fmt.Errorf("amount must not be zero: %w", apperrors.ErrValidation)
	}
	return nil
}
