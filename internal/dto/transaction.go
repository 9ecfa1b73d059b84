package dto

import (
	"time"

	"github.com/congnodev/cashflow_mgmt_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to record a transaction.
type CreateTransactionRequest struct {
	// Row is the source CSV line this request came from, used to attribute
	// import errors. Zero for requests that did not come from a file.
	Row int `json:"-"`

	Code            string          `json:"code"` // Optional, generated when empty
	CustomerID      string          `json:"customerID" binding:"required"`
	BankAccountID   string          `json:"bankAccountID"`
	BranchID        string          `json:"branchID"`
	TransactionType string          `json:"transactionType" binding:"required,oneof=payment charge adjustment refund"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	TransactionDate time.Time       `json:"transactionDate" binding:"required"`
	Description     string          `json:"description"`
	ReferenceNumber string          `json:"referenceNumber"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID   string          `json:"transactionID"`
	Code            string          `json:"code"`
	CustomerID      string          `json:"customerID"`
	BankAccountID   string          `json:"bankAccountID"`
	BranchID        string          `json:"branchID"`
	TransactionType string          `json:"transactionType"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionDate time.Time       `json:"transactionDate"`
	Description     string          `json:"description"`
	ReferenceNumber string          `json:"referenceNumber"`
	CreatedAt       time.Time       `json:"createdAt"`
	CreatedBy       string          `json:"createdBy"`
}

// ToTransactionResponse converts a domain.Transaction to its DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:   txn.TransactionID,
		Code:            txn.Code,
		CustomerID:      txn.CustomerID,
		BankAccountID:   txn.BankAccountID,
		BranchID:        txn.BranchID,
		TransactionType: string(txn.TransactionType),
		Amount:          txn.Amount,
		TransactionDate: txn.TransactionDate,
		Description:     txn.Description,
		ReferenceNumber: txn.ReferenceNumber,
		CreatedAt:       txn.CreatedAt,
		CreatedBy:       txn.CreatedBy,
	}
}

// ToListTransactionResponse converts a slice of domain transactions.
func ToListTransactionResponse(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return res
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	BranchID        string     `form:"branchID"`
	CustomerID      string     `form:"customerID"`
	BankAccountID   string     `form:"bankAccountID"`
	TransactionType string     `form:"transactionType" binding:"omitempty,oneof=payment charge adjustment refund"`
	From            *time.Time `form:"from" time_format:"2006-01-02"`
	To              *time.Time `form:"to" time_format:"2006-01-02"`
	Limit           int        `form:"limit,default=50"`
	Offset          int        `form:"offset,default=0"`
}

// ListTransactionsResponse wraps the list of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// ImportRowError describes why one imported row was rejected.
type ImportRowError struct {
	Row   int    `json:"row"` // 1-based row number including the header
	Error string `json:"error"`
}

// ImportSummaryResponse reports the outcome of a bulk import. Valid rows are
// persisted even when other rows fail; failures are itemised instead of being
// silently dropped.
type ImportSummaryResponse struct {
	Imported int              `json:"imported"`
	Failed   int              `json:"failed"`
	Errors   []ImportRowError `json:"errors,omitempty"`
}
