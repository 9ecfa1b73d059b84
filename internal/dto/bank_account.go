package dto

import (
	"time"

	"github.com/congnodev/cashflow_mgmt_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBankAccountRequest defines the data needed to create a bank account.
type CreateBankAccountRequest struct {
	AccountName   string `json:"accountName" binding:"required"`
	AccountNumber string `json:"accountNumber" binding:"required"`
	BankName      string `json:"bankName"`
	BranchID      string `json:"branchID"`
}

// BalanceSnapshotResponse is one point of the per-period balance series.
type BalanceSnapshotResponse struct {
	Date    time.Time       `json:"date"`
	Balance decimal.Decimal `json:"balance"`
}

// BankAccountResponse defines the data returned for a bank account.
type BankAccountResponse struct {
	BankAccountID string                    `json:"bankAccountID"`
	AccountName   string                    `json:"accountName"`
	AccountNumber string                    `json:"accountNumber"`
	BankName      string                    `json:"bankName"`
	BranchID      string                    `json:"branchID"`
	IsActive      bool                      `json:"isActive"`
	Balance       decimal.Decimal           `json:"balance"`
	Historical    []BalanceSnapshotResponse `json:"historical,omitempty"`
}

// ToBankAccountResponse converts a domain.BankAccount to its DTO.
func ToBankAccountResponse(a *domain.BankAccount) BankAccountResponse {
	historical := make([]BalanceSnapshotResponse, len(a.Historical))
	for i, s := range a.Historical {
		historical[i] = BalanceSnapshotResponse{Date: s.Date, Balance: s.Balance}
	}
	return BankAccountResponse{
		BankAccountID: a.BankAccountID,
		AccountName:   a.AccountName,
		AccountNumber: a.AccountNumber,
		BankName:      a.BankName,
		BranchID:      a.BranchID,
		IsActive:      a.IsActive,
		Balance:       a.Balance,
		Historical:    historical,
	}
}

// ToListBankAccountResponse converts a slice of domain bank accounts.
func ToListBankAccountResponse(accounts []domain.BankAccount) []BankAccountResponse {
	res := make([]BankAccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToBankAccountResponse(&accounts[i])
	}
	return res
}

// ListBankAccountsParams defines query parameters for listing bank accounts.
type ListBankAccountsParams struct {
	BranchID   string `form:"branchID"`
	TimeRange  string `form:"timeRange,default=month" binding:"omitempty,oneof=day week month quarter year"`
	RangeCount int    `form:"rangeCount,default=12" binding:"omitempty,min=1,max=120"`
}

// ListBankAccountsResponse wraps the list of bank accounts.
type ListBankAccountsResponse struct {
	BankAccounts []BankAccountResponse `json:"bankAccounts"`
}
