package services

import (
	"context"

	"github.com/congnodev/cashflow_mgmt_app/internal/core/domain"
	"github.com/congnodev/cashflow_mgmt_app/internal/dto"
)

// BankAccountSvcFacade exposes bank account operations. Balances and
// historical series are derived from the transaction history on read.
type BankAccountSvcFacade interface {
	CreateBankAccount(ctx context.Context, req dto.CreateBankAccountRequest, userID string) (*domain.BankAccount, error)
	GetBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error)
	ListBankAccounts(ctx context.Context, params dto.ListBankAccountsParams) ([]domain.BankAccount, error)
}
