package repositories

import (
	"context"

	"github.com/congnodev/cashflow_mgmt_app/internal/core/domain"
)

// BankAccountReader provides read access to bank accounts.
type BankAccountReader interface {
	FindBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error)
	ListBankAccounts(ctx context.Context, branchID string) ([]domain.BankAccount, error)
}

// BankAccountWriter persists bank accounts.
type BankAccountWriter interface {
	SaveBankAccount(ctx context.Context, account domain.BankAccount) error
}

// BankAccountRepositoryFacade combines all bank account repository capabilities.
type BankAccountRepositoryFacade interface {
	BankAccountReader
	BankAccountWriter
}
