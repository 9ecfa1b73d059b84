package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/congnodev/cashflow_mgmt_app/internal/apperrors"
	"github.com/congnodev/cashflow_mgmt_app/internal/core/domain"
	portsrepo "github.com/congnodev/cashflow_mgmt_app/internal/core/ports/repositories"
)

// BankAccountRepository is an in-memory implementation of the bank account
// repository.
type BankAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]domain.BankAccount
}

// NewBankAccountRepository creates a new in-memory bank account repository.
func NewBankAccountRepository() *BankAccountRepository {
	return &BankAccountRepository{accounts: make(map[string]domain.BankAccount)}
}

var _ portsrepo.BankAccountRepositoryFacade = (*BankAccountRepository)(nil)

func (r *BankAccountRepository) SaveBankAccount(ctx context.Context, account domain.BankAccount) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.accounts[account.BankAccountID]; exists {
		return fmt.Errorf("bank account %s already exists: %w", account.BankAccountID, apperrors.ErrDuplicate)
	}
	for _, existing := range r.accounts {
		if existing.AccountNumber == account.AccountNumber && existing.BankName == account.BankName {
			return fmt.Errorf("account number %s at %s already exists: %w", account.AccountNumber, account.BankName, apperrors.ErrDuplicate)
		}
	}
	r.accounts[account.BankAccountID] = account
	return nil
}

func (r *BankAccountRepository) FindBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	account, exists := r.accounts[bankAccountID]
	if !exists {
		return nil, fmt.Errorf("bank account %s: %w", bankAccountID, apperrors.ErrNotFound)
	}
	return &account, nil
}

func (r *BankAccountRepository) ListBankAccounts(ctx context.Context, branchID string) ([]domain.BankAccount, error) {
	r.mu.RLock()
	all := make([]domain.BankAccount, 0, len(r.accounts))
	for _, account := range r.accounts {
		if branchID != "" && account.BranchID != branchID {
			continue
		}
		all = append(all, account)
	}
	r.mu.RUnlock()

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].AccountName < all[j].AccountName
	})
	return all, nil
}
