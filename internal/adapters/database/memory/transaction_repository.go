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

// TransactionRepository is an in-memory implementation of the transaction
// repository, used for tests and the memory storage driver.
type TransactionRepository struct {
	mu    sync.RWMutex
	txns  map[string]domain.Transaction
	codes map[string]struct{} // mirrors the SQL driver's unique index on code
}

// NewTransactionRepository creates a new in-memory transaction repository.
func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{
		txns:  make(map[string]domain.Transaction),
		codes: make(map[string]struct{}),
	}
}

var _ portsrepo.TransactionRepositoryFacade = (*TransactionRepository)(nil)

func (r *TransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.txns[txn.TransactionID]; exists {
		return fmt.Errorf("transaction %s already exists: %w", txn.TransactionID, apperrors.ErrDuplicate)
	}
	if _, exists := r.codes[txn.Code]; exists && txn.Code != "" {
		return fmt.Errorf("transaction code %s already exists: %w", txn.Code, apperrors.ErrDuplicate)
	}
	r.store(txn)
	return nil
}

func (r *TransactionRepository) SaveTransactions(ctx context.Context, txns []domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	batchCodes := make(map[string]struct{}, len(txns))
	for _, txn := range txns {
		if _, exists := r.txns[txn.TransactionID]; exists {
			return fmt.Errorf("transaction %s already exists: %w", txn.TransactionID, apperrors.ErrDuplicate)
		}
		if txn.Code == "" {
			continue
		}
		if _, exists := r.codes[txn.Code]; exists {
			return fmt.Errorf("transaction code %s already exists: %w", txn.Code, apperrors.ErrDuplicate)
		}
		if _, exists := batchCodes[txn.Code]; exists {
			return fmt.Errorf("transaction code %s already exists: %w", txn.Code, apperrors.ErrDuplicate)
		}
		batchCodes[txn.Code] = struct{}{}
	}
	for _, txn := range txns {
		r.store(txn)
	}
	return nil
}

// store records a transaction. Callers hold the write lock.
func (r *TransactionRepository) store(txn domain.Transaction) {
	r.txns[txn.TransactionID] = txn
	if txn.Code != "" {
		r.codes[txn.Code] = struct{}{}
	}
}

func (r *TransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	txn, exists := r.txns[transactionID]
	if !exists {
		return nil, fmt.Errorf("transaction %s: %w", transactionID, apperrors.ErrNotFound)
	}
	return &txn, nil
}

func (r *TransactionRepository) ListTransactions(ctx context.Context, filter portsrepo.TransactionFilter) ([]domain.Transaction, error) {
	r.mu.RLock()
	matched := make([]domain.Transaction, 0)
	for _, txn := range r.txns {
		if matchesFilter(txn, filter) {
			matched = append(matched, txn)
		}
	}
	r.mu.RUnlock()

	// Newest first, like the SQL driver's ORDER BY.
	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].TransactionDate.Equal(matched[j].TransactionDate) {
			return matched[i].TransactionDate.After(matched[j].TransactionDate)
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			return []domain.Transaction{}, nil
		}
		matched = matched[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

func (r *TransactionRepository) ListAllTransactions(ctx context.Context, branchID string) ([]domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]domain.Transaction, 0, len(r.txns))
	for _, txn := range r.txns {
		if branchID != "" && txn.BranchID != branchID {
			continue
		}
		all = append(all, txn)
	}
	return all, nil
}

func (r *TransactionRepository) CountTransactions(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.txns)), nil
}

func matchesFilter(txn domain.Transaction, filter portsrepo.TransactionFilter) bool {
	if filter.BranchID != "" && txn.BranchID != filter.BranchID {
		return false
	}
	if filter.CustomerID != "" && txn.CustomerID != filter.CustomerID {
		return false
	}
	if filter.BankAccountID != "" && txn.BankAccountID != filter.BankAccountID {
		return false
	}
	if filter.TransactionType != "" && txn.TransactionType != filter.TransactionType {
		return false
	}
	if filter.From != nil && txn.TransactionDate.Before(*filter.From) {
		return false
	}
	if filter.To != nil && !txn.TransactionDate.Before(*filter.To) {
		return false
	}
	return true
}
