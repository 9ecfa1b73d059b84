package repositories

import (
	"context"
	"time"

	"github.com/congnodev/cashflow_mgmt_app/internal/core/domain"
)

// TransactionFilter narrows a transaction listing. Zero values mean "no
// filter"; From is inclusive, To exclusive.
type TransactionFilter struct {
	BranchID        string
	CustomerID      string
	BankAccountID   string
	TransactionType domain.TransactionType
	From            *time.Time
	To              *time.Time
	Limit           int
	Offset          int
}

// TransactionReader provides read access to transactions.
type TransactionReader interface {
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, filter TransactionFilter) ([]domain.Transaction, error)
	// ListAllTransactions returns the full history (optionally branch
	// scoped), in no particular order. The aggregation paths depend on this
	// because derived balances are always recomputed from the complete set.
	ListAllTransactions(ctx context.Context, branchID string) ([]domain.Transaction, error)
	CountTransactions(ctx context.Context) (int64, error)
}

// TransactionWriter persists transactions. There is no update or delete:
// transactions are immutable events.
type TransactionWriter interface {
	SaveTransaction(ctx context.Context, txn domain.Transaction) error
	SaveTransactions(ctx context.Context, txns []domain.Transaction) error
}

// TransactionRepositoryFacade combines all transaction repository capabilities.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
