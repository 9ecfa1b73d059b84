package services

import (
	"context"

	"github.com/congnodev/cashflow_mgmt_app/internal/core/domain"
	"github.com/congnodev/cashflow_mgmt_app/internal/dto"
)

// TransactionSvcFacade exposes transaction operations. Transactions are
// append-only; there is deliberately no update or delete.
type TransactionSvcFacade interface {
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error)
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.Transaction, error)
	// ImportTransactions persists every valid row and reports per-row
	// failures for the rest.
	ImportTransactions(ctx context.Context, reqs []dto.CreateTransactionRequest, userID string) (*dto.ImportSummaryResponse, error)
}
