package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/congnodev/cashflow_mgmt_app/internal/adapters/database/memory"
	"github.com/congnodev/cashflow_mgmt_app/internal/apperrors"
	"github.com/congnodev/cashflow_mgmt_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func txnWithCode(id, code string) domain.Transaction {
	return domain.Transaction{
		TransactionID:   id,
		Code:            code,
		CustomerID:      "cust-1",
		TransactionType: domain.Payment,
		Amount:          decimal.NewFromInt(100),
		TransactionDate: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestTransactionRepository_SaveRejectsDuplicateCode(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewTransactionRepository()

	require.NoError(t, repo.SaveTransaction(ctx, txnWithCode("id-1", "TXN-000001")))

	err := repo.SaveTransaction(ctx, txnWithCode("id-2", "TXN-000001"))
	require.ErrorIs(t, err, apperrors.ErrDuplicate)

	// The code stays unique like the SQL driver's index; a fresh code is fine.
	require.NoError(t, repo.SaveTransaction(ctx, txnWithCode("id-2", "TXN-000002")))
}

func TestTransactionRepository_SaveAllowsEmptyCodes(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewTransactionRepository()

	require.NoError(t, repo.SaveTransaction(ctx, txnWithCode("id-1", "")))
	require.NoError(t, repo.SaveTransaction(ctx, txnWithCode("id-2", "")))
}

func TestTransactionRepository_BatchRejectsDuplicateCode(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewTransactionRepository()

	require.NoError(t, repo.SaveTransaction(ctx, txnWithCode("id-1", "TXN-000001")))

	// Collision with a stored transaction.
	err := repo.SaveTransactions(ctx, []domain.Transaction{
		txnWithCode("id-2", "TXN-000002"),
		txnWithCode("id-3", "TXN-000001"),
	})
	require.ErrorIs(t, err, apperrors.ErrDuplicate)

	// Collision inside the batch itself.
	err = repo.SaveTransactions(ctx, []domain.Transaction{
		txnWithCode("id-4", "TXN-000003"),
		txnWithCode("id-5", "TXN-000003"),
	})
	require.ErrorIs(t, err, apperrors.ErrDuplicate)

	// A failed batch stores nothing.
	count, err := repo.CountTransactions(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
