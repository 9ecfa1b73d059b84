package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/congnodev/cashflow_mgmt_app/internal/apperrors"
	"github.com/congnodev/cashflow_mgmt_app/internal/core/domain"
	"github.com/congnodev/cashflow_mgmt_app/internal/core/ledger"
	portsrepo "github.com/congnodev/cashflow_mgmt_app/internal/core/ports/repositories"
	portssvc "github.com/congnodev/cashflow_mgmt_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// ledgerServiceImpl implements the LedgerSvcFacade interface.
type ledgerServiceImpl struct {
	BaseService
	txnRepo portsrepo.TransactionReader
}

// NewLedgerServiceImpl creates a new ledger service.
func NewLedgerServiceImpl(txnRepo portsrepo.TransactionReader) portssvc.LedgerSvcFacade {
	return &ledgerServiceImpl{txnRepo: txnRepo}
}

var _ portssvc.LedgerSvcFacade = (*ledgerServiceImpl)(nil)

func (s *ledgerServiceImpl) GetReceivableLedger(ctx context.Context, branchID string, timeRange ledger.TimeRange, rangeCount int, asOf time.Time) (*domain.ReceivableLedger, error) {
	if !timeRange.IsValid() {
		return nil, fmt.Errorf("unknown time range %q: %w", timeRange, apperrors.ErrValidation)
	}
	if rangeCount < 1 {
		return nil, fmt.Errorf("range count must be at least 1: %w", apperrors.ErrValidation)
	}

	txns, err := s.txnRepo.ListAllTransactions(ctx, branchID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load transactions for ledger")
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	window := ledger.CurrentWindow(timeRange, rangeCount, asOf)

	var inWindow []domain.Transaction
	opening := decimal.Zero
	for _, tx := range txns {
		switch {
		case tx.TransactionDate.Before(window.Start):
			opening = opening.Add(ledger.ReceivableEffect(tx.TransactionType, tx.Amount))
		case window.Contains(tx.TransactionDate):
			inWindow = append(inWindow, tx)
		}
	}

	// Oldest first so the running balance reads top to bottom. Ties break on
	// creation order.
	sort.SliceStable(inWindow, func(i, j int) bool {
		if !inWindow[i].TransactionDate.Equal(inWindow[j].TransactionDate) {
			return inWindow[i].TransactionDate.Before(inWindow[j].TransactionDate)
		}
		return inWindow[i].CreatedAt.Before(inWindow[j].CreatedAt)
	})

	running := opening
	rows := make([]domain.LedgerRow, len(inWindow))
	for i, tx := range inWindow {
		effect := ledger.ReceivableEffect(tx.TransactionType, tx.Amount)
		running = running.Add(effect)
		rows[i] = domain.LedgerRow{
			TransactionID:   tx.TransactionID,
			Code:            tx.Code,
			TransactionDate: tx.TransactionDate,
			CustomerID:      tx.CustomerID,
			TransactionType: tx.TransactionType,
			Amount:          tx.Amount,
			Effect:          effect,
			RunningBalance:  running,
			Description:     tx.Description,
		}
	}

	return &domain.ReceivableLedger{
		BranchID:       branchID,
		TimeRange:      string(timeRange),
		RangeCount:     rangeCount,
		From:           window.Start,
		To:             window.End,
		OpeningBalance: opening,
		ClosingBalance: running,
		Rows:           rows,
	}, nil
}
