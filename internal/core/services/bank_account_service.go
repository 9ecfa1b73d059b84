package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/congnodev/cashflow_mgmt_app/internal/apperrors"
	"github.com/congnodev/cashflow_mgmt_app/internal/core/domain"
	"github.com/congnodev/cashflow_mgmt_app/internal/core/ledger"
	portsrepo "github.com/congnodev/cashflow_mgmt_app/internal/core/ports/repositories"
	portssvc "github.com/congnodev/cashflow_mgmt_app/internal/core/ports/services"
	"github.com/congnodev/cashflow_mgmt_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// bankAccountServiceImpl implements the BankAccountSvcFacade interface.
// Balances are rolled forward from the transaction history on every read.
type bankAccountServiceImpl struct {
	BaseService
	accountRepo     portsrepo.BankAccountRepositoryFacade
	txnRepo         portsrepo.TransactionReader
	floorCashAtZero bool
}

// NewBankAccountServiceImpl creates a new bank account service.
func NewBankAccountServiceImpl(accountRepo portsrepo.BankAccountRepositoryFacade, txnRepo portsrepo.TransactionReader, floorCashAtZero bool) portssvc.BankAccountSvcFacade {
	return &bankAccountServiceImpl{
		accountRepo:     accountRepo,
		txnRepo:         txnRepo,
		floorCashAtZero: floorCashAtZero,
	}
}

var _ portssvc.BankAccountSvcFacade = (*bankAccountServiceImpl)(nil)

func (s *bankAccountServiceImpl) CreateBankAccount(ctx context.Context, req dto.CreateBankAccountRequest, userID string) (*domain.BankAccount, error) {
	now := time.Now()
	account := domain.BankAccount{
		BankAccountID: uuid.NewString(),
		AccountName:   req.AccountName,
		AccountNumber: req.AccountNumber,
		BankName:      req.BankName,
		BranchID:      req.BranchID,
		IsActive:      true,
		Balance:       decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveBankAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save bank account",
			slog.String("account_number", account.AccountNumber))
		return nil, err
	}

	s.LogInfo(ctx, "Bank account created successfully",
		slog.String("bank_account_id", account.BankAccountID))
	return &account, nil
}

func (s *bankAccountServiceImpl) GetBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error) {
	account, err := s.accountRepo.FindBankAccountByID(ctx, bankAccountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find bank account by ID",
				slog.String("bank_account_id", bankAccountID))
		}
		return nil, err
	}

	txns, err := s.txnRepo.ListTransactions(ctx, portsrepo.TransactionFilter{BankAccountID: bankAccountID})
	if err != nil {
		s.LogError(ctx, err, "Failed to load account transactions",
			slog.String("bank_account_id", bankAccountID))
		return nil, fmt.Errorf("failed to load account transactions: %w", err)
	}
	s.enrichAccount(account, txns, ledger.Month, 12, time.Now())
	return account, nil
}

func (s *bankAccountServiceImpl) ListBankAccounts(ctx context.Context, params dto.ListBankAccountsParams) ([]domain.BankAccount, error) {
	timeRange, err := ledger.ParseTimeRange(params.TimeRange)
	if err != nil {
		return nil, err
	}

	accounts, err := s.accountRepo.ListBankAccounts(ctx, params.BranchID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list bank accounts")
		return nil, fmt.Errorf("failed to list bank accounts: %w", err)
	}

	txns, err := s.txnRepo.ListAllTransactions(ctx, params.BranchID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load transactions for balance derivation")
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	byAccount := make(map[string][]domain.Transaction)
	for _, tx := range txns {
		if tx.BankAccountID != "" {
			byAccount[tx.BankAccountID] = append(byAccount[tx.BankAccountID], tx)
		}
	}

	asOf := time.Now()
	for i := range accounts {
		s.enrichAccount(&accounts[i], byAccount[accounts[i].BankAccountID], timeRange, params.RangeCount, asOf)
	}
	if accounts == nil {
		return []domain.BankAccount{}, nil
	}
	return accounts, nil
}

// enrichAccount populates Balance and Historical by rolling the account's
// cash effects forward over the requested window.
func (s *bankAccountServiceImpl) enrichAccount(account *domain.BankAccount, txns []domain.Transaction, r ledger.TimeRange, count int, asOf time.Time) {
	window := ledger.CurrentWindow(r, count, asOf)
	opening := ledger.CashBefore(txns, window.Start)
	series := ledger.RollForwardCash(txns, r, count, asOf, opening, s.floorCashAtZero)
	account.Historical = series
	if len(series) > 0 {
		account.Balance = series[len(series)-1].Balance
	} else {
		account.Balance = opening
	}
}
