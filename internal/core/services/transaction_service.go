package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/congnodev/cashflow_mgmt_app/internal/apperrors"
	"github.com/congnodev/cashflow_mgmt_app/internal/core/domain"
	portsrepo "github.com/congnodev/cashflow_mgmt_app/internal/core/ports/repositories"
	portssvc "github.com/congnodev/cashflow_mgmt_app/internal/core/ports/services"
	"github.com/congnodev/cashflow_mgmt_app/internal/dto"
	"github.com/google/uuid"
)

// transactionServiceImpl implements the TransactionSvcFacade interface.
type transactionServiceImpl struct {
	BaseService
	txnRepo      portsrepo.TransactionRepositoryFacade
	customerRepo portsrepo.CustomerReader
}

// TransactionServiceOption is a functional option for the transaction service.
type TransactionServiceOption func(*transactionServiceImpl)

// WithCustomerReader adds a customer reader used to verify that transactions
// reference existing customers.
func WithCustomerReader(repo portsrepo.CustomerReader) TransactionServiceOption {
	return func(s *transactionServiceImpl) {
		s.customerRepo = repo
	}
}

// NewTransactionServiceImpl creates a new transaction service.
func NewTransactionServiceImpl(repo portsrepo.TransactionRepositoryFacade, options ...TransactionServiceOption) portssvc.TransactionSvcFacade {
	svc := &transactionServiceImpl{txnRepo: repo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.TransactionSvcFacade = (*transactionServiceImpl)(nil)

// buildTransaction turns a create request into a validated domain transaction.
func (s *transactionServiceImpl) buildTransaction(req dto.CreateTransactionRequest, userID string, now time.Time) (domain.Transaction, error) {
	code := req.Code
	if code == "" {
		code = generateTransactionCode()
	}
	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		Code:            code,
		CustomerID:      req.CustomerID,
		BankAccountID:   req.BankAccountID,
		BranchID:        req.BranchID,
		TransactionType: domain.TransactionType(req.TransactionType),
		Amount:          req.Amount,
		TransactionDate: req.TransactionDate,
		Description:     req.Description,
		ReferenceNumber: req.ReferenceNumber,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := txn.Validate(); err != nil {
		return domain.Transaction{}, err
	}
	return txn, nil
}

func (s *transactionServiceImpl) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error) {
	now := time.Now()
	txn, err := s.buildTransaction(req, userID, now)
	if err != nil {
		s.LogError(ctx, err, "Transaction failed validation",
			slog.String("customer_id", req.CustomerID))
		return nil, err
	}

	if s.customerRepo != nil {
		if _, err := s.customerRepo.FindCustomerByID(ctx, txn.CustomerID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("unknown customer %s: %w", txn.CustomerID, apperrors.ErrValidation)
			}
			s.LogError(ctx, err, "Failed to verify customer",
				slog.String("customer_id", txn.CustomerID))
			return nil, err
		}
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save transaction",
			slog.String("transaction_id", txn.TransactionID))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction created successfully",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("transaction_type", string(txn.TransactionType)))
	return &txn, nil
}

func (s *transactionServiceImpl) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find transaction by ID",
				slog.String("transaction_id", transactionID))
		}
		return nil, err
	}
	return txn, nil
}

func (s *transactionServiceImpl) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.Transaction, error) {
	filter := portsrepo.TransactionFilter{
		BranchID:        params.BranchID,
		CustomerID:      params.CustomerID,
		BankAccountID:   params.BankAccountID,
		TransactionType: domain.TransactionType(params.TransactionType),
		From:            params.From,
		To:              params.To,
		Limit:           params.Limit,
		Offset:          params.Offset,
	}
	txns, err := s.txnRepo.ListTransactions(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions")
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	if txns == nil {
		return []domain.Transaction{}, nil
	}
	return txns, nil
}

func (s *transactionServiceImpl) ImportTransactions(ctx context.Context, reqs []dto.CreateTransactionRequest, userID string) (*dto.ImportSummaryResponse, error) {
	now := time.Now()
	summary := &dto.ImportSummaryResponse{}
	valid := make([]domain.Transaction, 0, len(reqs))

	for i, req := range reqs {
		txn, err := s.buildTransaction(req, userID, now)
		if err == nil && s.customerRepo != nil {
			if _, cerr := s.customerRepo.FindCustomerByID(ctx, txn.CustomerID); cerr != nil {
				if errors.Is(cerr, apperrors.ErrNotFound) {
					err = fmt.Errorf("unknown customer %s: %w", txn.CustomerID, apperrors.ErrValidation)
				} else {
					return nil, cerr
				}
			}
		}
		if err != nil {
			// The importer stamps each request with its source CSV line, so
			// errors stay attached to the right row even when earlier rows
			// were dropped at parse time. Requests built outside a file fall
			// back to positional numbering after the header.
			row := req.Row
			if row == 0 {
				row = i + 2
			}
			summary.Failed++
			summary.Errors = append(summary.Errors, dto.ImportRowError{
				Row:   row,
				Error: err.Error(),
			})
			continue
		}
		valid = append(valid, txn)
	}

	if len(valid) > 0 {
		if err := s.txnRepo.SaveTransactions(ctx, valid); err != nil {
			s.LogError(ctx, err, "Failed to save imported transactions",
				slog.Int("count", len(valid)))
			return nil, err
		}
	}
	summary.Imported = len(valid)

	s.LogInfo(ctx, "Transaction import completed",
		slog.Int("imported", summary.Imported),
		slog.Int("failed", summary.Failed))
	return summary, nil
}

// generateTransactionCode produces a human-facing code for manual entries
// that did not supply one.
func generateTransactionCode() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:10]
	return "TXN-" + suffix
}
