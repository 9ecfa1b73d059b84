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

// customerServiceImpl implements the CustomerSvcFacade interface. Balance
// fields are recomputed from the transaction history on every read.
type customerServiceImpl struct {
	BaseService
	customerRepo portsrepo.CustomerRepositoryFacade
	txnRepo      portsrepo.TransactionReader
}

// NewCustomerServiceImpl creates a new customer service.
func NewCustomerServiceImpl(customerRepo portsrepo.CustomerRepositoryFacade, txnRepo portsrepo.TransactionReader) portssvc.CustomerSvcFacade {
	return &customerServiceImpl{customerRepo: customerRepo, txnRepo: txnRepo}
}

var _ portssvc.CustomerSvcFacade = (*customerServiceImpl)(nil)

func (s *customerServiceImpl) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, userID string) (*domain.Customer, error) {
	now := time.Now()
	code := req.CustomerCode
	if code == "" {
		code = "KH-" + uuid.NewString()[:8]
	}
	customer := domain.Customer{
		CustomerID:   uuid.NewString(),
		CustomerCode: code,
		FullName:     req.FullName,
		Phone:        req.Phone,
		Email:        req.Email,
		Address:      req.Address,
		BranchID:     req.BranchID,
		IsActive:     true,
		TotalBalance: decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.customerRepo.SaveCustomer(ctx, customer); err != nil {
		s.LogError(ctx, err, "Failed to save customer",
			slog.String("customer_code", customer.CustomerCode))
		return nil, err
	}

	s.LogInfo(ctx, "Customer created successfully",
		slog.String("customer_id", customer.CustomerID))
	return &customer, nil
}

func (s *customerServiceImpl) GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find customer by ID",
				slog.String("customer_id", customerID))
		}
		return nil, err
	}

	txns, err := s.txnRepo.ListTransactions(ctx, portsrepo.TransactionFilter{CustomerID: customerID})
	if err != nil {
		s.LogError(ctx, err, "Failed to load customer transactions",
			slog.String("customer_id", customerID))
		return nil, fmt.Errorf("failed to load customer transactions: %w", err)
	}
	enrichCustomer(customer, txns)
	return customer, nil
}

func (s *customerServiceImpl) ListCustomers(ctx context.Context, params dto.ListCustomersParams) ([]domain.Customer, error) {
	customers, err := s.customerRepo.ListCustomers(ctx, params.Limit, params.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list customers")
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	// One pass over the full history instead of a query per customer.
	txns, err := s.txnRepo.ListAllTransactions(ctx, "")
	if err != nil {
		s.LogError(ctx, err, "Failed to load transactions for balance derivation")
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	byCustomer := make(map[string][]domain.Transaction)
	for _, tx := range txns {
		byCustomer[tx.CustomerID] = append(byCustomer[tx.CustomerID], tx)
	}
	for i := range customers {
		enrichCustomer(&customers[i], byCustomer[customers[i].CustomerID])
	}
	if customers == nil {
		return []domain.Customer{}, nil
	}
	return customers, nil
}

func (s *customerServiceImpl) UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest, userID string) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find customer for update",
				slog.String("customer_id", customerID))
		}
		return nil, err
	}

	if req.FullName != nil {
		customer.FullName = *req.FullName
	}
	if req.Phone != nil {
		customer.Phone = *req.Phone
	}
	if req.Email != nil {
		customer.Email = *req.Email
	}
	if req.Address != nil {
		customer.Address = *req.Address
	}
	if req.BranchID != nil {
		customer.BranchID = *req.BranchID
	}
	if req.IsActive != nil {
		customer.IsActive = *req.IsActive
	}
	customer.LastUpdatedAt = time.Now()
	customer.LastUpdatedBy = userID

	if err := s.customerRepo.UpdateCustomer(ctx, *customer); err != nil {
		s.LogError(ctx, err, "Failed to update customer",
			slog.String("customer_id", customerID))
		return nil, err
	}

	s.LogInfo(ctx, "Customer updated successfully",
		slog.String("customer_id", customerID))
	return customer, nil
}

func (s *customerServiceImpl) DeactivateCustomer(ctx context.Context, customerID string, userID string) error {
	if err := s.customerRepo.DeactivateCustomer(ctx, customerID, userID, time.Now()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to deactivate customer",
				slog.String("customer_id", customerID))
		}
		return err
	}
	s.LogInfo(ctx, "Customer deactivated successfully",
		slog.String("customer_id", customerID))
	return nil
}

// enrichCustomer populates the derived balance fields from the customer's
// transactions.
func enrichCustomer(customer *domain.Customer, txns []domain.Transaction) {
	customer.TotalBalance = ledger.ReceivableBalance(txns)
	customer.LastTransactionDate = nil
	for i := range txns {
		d := txns[i].TransactionDate
		if customer.LastTransactionDate == nil || d.After(*customer.LastTransactionDate) {
			last := d
			customer.LastTransactionDate = &last
		}
	}
}
