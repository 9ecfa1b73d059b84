package services

import (
	"context"

	"github.com/congnodev/cashflow_mgmt_app/internal/core/domain"
	"github.com/congnodev/cashflow_mgmt_app/internal/dto"
)

// CustomerSvcFacade exposes customer operations. Read paths return customers
// with TotalBalance and LastTransactionDate derived from the full
// transaction history.
type CustomerSvcFacade interface {
	CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, userID string) (*domain.Customer, error)
	GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)
	ListCustomers(ctx context.Context, params dto.ListCustomersParams) ([]domain.Customer, error)
	UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest, userID string) (*domain.Customer, error)
	DeactivateCustomer(ctx context.Context, customerID string, userID string) error
}
