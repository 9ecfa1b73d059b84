package repositories

import (
	"context"
	"time"

	"github.com/congnodev/cashflow_mgmt_app/internal/core/domain"
)

// CustomerReader provides read access to customers.
type CustomerReader interface {
	FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)
	ListCustomers(ctx context.Context, limit int, offset int) ([]domain.Customer, error)
	CountCustomers(ctx context.Context) (int64, error)
}

// CustomerWriter persists customers.
type CustomerWriter interface {
	SaveCustomer(ctx context.Context, customer domain.Customer) error
	UpdateCustomer(ctx context.Context, customer domain.Customer) error
	DeactivateCustomer(ctx context.Context, customerID string, userID string, now time.Time) error
}

// CustomerRepositoryFacade combines all customer repository capabilities.
type CustomerRepositoryFacade interface {
	CustomerReader
	CustomerWriter
}
