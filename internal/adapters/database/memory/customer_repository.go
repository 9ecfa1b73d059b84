package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/congnodev/cashflow_mgmt_app/internal/apperrors"
	"github.com/congnodev/cashflow_mgmt_app/internal/core/domain"
	portsrepo "github.com/congnodev/cashflow_mgmt_app/internal/core/ports/repositories"
)

// CustomerRepository is an in-memory implementation of the customer
// repository.
type CustomerRepository struct {
	mu        sync.RWMutex
	customers map[string]domain.Customer
}

// NewCustomerRepository creates a new in-memory customer repository.
func NewCustomerRepository() *CustomerRepository {
	return &CustomerRepository{customers: make(map[string]domain.Customer)}
}

var _ portsrepo.CustomerRepositoryFacade = (*CustomerRepository)(nil)

func (r *CustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.customers[customer.CustomerID]; exists {
		return fmt.Errorf("customer %s already exists: %w", customer.CustomerID, apperrors.ErrDuplicate)
	}
	for _, existing := range r.customers {
		if existing.CustomerCode == customer.CustomerCode {
			return fmt.Errorf("customer code %s already exists: %w", customer.CustomerCode, apperrors.ErrDuplicate)
		}
	}
	r.customers[customer.CustomerID] = customer
	return nil
}

func (r *CustomerRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.customers[customer.CustomerID]; !exists {
		return fmt.Errorf("customer %s: %w", customer.CustomerID, apperrors.ErrNotFound)
	}
	r.customers[customer.CustomerID] = customer
	return nil
}

func (r *CustomerRepository) DeactivateCustomer(ctx context.Context, customerID string, userID string, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	customer, exists := r.customers[customerID]
	if !exists {
		return fmt.Errorf("customer %s: %w", customerID, apperrors.ErrNotFound)
	}
	customer.IsActive = false
	customer.LastUpdatedAt = now
	customer.LastUpdatedBy = userID
	r.customers[customerID] = customer
	return nil
}

func (r *CustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	customer, exists := r.customers[customerID]
	if !exists {
		return nil, fmt.Errorf("customer %s: %w", customerID, apperrors.ErrNotFound)
	}
	return &customer, nil
}

func (r *CustomerRepository) ListCustomers(ctx context.Context, limit int, offset int) ([]domain.Customer, error) {
	r.mu.RLock()
	all := make([]domain.Customer, 0, len(r.customers))
	for _, customer := range r.customers {
		all = append(all, customer)
	}
	r.mu.RUnlock()

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CustomerCode < all[j].CustomerCode
	})

	if offset > 0 {
		if offset >= len(all) {
			return []domain.Customer{}, nil
		}
		all = all[offset:]
	}
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *CustomerRepository) CountCustomers(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.customers)), nil
}
