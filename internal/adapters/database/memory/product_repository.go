package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/congnodev/cashflow_mgmt_app/internal/apperrors"
	"github.com/congnodev/cashflow_mgmt_app/internal/core/domain"
	portsrepo "github.com/congnodev/cashflow_mgmt_app/internal/core/ports/repositories"
)

// ProductRepository is an in-memory implementation of the product repository.
type ProductRepository struct {
	mu       sync.RWMutex
	products map[string]domain.Product
}

// NewProductRepository creates a new in-memory product repository.
func NewProductRepository() *ProductRepository {
	return &ProductRepository{products: make(map[string]domain.Product)}
}

var _ portsrepo.ProductRepositoryFacade = (*ProductRepository)(nil)

func (r *ProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.products[product.ProductID]; exists {
		return fmt.Errorf("product %s already exists: %w", product.ProductID, apperrors.ErrDuplicate)
	}
	for _, existing := range r.products {
		if existing.SKU == product.SKU {
			return fmt.Errorf("SKU %s already exists: %w", product.SKU, apperrors.ErrDuplicate)
		}
	}
	r.products[product.ProductID] = product
	return nil
}

func (r *ProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.products[product.ProductID]; !exists {
		return fmt.Errorf("product %s: %w", product.ProductID, apperrors.ErrNotFound)
	}
	r.products[product.ProductID] = product
	return nil
}

func (r *ProductRepository) DeactivateProduct(ctx context.Context, productID string, userID string, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, exists := r.products[productID]
	if !exists {
		return fmt.Errorf("product %s: %w", productID, apperrors.ErrNotFound)
	}
	product.IsActive = false
	product.LastUpdatedAt = now
	product.LastUpdatedBy = userID
	r.products[productID] = product
	return nil
}

func (r *ProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, exists := r.products[productID]
	if !exists {
		return nil, fmt.Errorf("product %s: %w", productID, apperrors.ErrNotFound)
	}
	return &product, nil
}

func (r *ProductRepository) FindProductBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, product := range r.products {
		if product.SKU == sku {
			p := product
			return &p, nil
		}
	}
	return nil, fmt.Errorf("product with SKU %s: %w", sku, apperrors.ErrNotFound)
}

func (r *ProductRepository) ListProducts(ctx context.Context, filter portsrepo.ProductFilter) ([]domain.Product, error) {
	r.mu.RLock()
	matched := make([]domain.Product, 0)
	for _, product := range r.products {
		if matchesProductFilter(product, filter) {
			matched = append(matched, product)
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].SKU < matched[j].SKU
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			return []domain.Product{}, nil
		}
		matched = matched[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

func matchesProductFilter(product domain.Product, filter portsrepo.ProductFilter) bool {
	if filter.Category != "" && product.Category != filter.Category {
		return false
	}
	if filter.LowStock && !product.IsLowStock() {
		return false
	}
	if filter.Search != "" {
		search := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(product.SKU), search) &&
			!strings.Contains(strings.ToLower(product.Name), search) {
			return false
		}
	}
	return true
}
