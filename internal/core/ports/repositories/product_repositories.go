package repositories

import (
	"context"
	"time"

	"github.com/congnodev/cashflow_mgmt_app/internal/core/domain"
)

// ProductFilter narrows a product listing. Zero values mean "no filter".
type ProductFilter struct {
	Category string
	Search   string // Matches SKU or name, case-insensitive
	LowStock bool
	Limit    int
	Offset   int
}

// ProductReader provides read access to products.
type ProductReader interface {
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)
	FindProductBySKU(ctx context.Context, sku string) (*domain.Product, error)
	ListProducts(ctx context.Context, filter ProductFilter) ([]domain.Product, error)
}

// ProductWriter persists products.
type ProductWriter interface {
	SaveProduct(ctx context.Context, product domain.Product) error
	UpdateProduct(ctx context.Context, product domain.Product) error
	DeactivateProduct(ctx context.Context, productID string, userID string, now time.Time) error
}

// ProductRepositoryFacade combines all product repository capabilities.
type ProductRepositoryFacade interface {
	ProductReader
	ProductWriter
}
