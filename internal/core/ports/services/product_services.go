package services

import (
	"context"

	"github.com/congnodev/cashflow_mgmt_app/internal/core/domain"
	"github.com/congnodev/cashflow_mgmt_app/internal/dto"
)

// ProductSvcFacade exposes catalog and stock operations for the inventory
// tool.
type ProductSvcFacade interface {
	CreateProduct(ctx context.Context, req dto.CreateProductRequest, userID string) (*domain.Product, error)
	GetProductByID(ctx context.Context, productID string) (*domain.Product, error)
	ListProducts(ctx context.Context, params dto.ListProductsParams) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, userID string) (*domain.Product, error)
	// AdjustStock applies a signed delta; stock can never go below zero.
	AdjustStock(ctx context.Context, productID string, req dto.AdjustStockRequest, userID string) (*domain.Product, error)
	DeactivateProduct(ctx context.Context, productID string, userID string) error
}
