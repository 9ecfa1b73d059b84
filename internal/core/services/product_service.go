package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/congnodev/cashflow_mgmt_app/internal/apperrors"
	"github.com/congnodev/cashflow_mgmt_app/internal/core/domain"
	portsrepo "github.com/congnodev/cashflow_mgmt_app/internal/core/ports/repositories"
	portssvc "github.com/congnodev/cashflow_mgmt_app/internal/core/ports/services"
	"github.com/congnodev/cashflow_mgmt_app/internal/dto"
	"github.com/google/uuid"
)

// productServiceImpl implements the ProductSvcFacade interface.
type productServiceImpl struct {
	BaseService
	productRepo portsrepo.ProductRepositoryFacade
}

// NewProductServiceImpl creates a new product service.
func NewProductServiceImpl(productRepo portsrepo.ProductRepositoryFacade) portssvc.ProductSvcFacade {
	return &productServiceImpl{productRepo: productRepo}
}

var _ portssvc.ProductSvcFacade = (*productServiceImpl)(nil)

func (s *productServiceImpl) CreateProduct(ctx context.Context, req dto.CreateProductRequest, userID string) (*domain.Product, error) {
	existing, err := s.productRepo.FindProductBySKU(ctx, req.SKU)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check SKU availability",
			slog.String("sku", req.SKU))
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("SKU %s already exists: %w", req.SKU, apperrors.ErrDuplicate)
	}
	if req.Price.IsNegative() || req.CostPrice.IsNegative() {
		return nil, fmt.Errorf("price must not be negative: %w", apperrors.ErrValidation)
	}

	now := time.Now()
	product := domain.Product{
		ProductID:     uuid.NewString(),
		SKU:           req.SKU,
		Name:          req.Name,
		Category:      req.Category,
		Unit:          req.Unit,
		Price:         req.Price,
		CostPrice:     req.CostPrice,
		StockQuantity: req.StockQuantity,
		ReorderLevel:  req.ReorderLevel,
		IsActive:      true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.productRepo.SaveProduct(ctx, product); err != nil {
		s.LogError(ctx, err, "Failed to save product",
			slog.String("sku", product.SKU))
		return nil, err
	}

	s.LogInfo(ctx, "Product created successfully",
		slog.String("product_id", product.ProductID))
	return &product, nil
}

func (s *productServiceImpl) GetProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find product by ID",
				slog.String("product_id", productID))
		}
		return nil, err
	}
	return product, nil
}

func (s *productServiceImpl) ListProducts(ctx context.Context, params dto.ListProductsParams) ([]domain.Product, error) {
	products, err := s.productRepo.ListProducts(ctx, portsrepo.ProductFilter{
		Category: params.Category,
		Search:   params.Search,
		LowStock: params.LowStock,
		Limit:    params.Limit,
		Offset:   params.Offset,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	if products == nil {
		return []domain.Product{}, nil
	}
	return products, nil
}

func (s *productServiceImpl) UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, userID string) (*domain.Product, error) {
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find product for update",
				slog.String("product_id", productID))
		}
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Unit != nil {
		product.Unit = *req.Unit
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, fmt.Errorf("price must not be negative: %w", apperrors.ErrValidation)
		}
		product.Price = *req.Price
	}
	if req.CostPrice != nil {
		if req.CostPrice.IsNegative() {
			return nil, fmt.Errorf("cost price must not be negative: %w", apperrors.ErrValidation)
		}
		product.CostPrice = *req.CostPrice
	}
	if req.ReorderLevel != nil {
		if *req.ReorderLevel < 0 {
			return nil, fmt.Errorf("reorder level must not be negative: %w", apperrors.ErrValidation)
		}
		product.ReorderLevel = *req.ReorderLevel
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	product.LastUpdatedAt = time.Now()
	product.LastUpdatedBy = userID

	if err := s.productRepo.UpdateProduct(ctx, *product); err != nil {
		s.LogError(ctx, err, "Failed to update product",
			slog.String("product_id", productID))
		return nil, err
	}

	s.LogInfo(ctx, "Product updated successfully",
		slog.String("product_id", productID))
	return product, nil
}

func (s *productServiceImpl) AdjustStock(ctx context.Context, productID string, req dto.AdjustStockRequest, userID string) (*domain.Product, error) {
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find product for stock adjustment",
				slog.String("product_id", productID))
		}
		return nil, err
	}

	newQuantity := product.StockQuantity + req.Delta
	if newQuantity < 0 {
		return nil, fmt.Errorf("stock cannot go below zero (current %d, delta %d): %w",
			product.StockQuantity, req.Delta, apperrors.ErrValidation)
	}
	product.StockQuantity = newQuantity
	product.LastUpdatedAt = time.Now()
	product.LastUpdatedBy = userID

	if err := s.productRepo.UpdateProduct(ctx, *product); err != nil {
		s.LogError(ctx, err, "Failed to persist stock adjustment",
			slog.String("product_id", productID))
		return nil, err
	}

	s.LogInfo(ctx, "Stock adjusted",
		slog.String("product_id", productID),
		slog.Int64("delta", req.Delta),
		slog.Int64("stock_quantity", product.StockQuantity),
		slog.String("reason", req.Reason))
	return product, nil
}

func (s *productServiceImpl) DeactivateProduct(ctx context.Context, productID string, userID string) error {
	if err := s.productRepo.DeactivateProduct(ctx, productID, userID, time.Now()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to deactivate product",
				slog.String("product_id", productID))
		}
		return err
	}
	s.LogInfo(ctx, "Product deactivated successfully",
		slog.String("product_id", productID))
	return nil
}
