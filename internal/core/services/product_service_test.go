package services_test

import (
	"context"
	"testing"

	"github.com/congnodev/cashflow_mgmt_app/internal/adapters/database/memory"
	"github.com/congnodev/cashflow_mgmt_app/internal/apperrors"
	portsrepo "github.com/congnodev/cashflow_mgmt_app/internal/core/ports/repositories"
	portssvc "github.com/congnodev/cashflow_mgmt_app/internal/core/ports/services"
	"github.com/congnodev/cashflow_mgmt_app/internal/core/services"
	"github.com/congnodev/cashflow_mgmt_app/internal/dto"
	"github.com/stretchr/testify/suite"
)

type ProductServiceTestSuite struct {
	suite.Suite
	repos   *portsrepo.RepositoryProvider
	service portssvc.ProductSvcFacade
}

func (s *ProductServiceTestSuite) SetupTest() {
	s.repos = memory.NewRepositoryProvider()
	s.service = services.NewProductServiceImpl(s.repos.Product)
}

func (s *ProductServiceTestSuite) createProduct(sku string, stock int64) string {
	product, err := s.service.CreateProduct(context.Background(), dto.CreateProductRequest{
		SKU:           sku,
		Name:          "Gạch ốp lát 60x60",
		Category:      "Vật liệu xây dựng",
		Unit:          "hộp",
		Price:         dec(250_000),
		CostPrice:     dec(180_000),
		StockQuantity: stock,
		ReorderLevel:  10,
	}, "user-1")
	s.Require().NoError(err)
	return product.ProductID
}

func (s *ProductServiceTestSuite) TestCreateProduct_DuplicateSKU() {
	s.createProduct("SP-0001", 50)

	_, err := s.service.CreateProduct(context.Background(), dto.CreateProductRequest{
		SKU:   "SP-0001",
		Name:  "Khác",
		Price: dec(1000),
	}, "user-1")

	s.Require().ErrorIs(err, apperrors.ErrDuplicate)
}

func (s *ProductServiceTestSuite) TestCreateProduct_NegativePrice() {
	_, err := s.service.CreateProduct(context.Background(), dto.CreateProductRequest{
		SKU:   "SP-0002",
		Name:  "Xi măng PCB40",
		Price: dec(-1),
	}, "user-1")

	s.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (s *ProductServiceTestSuite) TestAdjustStock_AppliesDelta() {
	productID := s.createProduct("SP-0001", 50)

	product, err := s.service.AdjustStock(context.Background(), productID, dto.AdjustStockRequest{
		Delta:  -20,
		Reason: "xuất kho công trình",
	}, "user-1")

	s.Require().NoError(err)
	s.Equal(int64(30), product.StockQuantity)
}

func (s *ProductServiceTestSuite) TestAdjustStock_CannotGoNegative() {
	productID := s.createProduct("SP-0001", 5)

	_, err := s.service.AdjustStock(context.Background(), productID, dto.AdjustStockRequest{
		Delta: -6,
	}, "user-1")

	s.Require().ErrorIs(err, apperrors.ErrValidation)

	// The failed adjustment must not change the stored quantity.
	product, err := s.service.GetProductByID(context.Background(), productID)
	s.Require().NoError(err)
	s.Equal(int64(5), product.StockQuantity)
}

func (s *ProductServiceTestSuite) TestListProducts_LowStockFilter() {
	s.createProduct("SP-0001", 5)  // at or below reorder level 10
	s.createProduct("SP-0002", 50) // healthy

	products, err := s.service.ListProducts(context.Background(), dto.ListProductsParams{
		LowStock: true,
		Limit:    20,
	})

	s.Require().NoError(err)
	s.Require().Len(products, 1)
	s.Equal("SP-0001", products[0].SKU)
}

func (s *ProductServiceTestSuite) TestUpdateProduct_RejectsNegativePrice() {
	productID := s.createProduct("SP-0001", 50)

	bad := dec(-100)
	_, err := s.service.UpdateProduct(context.Background(), productID, dto.UpdateProductRequest{
		Price: &bad,
	}, "user-1")

	s.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (s *ProductServiceTestSuite) TestDeactivateProduct() {
	productID := s.createProduct("SP-0001", 50)

	s.Require().NoError(s.service.DeactivateProduct(context.Background(), productID, "user-1"))

	product, err := s.service.GetProductByID(context.Background(), productID)
	s.Require().NoError(err)
	s.False(product.IsActive)
}

func TestProductServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProductServiceTestSuite))
}
