package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/congnodev/cashflow_mgmt_app/internal/adapters/database/memory"
	"github.com/congnodev/cashflow_mgmt_app/internal/apperrors"
	"github.com/congnodev/cashflow_mgmt_app/internal/core/domain"
	portsrepo "github.com/congnodev/cashflow_mgmt_app/internal/core/ports/repositories"
	portssvc "github.com/congnodev/cashflow_mgmt_app/internal/core/ports/services"
	"github.com/congnodev/cashflow_mgmt_app/internal/core/services"
	"github.com/congnodev/cashflow_mgmt_app/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type CustomerServiceTestSuite struct {
	suite.Suite
	repos   *portsrepo.RepositoryProvider
	service portssvc.CustomerSvcFacade
}

func (s *CustomerServiceTestSuite) SetupTest() {
	s.repos = memory.NewRepositoryProvider()
	s.service = services.NewCustomerServiceImpl(s.repos.Customer, s.repos.Transaction)
}

func (s *CustomerServiceTestSuite) addTxn(customerID string, typ domain.TransactionType, amount int64, day time.Time) {
	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		Code:            "TXN-" + uuid.NewString()[:8],
		CustomerID:      customerID,
		TransactionType: typ,
		Amount:          dec(amount),
		TransactionDate: day,
	}
	s.Require().NoError(s.repos.Transaction.SaveTransaction(context.Background(), txn))
}

func (s *CustomerServiceTestSuite) TestCreateCustomer_GeneratesCode() {
	customer, err := s.service.CreateCustomer(context.Background(), dto.CreateCustomerRequest{
		FullName: "Nguyễn Văn An",
	}, "user-1")

	s.Require().NoError(err)
	s.Regexp("^KH-", customer.CustomerCode)
	s.True(customer.IsActive)
	s.True(customer.TotalBalance.IsZero())
}

func (s *CustomerServiceTestSuite) TestCreateCustomer_DuplicateCode() {
	req := dto.CreateCustomerRequest{CustomerCode: "KH-0001", FullName: "Nguyễn Văn An"}
	_, err := s.service.CreateCustomer(context.Background(), req, "user-1")
	s.Require().NoError(err)

	_, err = s.service.CreateCustomer(context.Background(), req, "user-1")
	s.Require().ErrorIs(err, apperrors.ErrDuplicate)
}

func (s *CustomerServiceTestSuite) TestGetCustomerByID_DerivesBalance() {
	customer, err := s.service.CreateCustomer(context.Background(), dto.CreateCustomerRequest{
		FullName: "Nguyễn Văn An",
	}, "user-1")
	s.Require().NoError(err)

	s.addTxn(customer.CustomerID, domain.Charge, 1000, date(2024, 5, 1))
	s.addTxn(customer.CustomerID, domain.Payment, 300, date(2024, 6, 10))

	got, err := s.service.GetCustomerByID(context.Background(), customer.CustomerID)
	s.Require().NoError(err)

	s.True(got.TotalBalance.Equal(dec(-700)), "got %s", got.TotalBalance)
	s.Require().NotNil(got.LastTransactionDate)
	s.Equal(date(2024, 6, 10), *got.LastTransactionDate)
}

func (s *CustomerServiceTestSuite) TestListCustomers_EnrichesEachCustomer() {
	first, err := s.service.CreateCustomer(context.Background(), dto.CreateCustomerRequest{
		CustomerCode: "KH-0001", FullName: "Nguyễn Văn An",
	}, "user-1")
	s.Require().NoError(err)
	second, err := s.service.CreateCustomer(context.Background(), dto.CreateCustomerRequest{
		CustomerCode: "KH-0002", FullName: "Trần Thị Bình",
	}, "user-1")
	s.Require().NoError(err)

	s.addTxn(first.CustomerID, domain.Charge, 500, date(2024, 5, 1))
	s.addTxn(second.CustomerID, domain.Payment, 200, date(2024, 5, 2))

	customers, err := s.service.ListCustomers(context.Background(), dto.ListCustomersParams{Limit: 20})
	s.Require().NoError(err)
	s.Require().Len(customers, 2)

	byCode := make(map[string]domain.Customer)
	for _, c := range customers {
		byCode[c.CustomerCode] = c
	}
	s.True(byCode["KH-0001"].TotalBalance.Equal(dec(-500)))
	s.True(byCode["KH-0002"].TotalBalance.Equal(dec(200)))
}

func (s *CustomerServiceTestSuite) TestUpdateCustomer_PartialFields() {
	customer, err := s.service.CreateCustomer(context.Background(), dto.CreateCustomerRequest{
		FullName: "Nguyễn Văn An",
		Phone:    "0901234567",
	}, "user-1")
	s.Require().NoError(err)

	newName := "Nguyễn Văn Bình"
	updated, err := s.service.UpdateCustomer(context.Background(), customer.CustomerID, dto.UpdateCustomerRequest{
		FullName: &newName,
	}, "user-2")
	s.Require().NoError(err)

	s.Equal("Nguyễn Văn Bình", updated.FullName)
	s.Equal("0901234567", updated.Phone)
	s.Equal("user-2", updated.LastUpdatedBy)
}

func (s *CustomerServiceTestSuite) TestDeactivateCustomer() {
	customer, err := s.service.CreateCustomer(context.Background(), dto.CreateCustomerRequest{
		FullName: "Nguyễn Văn An",
	}, "user-1")
	s.Require().NoError(err)

	s.Require().NoError(s.service.DeactivateCustomer(context.Background(), customer.CustomerID, "user-1"))

	got, err := s.service.GetCustomerByID(context.Background(), customer.CustomerID)
	s.Require().NoError(err)
	s.False(got.IsActive)

	err = s.service.DeactivateCustomer(context.Background(), "missing", "user-1")
	s.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func TestCustomerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CustomerServiceTestSuite))
}
