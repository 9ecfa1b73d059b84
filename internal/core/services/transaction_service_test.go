package services_test

import (
	"context"
	"testing"

	"github.com/congnodev/cashflow_mgmt_app/internal/apperrors"
	"github.com/congnodev/cashflow_mgmt_app/internal/core/domain"
	portsrepo "github.com/congnodev/cashflow_mgmt_app/internal/core/ports/repositories"
	portssvc "github.com/congnodev/cashflow_mgmt_app/internal/core/ports/services"
	"github.com/congnodev/cashflow_mgmt_app/internal/core/services"
	"github.com/congnodev/cashflow_mgmt_app/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) SaveTransactions(ctx context.Context, txns []domain.Transaction) error {
	args := m.Called(ctx, txns)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, filter portsrepo.TransactionFilter) ([]domain.Transaction, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListAllTransactions(ctx context.Context, branchID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) CountTransactions(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

type MockCustomerReader struct {
	mock.Mock
}

func (m *MockCustomerReader) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerReader) ListCustomers(ctx context.Context, limit int, offset int) ([]domain.Customer, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Customer), args.Error(1)
}

func (m *MockCustomerReader) CountCustomers(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

var _ portsrepo.CustomerReader = (*MockCustomerReader)(nil)

type TransactionServiceTestSuite struct {
	suite.Suite
	mockRepo      *MockTransactionRepository
	mockCustomers *MockCustomerReader
	service       portssvc.TransactionSvcFacade
}

func (s *TransactionServiceTestSuite) SetupTest() {
	s.mockRepo = new(MockTransactionRepository)
	s.mockCustomers = new(MockCustomerReader)
	s.service = services.NewTransactionServiceImpl(s.mockRepo, services.WithCustomerReader(s.mockCustomers))
}

func (s *TransactionServiceTestSuite) validRequest() dto.CreateTransactionRequest {
	return dto.CreateTransactionRequest{
		CustomerID:      "customer-1",
		BranchID:        "branch-1",
		TransactionType: "payment",
		Amount:          dec(500),
		TransactionDate: date(2024, 6, 1),
	}
}

func (s *TransactionServiceTestSuite) TestCreateTransaction_Success() {
	ctx := context.Background()
	s.mockCustomers.On("FindCustomerByID", ctx, "customer-1").
		Return(&domain.Customer{CustomerID: "customer-1"}, nil).Once()
	s.mockRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).
		Return(nil).Once()

	txn, err := s.service.CreateTransaction(ctx, s.validRequest(), "user-1")

	s.Require().NoError(err)
	s.Require().NotNil(txn)
	s.NotEmpty(txn.TransactionID)
	s.Regexp("^TXN-[0-9A-F]{10}$", txn.Code)
	s.Equal("user-1", txn.CreatedBy)
	s.mockRepo.AssertExpectations(s.T())
	s.mockCustomers.AssertExpectations(s.T())
}

func (s *TransactionServiceTestSuite) TestCreateTransaction_KeepsSuppliedCode() {
	ctx := context.Background()
	s.mockCustomers.On("FindCustomerByID", ctx, "customer-1").
		Return(&domain.Customer{CustomerID: "customer-1"}, nil).Once()
	s.mockRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).
		Return(nil).Once()

	req := s.validRequest()
	req.Code = "TXN-MANUAL01"
	txn, err := s.service.CreateTransaction(ctx, req, "user-1")

	s.Require().NoError(err)
	s.Equal("TXN-MANUAL01", txn.Code)
}

func (s *TransactionServiceTestSuite) TestCreateTransaction_RejectsBadType() {
	req := s.validRequest()
	req.TransactionType = "transfer"

	_, err := s.service.CreateTransaction(context.Background(), req, "user-1")

	s.Require().ErrorIs(err, apperrors.ErrValidation)
	s.mockRepo.AssertNotCalled(s.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (s *TransactionServiceTestSuite) TestCreateTransaction_RejectsNegativePayment() {
	req := s.validRequest()
	req.Amount = dec(-500)

	_, err := s.service.CreateTransaction(context.Background(), req, "user-1")

	s.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (s *TransactionServiceTestSuite) TestCreateTransaction_AllowsNegativeAdjustment() {
	ctx := context.Background()
	s.mockCustomers.On("FindCustomerByID", ctx, "customer-1").
		Return(&domain.Customer{CustomerID: "customer-1"}, nil).Once()
	s.mockRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).
		Return(nil).Once()

	req := s.validRequest()
	req.TransactionType = "adjustment"
	req.Amount = dec(-250)

	txn, err := s.service.CreateTransaction(ctx, req, "user-1")

	s.Require().NoError(err)
	s.True(txn.Amount.Equal(dec(-250)))
}

func (s *TransactionServiceTestSuite) TestCreateTransaction_UnknownCustomer() {
	ctx := context.Background()
	s.mockCustomers.On("FindCustomerByID", ctx, "customer-1").
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.CreateTransaction(ctx, s.validRequest(), "user-1")

	s.Require().ErrorIs(err, apperrors.ErrValidation)
	s.mockRepo.AssertNotCalled(s.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (s *TransactionServiceTestSuite) TestImportTransactions_MixedRows() {
	ctx := context.Background()
	s.mockCustomers.On("FindCustomerByID", ctx, "customer-1").
		Return(&domain.Customer{CustomerID: "customer-1"}, nil)
	s.mockCustomers.On("FindCustomerByID", ctx, "missing").
		Return(nil, apperrors.ErrNotFound).Once()
	s.mockRepo.On("SaveTransactions", ctx, mock.MatchedBy(func(txns []domain.Transaction) bool {
		return len(txns) == 2
	})).Return(nil).Once()

	good := s.validRequest()
	badType := s.validRequest()
	badType.TransactionType = "transfer"
	badCustomer := s.validRequest()
	badCustomer.CustomerID = "missing"

	summary, err := s.service.ImportTransactions(ctx, []dto.CreateTransactionRequest{good, badType, badCustomer, good}, "user-1")

	s.Require().NoError(err)
	s.Equal(2, summary.Imported)
	s.Equal(2, summary.Failed)
	s.Require().Len(summary.Errors, 2)
	// Row numbers account for the CSV header line.
	s.Equal(3, summary.Errors[0].Row)
	s.Equal(4, summary.Errors[1].Row)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *TransactionServiceTestSuite) TestImportTransactions_ErrorsKeepSourceRowNumbers() {
	ctx := context.Background()
	s.mockCustomers.On("FindCustomerByID", ctx, "customer-1").
		Return(&domain.Customer{CustomerID: "customer-1"}, nil)
	s.mockCustomers.On("FindCustomerByID", ctx, "missing").
		Return(nil, apperrors.ErrNotFound).Once()
	s.mockRepo.On("SaveTransactions", ctx, mock.MatchedBy(func(txns []domain.Transaction) bool {
		return len(txns) == 1
	})).Return(nil).Once()

	// Source row 3 was dropped by the CSV parser, so only rows 2 and 4 reach
	// the service. The failure on row 4 must not be renumbered to row 3.
	okRow := s.validRequest()
	okRow.Row = 2
	badRow := s.validRequest()
	badRow.Row = 4
	badRow.CustomerID = "missing"

	summary, err := s.service.ImportTransactions(ctx, []dto.CreateTransactionRequest{okRow, badRow}, "user-1")

	s.Require().NoError(err)
	s.Equal(1, summary.Imported)
	s.Equal(1, summary.Failed)
	s.Require().Len(summary.Errors, 1)
	s.Equal(4, summary.Errors[0].Row)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *TransactionServiceTestSuite) TestImportTransactions_AllInvalidSkipsSave() {
	bad := s.validRequest()
	bad.Amount = dec(0)

	summary, err := s.service.ImportTransactions(context.Background(), []dto.CreateTransactionRequest{bad}, "user-1")

	s.Require().NoError(err)
	s.Equal(0, summary.Imported)
	s.Equal(1, summary.Failed)
	s.mockRepo.AssertNotCalled(s.T(), "SaveTransactions", mock.Anything, mock.Anything)
}

func (s *TransactionServiceTestSuite) TestGetTransactionByID_NotFound() {
	ctx := context.Background()
	s.mockRepo.On("FindTransactionByID", ctx, "nope").
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.GetTransactionByID(ctx, "nope")

	s.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func (s *TransactionServiceTestSuite) TestListTransactions_NilBecomesEmpty() {
	ctx := context.Background()
	s.mockRepo.On("ListTransactions", ctx, mock.AnythingOfType("repositories.TransactionFilter")).
		Return([]domain.Transaction{}, nil).Once()

	txns, err := s.service.ListTransactions(ctx, dto.ListTransactionsParams{Limit: 50})

	s.Require().NoError(err)
	s.NotNil(txns)
	s.Empty(txns)
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
