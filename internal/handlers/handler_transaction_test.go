package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/congnodev/cashflow_mgmt_app/internal/apperrors"
	"github.com/congnodev/cashflow_mgmt_app/internal/core/domain"
	portssvc "github.com/congnodev/cashflow_mgmt_app/internal/core/ports/services"
	"github.com/congnodev/cashflow_mgmt_app/internal/dto"
	"github.com/congnodev/cashflow_mgmt_app/internal/handlers"
	"github.com/congnodev/cashflow_mgmt_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.Transaction, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) ImportTransactions(ctx context.Context, reqs []dto.CreateTransactionRequest, userID string) (*dto.ImportSummaryResponse, error) {
	args := m.Called(ctx, reqs, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ImportSummaryResponse), args.Error(1)
}

var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

// --- Test Suite ---
type TransactionHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockTransactionService
	jwtSecret   string
}

func (suite *TransactionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.mockService = new(MockTransactionService)

	cfg := &config.Config{
		JWTSecret:         suite.jwtSecret,
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "cfm-test",
		// Skips the swagger routes.
		IsProduction: true,
	}
	handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		Transaction: suite.mockService,
	})
}

func (suite *TransactionHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "cfm-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *TransactionHandlerTestSuite) authedRequest(method, url string, body *bytes.Buffer, userID string) *http.Request {
	var req *http.Request
	if body == nil {
		req, _ = http.NewRequest(method, url, nil)
	} else {
		req, _ = http.NewRequest(method, url, body)
	}
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	return req
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_Success() {
	userID := uuid.NewString()
	txn := &domain.Transaction{
		TransactionID:   uuid.NewString(),
		Code:            "TXN-ABCDEF0123",
		CustomerID:      "cust-1",
		TransactionType: domain.Payment,
		Amount:          decimal.NewFromInt(1500),
		TransactionDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}

	suite.mockService.On("CreateTransaction",
		mock.Anything,
		mock.MatchedBy(func(req dto.CreateTransactionRequest) bool {
			return req.CustomerID == "cust-1" && req.TransactionType == "payment"
		}),
		userID,
	).Return(txn, nil).Once()

	body, err := json.Marshal(dto.CreateTransactionRequest{
		CustomerID:      "cust-1",
		TransactionType: "payment",
		Amount:          decimal.NewFromInt(1500),
		TransactionDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	suite.Require().NoError(err)

	req := suite.authedRequest(http.MethodPost, "/api/v1/transactions", bytes.NewBuffer(body), userID)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())

	var resp dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(txn.TransactionID, resp.TransactionID)
	suite.Equal("payment", resp.TransactionType)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_ValidationErrorIs400() {
	userID := uuid.NewString()
	suite.mockService.On("CreateTransaction", mock.Anything, mock.Anything, userID).
		Return(nil, apperrors.ErrValidation).Once()

	body, _ := json.Marshal(dto.CreateTransactionRequest{
		CustomerID:      "cust-1",
		TransactionType: "payment",
		Amount:          decimal.NewFromInt(100),
		TransactionDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	req := suite.authedRequest(http.MethodPost, "/api/v1/transactions", bytes.NewBuffer(body), userID)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestRequestsWithoutTokenAreRejected() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/transactions", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "ListTransactions", mock.Anything, mock.Anything)
}

func (suite *TransactionHandlerTestSuite) TestGetTransaction_NotFoundIs404() {
	userID := uuid.NewString()
	suite.mockService.On("GetTransactionByID", mock.Anything, "missing").
		Return(nil, apperrors.ErrNotFound).Once()

	req := suite.authedRequest(http.MethodGet, "/api/v1/transactions/missing", nil, userID)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestImportTransactions_MergesParseErrors() {
	userID := uuid.NewString()

	// One parseable row, one with a bad amount.
	csvContent := "code,customer_id,bank_account_id,branch_id,type,amount,date,description,reference_number\n" +
		"TXN-1,cust-1,,,payment,100,2024-06-01,,\n" +
		"TXN-2,cust-1,,,payment,oops,2024-06-02,,\n"

	suite.mockService.On("ImportTransactions",
		mock.Anything,
		mock.MatchedBy(func(reqs []dto.CreateTransactionRequest) bool {
			return len(reqs) == 1 && reqs[0].Code == "TXN-1"
		}),
		userID,
	).Return(&dto.ImportSummaryResponse{Imported: 1}, nil).Once()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "transactions.csv")
	suite.Require().NoError(err)
	_, err = part.Write([]byte(csvContent))
	suite.Require().NoError(err)
	suite.Require().NoError(writer.Close())

	req := suite.authedRequest(http.MethodPost, "/api/v1/transactions/import", &body, userID)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code, w.Body.String())

	var summary dto.ImportSummaryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &summary))
	suite.Equal(1, summary.Imported)
	suite.Equal(1, summary.Failed)
	suite.Require().Len(summary.Errors, 1)
	suite.Equal(3, summary.Errors[0].Row)
	suite.mockService.AssertExpectations(suite.T())
}

func TestTransactionHandler(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}
