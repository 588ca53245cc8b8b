package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/TidonAM/ODET/internal/apperrors"
	"github.com/TidonAM/ODET/internal/core/domain"
	portssvc "github.com/TidonAM/ODET/internal/core/ports/services"
	"github.com/TidonAM/ODET/internal/dto"
	"github.com/TidonAM/ODET/internal/handlers"
	"github.com/TidonAM/ODET/internal/middleware"
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

func (m *MockTransactionService) CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) GetTransactionByID(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) ListTransactions(ctx context.Context, userID string, resetID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID, resetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) UpdateTransaction(ctx context.Context, userID string, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, transactionID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) DeleteTransaction(ctx context.Context, userID string, transactionID string) error {
	args := m.Called(ctx, userID, transactionID)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

// --- Mock AccountReader ---
type MockAccountReader struct {
	mock.Mock
}

func (m *MockAccountReader) GetAccountByID(ctx context.Context, userID string, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, userID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountReader) ListAccounts(ctx context.Context, userID string) ([]domain.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

var _ portssvc.AccountReaderSvc = (*MockAccountReader)(nil)

// --- Mock CategoryReader ---
type MockCategoryReader struct {
	mock.Mock
}

func (m *MockCategoryReader) GetCategoryByID(ctx context.Context, userID string, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, userID, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryReader) ListCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

var _ portssvc.CategoryReaderSvc = (*MockCategoryReader)(nil)

// --- Test Suite ---
type TransactionHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockTxnService  *MockTransactionService
	mockAccounts    *MockAccountReader
	mockCategories  *MockCategoryReader
	jwtSecret       string
	userID          string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *TransactionHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "odet-test",
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

func (suite *TransactionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.userID = uuid.NewString()

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockTxnService = new(MockTransactionService)
	suite.mockAccounts = new(MockAccountReader)
	suite.mockCategories = new(MockCategoryReader)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterTransactionRoutes(v1, suite.mockTxnService, suite.mockAccounts, suite.mockCategories)
}

func (suite *TransactionHandlerTestSuite) doJSON(method, url string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, _ := http.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.userID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_Success() {
	accountID := uuid.NewString()
	resetID := uuid.NewString()
	price := decimal.NewFromInt(42)

	created := &domain.Transaction{
		TransactionID:     uuid.NewString(),
		UserID:            suite.userID,
		ResetID:           resetID,
		Date:              time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
		Price:             price,
		ServiceFee:        decimal.Zero,
		NegativeAccountID: accountID,
		Description:       "groceries",
	}

	suite.mockTxnService.On("CreateTransaction",
		mock.Anything,
		suite.userID,
		mock.MatchedBy(func(req dto.CreateTransactionRequest) bool {
			return req.Date == "2026-08-20" && req.Price.Equal(price) && req.NegativeAccountID == accountID
		}),
	).Return(created, nil).Once()
	suite.mockAccounts.On("ListAccounts", mock.Anything, suite.userID).
		Return([]domain.Account{{AccountID: accountID, UserID: suite.userID, Title: "Visa", IsCredit: true}}, nil).Once()
	suite.mockCategories.On("ListCategories", mock.Anything, suite.userID).
		Return([]domain.Category{}, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/transactions", dto.CreateTransactionRequest{
		Date:              "2026-08-20",
		Price:             &price,
		NegativeAccountID: accountID,
		Description:       "groceries",
	})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.TransactionID, resp.TransactionID)
	suite.Equal(resetID, resp.ResetID)
	suite.Require().NotNil(resp.NegativeAccount)
	suite.Equal("Visa", resp.NegativeAccount.Title)
	suite.True(resp.NegativeAccount.IsCredit)
	suite.Nil(resp.PositiveAccount)
	suite.mockTxnService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_NoActivePeriodConflicts() {
	price := decimal.NewFromInt(10)
	suite.mockTxnService.On("CreateTransaction", mock.Anything, suite.userID, mock.Anything).
		Return(nil, apperrors.ErrNoActivePeriod).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/transactions", dto.CreateTransactionRequest{
		Date:  "2026-08-20",
		Price: &price,
	})

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockAccounts.AssertNotCalled(suite.T(), "ListAccounts", mock.Anything, mock.Anything)
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_MissingPriceRejected() {
	w := suite.doJSON(http.MethodPost, "/api/v1/transactions", map[string]any{
		"date": "2026-08-20",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockTxnService.AssertNotCalled(suite.T(), "CreateTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionHandlerTestSuite) TestListTransactions_NoPeriodYieldsEmptyList() {
	suite.mockTxnService.On("ListTransactions", mock.Anything, suite.userID, "").
		Return(nil, apperrors.ErrNoActivePeriod).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/transactions", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListTransactionsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Empty(resp.Transactions)
}

func (suite *TransactionHandlerTestSuite) TestListTransactions_DanglingRefResolvesToNothing() {
	resetID := uuid.NewString()
	deletedAccountID := uuid.NewString()
	txns := []domain.Transaction{
		{
			TransactionID:     uuid.NewString(),
			UserID:            suite.userID,
			ResetID:           resetID,
			Date:              time.Date(2026, 8, 21, 0, 0, 0, 0, time.UTC),
			Price:             decimal.NewFromInt(30),
			ServiceFee:        decimal.Zero,
			NegativeAccountID: deletedAccountID,
		},
	}

	suite.mockTxnService.On("ListTransactions", mock.Anything, suite.userID, "").
		Return(txns, nil).Once()
	// The referenced account no longer exists.
	suite.mockAccounts.On("ListAccounts", mock.Anything, suite.userID).
		Return([]domain.Account{}, nil).Once()
	suite.mockCategories.On("ListCategories", mock.Anything, suite.userID).
		Return([]domain.Category{}, nil).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/transactions", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListTransactionsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(resetID, resp.ResetID)
	suite.Require().Len(resp.Transactions, 1)
	suite.Nil(resp.Transactions[0].NegativeAccount)
}

func (suite *TransactionHandlerTestSuite) TestListTransactions_UnknownPeriodNotFound() {
	resetID := uuid.NewString()
	suite.mockTxnService.On("ListTransactions", mock.Anything, suite.userID, resetID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/transactions?resetID="+resetID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestDeleteTransaction_Success() {
	txnID := uuid.NewString()
	suite.mockTxnService.On("DeleteTransaction", mock.Anything, suite.userID, txnID).
		Return(nil).Once()

	w := suite.doJSON(http.MethodDelete, fmt.Sprintf("/api/v1/transactions/%s", txnID), nil)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockTxnService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestMissingTokenUnauthorized() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/transactions", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockTxnService.AssertNotCalled(suite.T(), "ListTransactions", mock.Anything, mock.Anything, mock.Anything)
}

func TestTransactionHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}
