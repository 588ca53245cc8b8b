package handlers_test

import (
	"context"
	"encoding/json"
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

// --- Mock DashboardService ---
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) GetSummary(ctx context.Context, userID string, resetID string) (*domain.LedgerSummary, error) {
	args := m.Called(ctx, userID, resetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerSummary), args.Error(1)
}

func (m *MockDashboardService) Invalidate(userID string) {
	m.Called(userID)
}

func (m *MockDashboardService) Subscribe(userID string) (<-chan struct{}, func()) {
	args := m.Called(userID)
	return args.Get(0).(<-chan struct{}), args.Get(1).(func())
}

// Ensure mock implements the interface
var _ portssvc.DashboardSvcFacade = (*MockDashboardService)(nil)

// --- Test Suite ---
type SummaryHandlerTestSuite struct {
	suite.Suite
	router        *gin.Engine
	mockDashboard *MockDashboardService
	jwtSecret     string
	userID        string
}

func (suite *SummaryHandlerTestSuite) generateTestToken(userID string) string {
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

func (suite *SummaryHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.userID = uuid.NewString()

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockDashboard = new(MockDashboardService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterSummaryRoutes(v1, suite.mockDashboard)
}

func (suite *SummaryHandlerTestSuite) doGet(url string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.userID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *SummaryHandlerTestSuite) TestGetSummary_ActivePeriod() {
	resetID := uuid.NewString()
	summary := &domain.LedgerSummary{
		ResetID: resetID,
		Balances: []domain.AccountBalance{
			{AccountID: uuid.NewString(), Title: "Checking", Balance: decimal.NewFromInt(1200)},
			{AccountID: uuid.NewString(), Title: "Card", IsCredit: true, Balance: decimal.NewFromInt(210), DueDate: 15, MinimumDue: decimal.NewFromFloat(10.5)},
		},
		TotalCash:   decimal.NewFromInt(1200),
		TotalDebt:   decimal.NewFromInt(210),
		NetPosition: decimal.NewFromInt(990),
	}

	suite.mockDashboard.On("GetSummary", mock.Anything, suite.userID, "").
		Return(summary, nil).Once()

	w := suite.doGet("/api/v1/summary")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.SummaryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(resetID, resp.ResetID)
	suite.Require().Len(resp.Balances, 2)
	suite.True(resp.TotalCash.Equal(decimal.NewFromInt(1200)))
	suite.True(resp.TotalDebt.Equal(decimal.NewFromInt(210)))
	suite.True(resp.NetPosition.Equal(decimal.NewFromInt(990)))
	suite.True(resp.Balances[1].MinimumDue.Equal(decimal.NewFromFloat(10.5)))
	suite.mockDashboard.AssertExpectations(suite.T())
}

func (suite *SummaryHandlerTestSuite) TestGetSummary_SpecificPeriodPassedThrough() {
	resetID := uuid.NewString()
	summary := &domain.LedgerSummary{
		ResetID:     resetID,
		Balances:    []domain.AccountBalance{},
		TotalCash:   decimal.Zero,
		TotalDebt:   decimal.Zero,
		NetPosition: decimal.Zero,
	}

	suite.mockDashboard.On("GetSummary", mock.Anything, suite.userID, resetID).
		Return(summary, nil).Once()

	w := suite.doGet("/api/v1/summary?resetID=" + resetID)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockDashboard.AssertExpectations(suite.T())
}

func (suite *SummaryHandlerTestSuite) TestGetSummary_NoActivePeriod() {
	suite.mockDashboard.On("GetSummary", mock.Anything, suite.userID, "").
		Return(nil, apperrors.ErrNoActivePeriod).Once()

	w := suite.doGet("/api/v1/summary")

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *SummaryHandlerTestSuite) TestGetSummary_UnknownPeriod() {
	resetID := uuid.NewString()
	suite.mockDashboard.On("GetSummary", mock.Anything, suite.userID, resetID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doGet("/api/v1/summary?resetID=" + resetID)

	suite.Equal(http.StatusNotFound, w.Code)
}

func TestSummaryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(SummaryHandlerTestSuite))
}
