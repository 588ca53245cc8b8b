package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/TidonAM/ODET/internal/apperrors"
	"github.com/TidonAM/ODET/internal/core/domain"
	portssvc "github.com/TidonAM/ODET/internal/core/ports/services"
	"github.com/TidonAM/ODET/internal/core/services"
	"github.com/TidonAM/ODET/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockTransactionRepository is a mock type for the TransactionRepositoryFacade interface
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsByReset(ctx context.Context, userID string, resetID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID, resetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, userID string, transactionID string) error {
	args := m.Called(ctx, userID, transactionID)
	return args.Error(0)
}

// --- Test Suite Setup ---

type TransactionServiceTestSuite struct {
	suite.Suite
	mockTxnRepo   *MockTransactionRepository
	mockResetRepo *MockResetRepository
	invalidator   *recordingInvalidator
	service       portssvc.TransactionSvcFacade
	userID        string
	activeReset   *domain.Reset
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockResetRepo = new(MockResetRepository)
	suite.invalidator = newRecordingInvalidator()
	periodSvc := services.NewPeriodService(suite.mockResetRepo, nil)
	suite.service = services.NewTransactionService(suite.mockTxnRepo, periodSvc, suite.invalidator)
	suite.userID = uuid.NewString()
	suite.activeReset = &domain.Reset{
		ResetID:   uuid.NewString(),
		UserID:    suite.userID,
		ResetDate: time.Now().Add(-48 * time.Hour),
	}
}

func (suite *TransactionServiceTestSuite) createReq() dto.CreateTransactionRequest {
	price := decimal.NewFromInt(100)
	return dto.CreateTransactionRequest{
		Date:              "2026-08-15",
		Price:             &price,
		NegativeAccountID: uuid.NewString(),
		Description:       "groceries",
	}
}

// --- Test Cases ---

func (suite *TransactionServiceTestSuite) TestCreateTransaction_NoActivePeriod() {
	ctx := context.Background()

	suite.mockResetRepo.On("FindLatestReset", ctx, suite.userID).Return(nil, apperrors.ErrNotFound).Once()

	txn, err := suite.service.CreateTransaction(ctx, suite.userID, suite.createReq())

	suite.Require().ErrorIs(err, apperrors.ErrNoActivePeriod)
	suite.Nil(txn)
	suite.Equal(0, suite.invalidator.count(suite.userID))
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_AttachesActiveReset() {
	ctx := context.Background()

	suite.mockResetRepo.On("FindLatestReset", ctx, suite.userID).Return(suite.activeReset, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.ResetID == suite.activeReset.ResetID && txn.UserID == suite.userID
	})).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, suite.userID, suite.createReq())

	suite.Require().NoError(err)
	suite.Equal(suite.activeReset.ResetID, txn.ResetID)
	suite.True(txn.ServiceFee.IsZero(), "fee defaults to zero when omitted")
	suite.Equal(1, suite.invalidator.count(suite.userID))
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_BadDate() {
	ctx := context.Background()
	req := suite.createReq()
	req.Date = "15/08/2026"

	suite.mockResetRepo.On("FindLatestReset", ctx, suite.userID).Return(suite.activeReset, nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, suite.userID, req)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(txn)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_NegativePrice() {
	ctx := context.Background()
	req := suite.createReq()
	neg := decimal.NewFromInt(-5)
	req.Price = &neg

	suite.mockResetRepo.On("FindLatestReset", ctx, suite.userID).Return(suite.activeReset, nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, suite.userID, req)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(txn)
	suite.Equal(0, suite.invalidator.count(suite.userID))
}

func (suite *TransactionServiceTestSuite) TestListTransactions_DefaultsToActivePeriod() {
	ctx := context.Background()
	txns := []domain.Transaction{
		{TransactionID: "t1", ResetID: suite.activeReset.ResetID},
	}

	suite.mockResetRepo.On("FindLatestReset", ctx, suite.userID).Return(suite.activeReset, nil).Once()
	suite.mockTxnRepo.On("ListTransactionsByReset", ctx, suite.userID, suite.activeReset.ResetID).Return(txns, nil).Once()

	got, err := suite.service.ListTransactions(ctx, suite.userID, "")

	suite.Require().NoError(err)
	suite.Require().Len(got, 1)
	suite.Equal("t1", got[0].TransactionID)
}

func (suite *TransactionServiceTestSuite) TestListTransactions_HistoricalPeriod() {
	ctx := context.Background()
	oldReset := &domain.Reset{ResetID: uuid.NewString(), UserID: suite.userID}

	suite.mockResetRepo.On("FindResetByID", ctx, suite.userID, oldReset.ResetID).Return(oldReset, nil).Once()
	suite.mockTxnRepo.On("ListTransactionsByReset", ctx, suite.userID, oldReset.ResetID).Return([]domain.Transaction{}, nil).Once()

	got, err := suite.service.ListTransactions(ctx, suite.userID, oldReset.ResetID)

	suite.Require().NoError(err)
	suite.Empty(got)
	suite.mockResetRepo.AssertNotCalled(suite.T(), "FindLatestReset", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_ValidatesAmounts() {
	ctx := context.Background()
	existing := &domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        suite.userID,
		ResetID:       suite.activeReset.ResetID,
		Price:         decimal.NewFromInt(50),
	}
	neg := decimal.NewFromInt(-1)

	suite.mockTxnRepo.On("FindTransactionByID", ctx, suite.userID, existing.TransactionID).Return(existing, nil).Once()

	txn, err := suite.service.UpdateTransaction(ctx, suite.userID, existing.TransactionID, dto.UpdateTransactionRequest{ServiceFee: &neg})

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(txn)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "UpdateTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_Invalidates() {
	ctx := context.Background()
	transactionID := uuid.NewString()

	suite.mockTxnRepo.On("DeleteTransaction", ctx, suite.userID, transactionID).Return(nil).Once()

	err := suite.service.DeleteTransaction(ctx, suite.userID, transactionID)

	suite.Require().NoError(err)
	suite.Equal(1, suite.invalidator.count(suite.userID))
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
