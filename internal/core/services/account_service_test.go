package services_test

import (
	"context"
	"sync"
	"testing"

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

// MockAccountRepository is a mock type for the AccountRepositoryFacade interface
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, userID string, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, userID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, userID string) ([]domain.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteAccount(ctx context.Context, userID string, accountID string) error {
	args := m.Called(ctx, userID, accountID)
	return args.Error(0)
}

// recordingInvalidator counts dashboard invalidations per user.
type recordingInvalidator struct {
	mu    sync.Mutex
	calls map[string]int
}

func newRecordingInvalidator() *recordingInvalidator {
	return &recordingInvalidator{calls: make(map[string]int)}
}

func (r *recordingInvalidator) Invalidate(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls[userID]++
}

func (r *recordingInvalidator) count(userID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[userID]
}

// --- Test Suite Setup ---

type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo    *MockAccountRepository
	invalidator *recordingInvalidator
	service     portssvc.AccountSvcFacade
	userID      string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.invalidator = newRecordingInvalidator()
	suite.service = services.NewAccountService(suite.mockRepo, suite.invalidator)
	suite.userID = uuid.NewString()
}

// --- Test Cases ---

func (suite *AccountServiceTestSuite) TestCreateAccount_CreditFieldsHonored() {
	ctx := context.Background()
	minPct := decimal.NewFromInt(5)
	req := dto.CreateAccountRequest{
		Title:             "Amex",
		Color:             "#B5179E",
		IsCredit:          true,
		DueDate:           15,
		MinPaymentPercent: &minPct,
	}

	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	acc, err := suite.service.CreateAccount(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.True(acc.IsCredit)
	suite.Equal(15, acc.DueDate)
	suite.True(acc.MinPaymentPercent.Equal(minPct))
	suite.Equal(suite.userID, acc.UserID)
	suite.Equal(1, suite.invalidator.count(suite.userID))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_NonCreditIgnoresCreditFields() {
	ctx := context.Background()
	minPct := decimal.NewFromInt(5)
	req := dto.CreateAccountRequest{
		Title:             "Wallet",
		IsCredit:          false,
		DueDate:           15,
		MinPaymentPercent: &minPct,
	}

	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	acc, err := suite.service.CreateAccount(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.False(acc.IsCredit)
	suite.Zero(acc.DueDate)
	suite.True(acc.MinPaymentPercent.IsZero())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_InvalidDueDate() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Title:    "Visa",
		IsCredit: true,
		DueDate:  32,
	}

	acc, err := suite.service.CreateAccount(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(acc)
	suite.Equal(0, suite.invalidator.count(suite.userID))
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_CreditFlagImmutable() {
	ctx := context.Background()
	accountID := uuid.NewString()
	existing := &domain.Account{
		AccountID:         accountID,
		UserID:            suite.userID,
		Title:             "Amex",
		IsCredit:          true,
		DueDate:           15,
		MinPaymentPercent: decimal.NewFromInt(5),
	}
	newTitle := "Amex Gold"

	suite.mockRepo.On("FindAccountByID", ctx, suite.userID, accountID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateAccount", ctx, mock.MatchedBy(func(acc domain.Account) bool {
		return acc.IsCredit && acc.Title == "Amex Gold" && acc.DueDate == 15
	})).Return(nil).Once()

	acc, err := suite.service.UpdateAccount(ctx, suite.userID, accountID, dto.UpdateAccountRequest{Title: &newTitle})

	suite.Require().NoError(err)
	suite.True(acc.IsCredit, "credit flag must survive updates")
	suite.Equal(1, suite.invalidator.count(suite.userID))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_NonCreditDropsCreditParams() {
	ctx := context.Background()
	accountID := uuid.NewString()
	existing := &domain.Account{
		AccountID: accountID,
		UserID:    suite.userID,
		Title:     "Wallet",
		IsCredit:  false,
	}
	dueDate := 10

	suite.mockRepo.On("FindAccountByID", ctx, suite.userID, accountID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateAccount", ctx, mock.MatchedBy(func(acc domain.Account) bool {
		return !acc.IsCredit && acc.DueDate == 0
	})).Return(nil).Once()

	acc, err := suite.service.UpdateAccount(ctx, suite.userID, accountID, dto.UpdateAccountRequest{DueDate: &dueDate})

	suite.Require().NoError(err)
	suite.Zero(acc.DueDate)
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_NotFoundSkipsInvalidation() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockRepo.On("DeleteAccount", ctx, suite.userID, accountID).Return(apperrors.ErrNotFound).Once()

	err := suite.service.DeleteAccount(ctx, suite.userID, accountID)

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
	suite.Equal(0, suite.invalidator.count(suite.userID))
}

func (suite *AccountServiceTestSuite) TestListAccounts_NilBecomesEmpty() {
	ctx := context.Background()

	suite.mockRepo.On("ListAccounts", ctx, suite.userID).Return([]domain.Account(nil), nil).Once()

	accounts, err := suite.service.ListAccounts(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.NotNil(accounts)
	suite.Empty(accounts)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
