package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/TidonAM/ODET/internal/apperrors"
	"github.com/TidonAM/ODET/internal/core/domain"
	portssvc "github.com/TidonAM/ODET/internal/core/ports/services"
	"github.com/TidonAM/ODET/internal/core/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockResetRepository is a mock type for the ResetRepositoryFacade interface
type MockResetRepository struct {
	mock.Mock
}

func (m *MockResetRepository) FindResetByID(ctx context.Context, userID string, resetID string) (*domain.Reset, error) {
	args := m.Called(ctx, userID, resetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reset), args.Error(1)
}

func (m *MockResetRepository) FindLatestReset(ctx context.Context, userID string) (*domain.Reset, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reset), args.Error(1)
}

func (m *MockResetRepository) ListResets(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Reset, *string, error) {
	args := m.Called(ctx, userID, limit, nextToken)
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	if args.Get(0) == nil {
		return nil, token, args.Error(2)
	}
	return args.Get(0).([]domain.Reset), token, args.Error(2)
}

func (m *MockResetRepository) SaveReset(ctx context.Context, reset domain.Reset) error {
	args := m.Called(ctx, reset)
	return args.Error(0)
}

// --- Test Suite Setup ---

type PeriodServiceTestSuite struct {
	suite.Suite
	mockRepo    *MockResetRepository
	invalidator *recordingInvalidator
	service     portssvc.PeriodSvcFacade
	userID      string
}

func (suite *PeriodServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockResetRepository)
	suite.invalidator = newRecordingInvalidator()
	suite.service = services.NewPeriodService(suite.mockRepo, suite.invalidator)
	suite.userID = uuid.NewString()
}

// --- Test Cases ---

func (suite *PeriodServiceTestSuite) TestActivePeriod_NoResets() {
	ctx := context.Background()

	suite.mockRepo.On("FindLatestReset", ctx, suite.userID).Return(nil, apperrors.ErrNotFound).Once()

	reset, err := suite.service.ActivePeriod(ctx, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrNoActivePeriod)
	suite.Nil(reset)
}

func (suite *PeriodServiceTestSuite) TestActivePeriod_ReturnsMostRecent() {
	ctx := context.Background()
	latest := &domain.Reset{
		ResetID:   uuid.NewString(),
		UserID:    suite.userID,
		ResetDate: time.Now().Add(-time.Hour),
	}

	suite.mockRepo.On("FindLatestReset", ctx, suite.userID).Return(latest, nil).Once()

	reset, err := suite.service.ActivePeriod(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(latest.ResetID, reset.ResetID)
}

func (suite *PeriodServiceTestSuite) TestStartPeriod_CreatesAndInvalidates() {
	ctx := context.Background()

	suite.mockRepo.On("SaveReset", ctx, mock.MatchedBy(func(r domain.Reset) bool {
		return r.UserID == suite.userID && r.ResetID != "" && !r.ResetDate.IsZero()
	})).Return(nil).Once()

	reset, err := suite.service.StartPeriod(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.NotEmpty(reset.ResetID)
	suite.Equal(1, suite.invalidator.count(suite.userID))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PeriodServiceTestSuite) TestStartPeriod_FailureChangesNothing() {
	ctx := context.Background()
	repoErr := errors.New("connection lost")

	suite.mockRepo.On("SaveReset", ctx, mock.AnythingOfType("domain.Reset")).Return(repoErr).Once()

	reset, err := suite.service.StartPeriod(ctx, suite.userID)

	suite.Require().Error(err)
	suite.Nil(reset)
	// Prior period stays active: nothing was written, nothing invalidated.
	suite.Equal(0, suite.invalidator.count(suite.userID))
}

func (suite *PeriodServiceTestSuite) TestListPeriods_MostRecentFirst() {
	ctx := context.Background()
	now := time.Now()
	resets := []domain.Reset{
		{ResetID: "r2", UserID: suite.userID, ResetDate: now},
		{ResetID: "r1", UserID: suite.userID, ResetDate: now.Add(-24 * time.Hour)},
	}

	suite.mockRepo.On("ListResets", ctx, suite.userID, 0, (*string)(nil)).Return(resets, nil, nil).Once()

	got, token, err := suite.service.ListPeriods(ctx, suite.userID, 0, nil)

	suite.Require().NoError(err)
	suite.Require().Len(got, 2)
	suite.Equal("r2", got[0].ResetID)
	suite.Nil(token)
}

func (suite *PeriodServiceTestSuite) TestListPeriods_PassesCursorThrough() {
	ctx := context.Background()
	cursor := "b3BhcXVlLWN1cnNvcg=="
	next := "bmV4dC1wYWdl"
	resets := []domain.Reset{
		{ResetID: "r1", UserID: suite.userID, ResetDate: time.Now().Add(-48 * time.Hour)},
	}

	suite.mockRepo.On("ListResets", ctx, suite.userID, 1, &cursor).Return(resets, &next, nil).Once()

	got, token, err := suite.service.ListPeriods(ctx, suite.userID, 1, &cursor)

	suite.Require().NoError(err)
	suite.Require().Len(got, 1)
	suite.Require().NotNil(token)
	suite.Equal(next, *token)
}

func TestPeriodServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PeriodServiceTestSuite))
}
