package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/TidonAM/ODET/internal/apperrors"
	"github.com/TidonAM/ODET/internal/core/domain"
	portsrepo "github.com/TidonAM/ODET/internal/core/ports/repositories"
	portssvc "github.com/TidonAM/ODET/internal/core/ports/services"
	"github.com/TidonAM/ODET/internal/middleware"
	"github.com/google/uuid"
)

// periodService implements portssvc.PeriodSvcFacade. The active period is
// never stored anywhere; it is always derived as the most recent reset, so
// there is nothing to get stale and a failed StartPeriod leaves the prior
// period active by construction.
type periodService struct {
	resetRepo portsrepo.ResetRepositoryFacade
	dashboard portssvc.DashboardInvalidator
}

// NewPeriodService creates a new period service.
func NewPeriodService(repo portsrepo.ResetRepositoryFacade, dashboard portssvc.DashboardInvalidator) portssvc.PeriodSvcFacade {
	return &periodService{resetRepo: repo, dashboard: dashboard}
}

var _ portssvc.PeriodSvcFacade = (*periodService)(nil)

func (s *periodService) ActivePeriod(ctx context.Context, userID string) (*domain.Reset, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	reset, err := s.resetRepo.FindLatestReset(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNoActivePeriod
		}
		logger.Error("Failed to find latest reset", slog.String("error", err.Error()))
		return nil, err
	}
	return reset, nil
}

func (s *periodService) GetPeriodByID(ctx context.Context, userID string, resetID string) (*domain.Reset, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	reset, err := s.resetRepo.FindResetByID(ctx, userID, resetID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find reset by ID", slog.String("error", err.Error()), slog.String("reset_id", resetID))
		}
		return nil, err
	}
	return reset, nil
}

func (s *periodService) ListPeriods(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Reset, *string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	resets, token, err := s.resetRepo.ListResets(ctx, userID, limit, nextToken)
	if err != nil {
		logger.Error("Failed to list resets", slog.String("error", err.Error()))
		return nil, nil, fmt.Errorf("failed to list periods: %w", err)
	}
	if resets == nil {
		return []domain.Reset{}, nil, nil
	}
	return resets, token, nil
}

// StartPeriod creates a new reset, implicitly archiving the prior period.
// Prior transactions stay queryable by their original reset id.
func (s *periodService) StartPeriod(ctx context.Context, userID string) (*domain.Reset, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now()
	reset := domain.Reset{
		ResetID:   uuid.NewString(),
		UserID:    userID,
		ResetDate: now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.resetRepo.SaveReset(ctx, reset); err != nil {
		// The previous period stays active; nothing was mutated.
		logger.Error("Failed to save reset", slog.String("error", err.Error()))
		return nil, err
	}

	if s.dashboard != nil {
		s.dashboard.Invalidate(userID)
	}
	logger.Info("New period started", slog.String("reset_id", reset.ResetID))
	return &reset, nil
}
