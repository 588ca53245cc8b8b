package services

import (
	"context"

	"github.com/TidonAM/ODET/internal/core/domain"
)

// PeriodReaderSvc defines read operations over accounting periods (resets).
type PeriodReaderSvc interface {
	// ActivePeriod returns the user's current period, i.e. the most recent
	// reset by reset date. Returns apperrors.ErrNoActivePeriod when the
	// user has never started one.
	ActivePeriod(ctx context.Context, userID string) (*domain.Reset, error)

	// GetPeriodByID retrieves a specific historical period.
	GetPeriodByID(ctx context.Context, userID string, resetID string) (*domain.Reset, error)

	// ListPeriods returns a page of the user's periods, most recent first,
	// with an opaque cursor for the next page (nil on the last page).
	ListPeriods(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Reset, *string, error)
}

// PeriodWriterSvc defines the single write operation over periods:
// starting a new one. Prior periods are archived implicitly since
// transactions are scoped by reset id; nothing is ever deleted.
type PeriodWriterSvc interface {
	// StartPeriod creates a new reset for the user and returns it. On
	// failure nothing changes; the previously active period stays active.
	StartPeriod(ctx context.Context, userID string) (*domain.Reset, error)
}

// PeriodSvcFacade combines all period-related service interfaces
type PeriodSvcFacade interface {
	PeriodReaderSvc
	PeriodWriterSvc
}
