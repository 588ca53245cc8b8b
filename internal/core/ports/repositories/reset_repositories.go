package repositories

import (
	"context"

	"github.com/TidonAM/ODET/internal/core/domain"
)

// ResetReader defines read operations for reset (period) data
type ResetReader interface {
	// FindResetByID retrieves a specific reset owned by userID.
	FindResetByID(ctx context.Context, userID string, resetID string) (*domain.Reset, error)

	// FindLatestReset retrieves the user's most recent reset by reset date.
	// Returns apperrors.ErrNotFound when the user has no resets yet.
	FindLatestReset(ctx context.Context, userID string) (*domain.Reset, error)

	// ListResets retrieves a page of resets owned by userID, ordered by
	// reset date descending. nextToken is an opaque cursor from a previous
	// page; the returned token is nil on the last page.
	ListResets(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Reset, *string, error)
}

// ResetWriter defines write operations for reset data. Resets are
// insert-only; there is deliberately no update or delete method.
type ResetWriter interface {
	// SaveReset persists a new reset.
	SaveReset(ctx context.Context, reset domain.Reset) error
}

// ResetRepositoryFacade combines all reset-related repository interfaces
type ResetRepositoryFacade interface {
	ResetReader
	ResetWriter
}
