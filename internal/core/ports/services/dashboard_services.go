package services

import (
	"context"

	"github.com/TidonAM/ODET/internal/core/domain"
)

// DashboardSvcFacade owns the aggregated ledger state shown on the
// dashboard. It is the only writer of that state: summaries are derived
// from scratch from the account and transaction sets, cached per user, and
// invalidated after every successful mutation.
type DashboardSvcFacade interface {
	// GetSummary returns the aggregated position for one period. An empty
	// resetID means the active period. The reset id is snapshotted before
	// fetching; a result computed for a reset that is no longer the one
	// requested is discarded rather than cached.
	GetSummary(ctx context.Context, userID string, resetID string) (*domain.LedgerSummary, error)

	// Invalidate drops the cached summary for a user so the next GetSummary
	// recomputes from fresh entity lists. Called by mutation services after
	// every confirmed write.
	Invalidate(userID string)

	// Subscribe registers for change notifications on a user's dashboard
	// state. The returned function cancels the subscription.
	Subscribe(userID string) (<-chan struct{}, func())
}

// DashboardInvalidator is the narrow dependency mutation services take on
// the dashboard, keeping the one-way ownership of cached state explicit.
type DashboardInvalidator interface {
	Invalidate(userID string)
}
