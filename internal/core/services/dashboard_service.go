package services

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/TidonAM/ODET/internal/apperrors"
	"github.com/TidonAM/ODET/internal/core/domain"
	portsrepo "github.com/TidonAM/ODET/internal/core/ports/repositories"
	portssvc "github.com/TidonAM/ODET/internal/core/ports/services"
	"github.com/TidonAM/ODET/internal/middleware"
	"github.com/TidonAM/ODET/internal/utils/accounting"
	"golang.org/x/sync/errgroup"
)

// userDashboard is one user's cached aggregation state. generation is
// bumped on every invalidation; a refresh that started under an older
// generation (or for a different reset) discards its result instead of
// caching it, so late responses never overwrite fresher state.
type userDashboard struct {
	mu         sync.Mutex
	generation uint64
	summary    *domain.LedgerSummary
	subs       map[uint64]chan struct{}
	nextSubID  uint64
}

// dashboardService implements portssvc.DashboardSvcFacade. It is the only
// writer of aggregated ledger state: summaries are recomputed from scratch
// from the account and transaction sets, never adjusted incrementally.
type dashboardService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	txnRepo     portsrepo.TransactionRepositoryFacade
	resetRepo   portsrepo.ResetRepositoryFacade

	mu    sync.Mutex
	users map[string]*userDashboard
}

// NewDashboardService creates a new dashboard service. It reads resets
// straight from the repository rather than through the period service, so
// the period service can depend on the dashboard for invalidation without
// a cycle.
func NewDashboardService(
	accountRepo portsrepo.AccountRepositoryFacade,
	txnRepo portsrepo.TransactionRepositoryFacade,
	resetRepo portsrepo.ResetRepositoryFacade,
) portssvc.DashboardSvcFacade {
	return &dashboardService{
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
		resetRepo:   resetRepo,
		users:       make(map[string]*userDashboard),
	}
}

var _ portssvc.DashboardSvcFacade = (*dashboardService)(nil)

func (s *dashboardService) userState(userID string) *userDashboard {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.users[userID]
	if !ok {
		state = &userDashboard{subs: make(map[uint64]chan struct{})}
		s.users[userID] = state
	}
	return state
}

// GetSummary returns the aggregated position for one period, serving from
// the per-user cache when the cached summary matches the requested reset.
// The requested reset id and the cache generation are snapshotted before
// fetching, so a refresh overtaken by a mutation or a period switch is
// recomputed rather than served stale.
func (s *dashboardService) GetSummary(ctx context.Context, userID string, resetID string) (*domain.LedgerSummary, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if resetID == "" {
		latest, err := s.resetRepo.FindLatestReset(ctx, userID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.ErrNoActivePeriod
			}
			return nil, err
		}
		resetID = latest.ResetID
	} else {
		if _, err := s.resetRepo.FindResetByID(ctx, userID, resetID); err != nil {
			return nil, err
		}
	}

	state := s.userState(userID)

	state.mu.Lock()
	if state.summary != nil && state.summary.ResetID == resetID {
		cached := state.summary
		state.mu.Unlock()
		return cached, nil
	}
	startGen := state.generation
	state.mu.Unlock()

	summary, err := s.compute(ctx, userID, resetID)
	if err != nil {
		logger.Error("Failed to compute dashboard summary", slog.String("error", err.Error()), slog.String("reset_id", resetID))
		return nil, err
	}

	state.mu.Lock()
	if state.generation == startGen {
		state.summary = summary
	}
	// A stale result is still correct for the reset it was computed for,
	// so it is returned to this caller either way; it just never becomes
	// the cached state.
	state.mu.Unlock()

	return summary, nil
}

// compute fetches the account set and the period's transactions
// concurrently and folds them into a fresh summary.
func (s *dashboardService) compute(ctx context.Context, userID string, resetID string) (*domain.LedgerSummary, error) {
	var (
		accounts     []domain.Account
		transactions []domain.Transaction
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		accounts, err = s.accountRepo.ListAccounts(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		transactions, err = s.txnRepo.ListTransactionsByReset(gctx, userID, resetID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	balances := accounting.ComputeBalances(accounts, transactions)
	summary := accounting.Summarize(resetID, accounts, balances)
	return &summary, nil
}

// Invalidate drops the user's cached summary and wakes subscribers. Any
// in-flight refresh that started before this call will see a newer
// generation and skip caching its result.
func (s *dashboardService) Invalidate(userID string) {
	state := s.userState(userID)

	state.mu.Lock()
	state.generation++
	state.summary = nil
	for _, ch := range state.subs {
		select {
		case ch <- struct{}{}:
		default: // subscriber already has a pending notification
		}
	}
	state.mu.Unlock()
}

// Subscribe registers for change notifications on the user's dashboard
// state. Notifications are coalesced: a slow consumer sees at least one
// signal after any burst of mutations.
func (s *dashboardService) Subscribe(userID string) (<-chan struct{}, func()) {
	state := s.userState(userID)

	state.mu.Lock()
	id := state.nextSubID
	state.nextSubID++
	ch := make(chan struct{}, 1)
	state.subs[id] = ch
	state.mu.Unlock()

	cancel := func() {
		state.mu.Lock()
		delete(state.subs, id)
		state.mu.Unlock()
	}
	return ch, cancel
}
