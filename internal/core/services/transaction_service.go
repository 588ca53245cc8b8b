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
	"github.com/TidonAM/ODET/internal/dto"
	"github.com/TidonAM/ODET/internal/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// transactionService implements portssvc.TransactionSvcFacade. It is the
// single mutation path for transactions: creation snapshots the active
// reset id before writing, every confirmed write invalidates the cached
// dashboard state, and a failed write changes nothing.
type transactionService struct {
	txnRepo   portsrepo.TransactionRepositoryFacade
	periodSvc portssvc.PeriodReaderSvc
	dashboard portssvc.DashboardInvalidator
}

// NewTransactionService creates a new transaction service.
func NewTransactionService(
	txnRepo portsrepo.TransactionRepositoryFacade,
	periodSvc portssvc.PeriodReaderSvc,
	dashboard portssvc.DashboardInvalidator,
) portssvc.TransactionSvcFacade {
	return &transactionService{
		txnRepo:   txnRepo,
		periodSvc: periodSvc,
		dashboard: dashboard,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// parseTransactionDate validates the yyyy-mm-dd wire format and truncates
// to the calendar day.
func parseTransactionDate(value string) (time.Time, error) {
	parsed, err := time.Parse(dto.TransactionDateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be in yyyy-mm-dd format", apperrors.ErrValidation)
	}
	return parsed, nil
}

func validateAmounts(price, fee decimal.Decimal) error {
	if price.IsNegative() {
		return fmt.Errorf("%w: price cannot be negative", apperrors.ErrValidation)
	}
	if fee.IsNegative() {
		return fmt.Errorf("%w: service fee cannot be negative", apperrors.ErrValidation)
	}
	return nil
}

// CreateTransaction attaches a new transaction to the active period. The
// active reset id is resolved first; without one the call fails before any
// write happens.
func (s *transactionService) CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	active, err := s.periodSvc.ActivePeriod(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoActivePeriod) {
			return nil, fmt.Errorf("%w: start a period before recording transactions", apperrors.ErrNoActivePeriod)
		}
		return nil, err
	}

	date, err := parseTransactionDate(req.Date)
	if err != nil {
		return nil, err
	}

	price := *req.Price
	fee := decimal.Zero
	if req.ServiceFee != nil {
		fee = *req.ServiceFee
	}
	if err := validateAmounts(price, fee); err != nil {
		return nil, err
	}

	now := time.Now()
	txn := domain.Transaction{
		TransactionID:     uuid.NewString(),
		UserID:            userID,
		ResetID:           active.ResetID,
		Date:              date,
		Price:             price,
		ServiceFee:        fee,
		CategoryID:        req.CategoryID,
		NegativeAccountID: req.NegativeAccountID,
		PositiveAccountID: req.PositiveAccountID,
		Description:       req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		logger.Error("Failed to save transaction in repository", slog.String("error", err.Error()), slog.String("transaction_id", txn.TransactionID))
		return nil, err
	}

	s.invalidate(userID)
	logger.Info("Transaction created", slog.String("transaction_id", txn.TransactionID), slog.String("reset_id", txn.ResetID))
	return &txn, nil
}

func (s *transactionService) GetTransactionByID(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	txn, err := s.txnRepo.FindTransactionByID(ctx, userID, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find transaction by ID in repository", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		}
		return nil, err
	}
	return txn, nil
}

// ListTransactions returns one period's transactions, newest first. An
// empty resetID resolves to the active period.
func (s *transactionService) ListTransactions(ctx context.Context, userID string, resetID string) ([]domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if resetID == "" {
		active, err := s.periodSvc.ActivePeriod(ctx, userID)
		if err != nil {
			return nil, err
		}
		resetID = active.ResetID
	} else {
		// Historical selection: verify the period exists and is the user's.
		if _, err := s.periodSvc.GetPeriodByID(ctx, userID, resetID); err != nil {
			return nil, err
		}
	}

	txns, err := s.txnRepo.ListTransactionsByReset(ctx, userID, resetID)
	if err != nil {
		logger.Error("Failed to list transactions from repository", slog.String("error", err.Error()), slog.String("reset_id", resetID))
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	if txns == nil {
		return []domain.Transaction{}, nil
	}
	return txns, nil
}

func (s *transactionService) UpdateTransaction(ctx context.Context, userID string, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.txnRepo.FindTransactionByID(ctx, userID, transactionID)
	if err != nil {
		return nil, err
	}

	if req.Date != nil {
		date, err := parseTransactionDate(*req.Date)
		if err != nil {
			return nil, err
		}
		txn.Date = date
	}
	if req.Price != nil {
		txn.Price = *req.Price
	}
	if req.ServiceFee != nil {
		txn.ServiceFee = *req.ServiceFee
	}
	if err := validateAmounts(txn.Price, txn.ServiceFee); err != nil {
		return nil, err
	}
	if req.CategoryID != nil {
		txn.CategoryID = *req.CategoryID
	}
	if req.NegativeAccountID != nil {
		txn.NegativeAccountID = *req.NegativeAccountID
	}
	if req.PositiveAccountID != nil {
		txn.PositiveAccountID = *req.PositiveAccountID
	}
	if req.Description != nil {
		txn.Description = *req.Description
	}
	txn.LastUpdatedAt = time.Now()
	txn.LastUpdatedBy = userID

	if err := s.txnRepo.UpdateTransaction(ctx, *txn); err != nil {
		logger.Error("Failed to update transaction in repository", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return nil, err
	}

	s.invalidate(userID)
	logger.Info("Transaction updated", slog.String("transaction_id", transactionID))
	return txn, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, userID string, transactionID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.txnRepo.DeleteTransaction(ctx, userID, transactionID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to delete transaction in repository", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		}
		return err
	}

	s.invalidate(userID)
	logger.Info("Transaction deleted", slog.String("transaction_id", transactionID))
	return nil
}

func (s *transactionService) invalidate(userID string) {
	if s.dashboard != nil {
		s.dashboard.Invalidate(userID)
	}
}
