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

// accountService implements portssvc.AccountSvcFacade.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	dashboard   portssvc.DashboardInvalidator
}

// NewAccountService creates a new account service. The dashboard
// invalidator may be nil in tests that don't care about cache refresh.
func NewAccountService(repo portsrepo.AccountRepositoryFacade, dashboard portssvc.DashboardInvalidator) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: repo, dashboard: dashboard}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, userID string, req dto.CreateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now()
	account := domain.Account{
		AccountID: uuid.NewString(),
		UserID:    userID,
		Title:     req.Title,
		Color:     req.Color,
		IsCredit:  req.IsCredit,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if req.IsCredit {
		account.DueDate = req.DueDate
		if req.MinPaymentPercent != nil {
			account.MinPaymentPercent = *req.MinPaymentPercent
		}
		if req.InterestRate != nil {
			account.InterestRate = *req.InterestRate
		}
		if err := validateCreditFields(&account); err != nil {
			return nil, err
		}
	}
	// Non-credit accounts ignore the credit fields regardless of input.
	account.NormalizeCreditFields()

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account in repository", slog.String("error", err.Error()), slog.String("account_id", account.AccountID))
		return nil, err
	}

	s.invalidate(userID)
	logger.Info("Account created", slog.String("account_id", account.AccountID))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, userID string, accountID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	account, err := s.accountRepo.FindAccountByID(ctx, userID, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find account by ID in repository", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, userID string) ([]domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	accounts, err := s.accountRepo.ListAccounts(ctx, userID)
	if err != nil {
		logger.Error("Failed to list accounts from repository", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, userID string, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		account.Title = *req.Title
	}
	if req.Color != nil {
		account.Color = *req.Color
	}
	// The credit flag itself is immutable; only credit accounts may adjust
	// their credit parameters.
	if account.IsCredit {
		if req.DueDate != nil {
			account.DueDate = *req.DueDate
		}
		if req.MinPaymentPercent != nil {
			account.MinPaymentPercent = *req.MinPaymentPercent
		}
		if req.InterestRate != nil {
			account.InterestRate = *req.InterestRate
		}
		if err := validateCreditFields(account); err != nil {
			return nil, err
		}
	}
	account.NormalizeCreditFields()
	account.LastUpdatedAt = time.Now()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		logger.Error("Failed to update account in repository", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, err
	}

	s.invalidate(userID)
	logger.Info("Account updated", slog.String("account_id", accountID))
	return account, nil
}

// DeleteAccount removes the account only. Transactions that reference it
// keep their now-dangling ids and simply stop contributing to balances.
func (s *accountService) DeleteAccount(ctx context.Context, userID string, accountID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.accountRepo.DeleteAccount(ctx, userID, accountID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to delete account in repository", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return err
	}

	s.invalidate(userID)
	logger.Info("Account deleted", slog.String("account_id", accountID))
	return nil
}

func (s *accountService) invalidate(userID string) {
	if s.dashboard != nil {
		s.dashboard.Invalidate(userID)
	}
}

// validateCreditFields checks the credit-only fields of a credit account.
func validateCreditFields(account *domain.Account) error {
	if account.DueDate < 1 || account.DueDate > 31 {
		return fmt.Errorf("%w: due date must be a day of month (1-31)", apperrors.ErrValidation)
	}
	hundred := decimal.NewFromInt(100)
	if account.MinPaymentPercent.IsNegative() || account.MinPaymentPercent.GreaterThan(hundred) {
		return fmt.Errorf("%w: minimum payment percent must be between 0 and 100", apperrors.ErrValidation)
	}
	if account.InterestRate.IsNegative() {
		return fmt.Errorf("%w: interest rate cannot be negative", apperrors.ErrValidation)
	}
	return nil
}
