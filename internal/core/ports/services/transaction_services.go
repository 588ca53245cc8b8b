package services

import (
	"context"

	"github.com/TidonAM/ODET/internal/core/domain"
	"github.com/TidonAM/ODET/internal/dto"
)

// TransactionReaderSvc defines read operations for transaction data
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves a specific transaction owned by userID.
	GetTransactionByID(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves the transactions of one period, newest
	// first. An empty resetID means the active period.
	ListTransactions(ctx context.Context, userID string, resetID string) ([]domain.Transaction, error)
}

// TransactionWriterSvc defines write operations for transaction data.
// Creation requires an active period; all writes invalidate the cached
// dashboard state on success and leave it untouched on failure.
type TransactionWriterSvc interface {
	// CreateTransaction persists a new transaction attached to the active
	// period. Fails with apperrors.ErrNoActivePeriod when none exists.
	CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error)

	// UpdateTransaction updates an existing transaction.
	UpdateTransaction(ctx context.Context, userID string, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error)

	// DeleteTransaction removes a transaction.
	DeleteTransaction(ctx context.Context, userID string, transactionID string) error
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
