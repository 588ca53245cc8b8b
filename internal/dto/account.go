package dto

import (
	"time"

	"github.com/TidonAM/ODET/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
// The credit fields are only honored when IsCredit is true; they are
// normalized to zero otherwise.
type CreateAccountRequest struct {
	Title             string           `json:"title" binding:"required"`
	Color             string           `json:"color"`
	IsCredit          bool             `json:"isCredit"`
	DueDate           int              `json:"dueDate" binding:"omitempty,min=1,max=31"`
	MinPaymentPercent *decimal.Decimal `json:"minPaymentPercent"` // 0-100
	InterestRate      *decimal.Decimal `json:"interestRate"`      // Informational
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
// IsCredit is deliberately absent: the credit flag cannot be toggled after
// creation, to protect transaction history.
type UpdateAccountRequest struct {
	Title             *string          `json:"title"`
	Color             *string          `json:"color"`
	DueDate           *int             `json:"dueDate" binding:"omitempty,min=1,max=31"`
	MinPaymentPercent *decimal.Decimal `json:"minPaymentPercent"`
	InterestRate      *decimal.Decimal `json:"interestRate"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID         string          `json:"accountID"`
	Title             string          `json:"title"`
	Color             string          `json:"color"`
	IsCredit          bool            `json:"isCredit"`
	DueDate           int             `json:"dueDate,omitempty"`
	MinPaymentPercent decimal.Decimal `json:"minPaymentPercent"`
	InterestRate      decimal.Decimal `json:"interestRate"`
	CreatedAt         time.Time       `json:"createdAt"`
	LastUpdatedAt     time.Time       `json:"lastUpdatedAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:         acc.AccountID,
		Title:             acc.Title,
		Color:             acc.Color,
		IsCredit:          acc.IsCredit,
		DueDate:           acc.DueDate,
		MinPaymentPercent: acc.MinPaymentPercent,
		InterestRate:      acc.InterestRate,
		CreatedAt:         acc.CreatedAt,
		LastUpdatedAt:     acc.LastUpdatedAt,
	}
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToListAccountsResponse converts a slice of domain.Account to ListAccountsResponse
func ToListAccountsResponse(accounts []domain.Account) ListAccountsResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return ListAccountsResponse{Accounts: res}
}
