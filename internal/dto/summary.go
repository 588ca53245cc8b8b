package dto

import (
	"github.com/TidonAM/ODET/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountBalanceResponse is one account's aggregated position.
type AccountBalanceResponse struct {
	AccountID  string          `json:"accountID"`
	Title      string          `json:"title"`
	Color      string          `json:"color"`
	IsCredit   bool            `json:"isCredit"`
	Balance    decimal.Decimal `json:"balance"`
	DueDate    int             `json:"dueDate,omitempty"`
	MinimumDue decimal.Decimal `json:"minimumDue"`
}

// SummaryResponse is the dashboard rollup for one period.
type SummaryResponse struct {
	ResetID     string                   `json:"resetID"`
	Balances    []AccountBalanceResponse `json:"balances"`
	TotalCash   decimal.Decimal          `json:"totalCash"`
	TotalDebt   decimal.Decimal          `json:"totalDebt"`
	NetPosition decimal.Decimal          `json:"netPosition"`
}

// ToSummaryResponse converts a domain.LedgerSummary to SummaryResponse DTO
func ToSummaryResponse(s *domain.LedgerSummary) SummaryResponse {
	balances := make([]AccountBalanceResponse, len(s.Balances))
	for i, b := range s.Balances {
		balances[i] = AccountBalanceResponse{
			AccountID:  b.AccountID,
			Title:      b.Title,
			Color:      b.Color,
			IsCredit:   b.IsCredit,
			Balance:    b.Balance,
			DueDate:    b.DueDate,
			MinimumDue: b.MinimumDue,
		}
	}
	return SummaryResponse{
		ResetID:     s.ResetID,
		Balances:    balances,
		TotalCash:   s.TotalCash,
		TotalDebt:   s.TotalDebt,
		NetPosition: s.NetPosition,
	}
}
