package domain

import (
	"github.com/shopspring/decimal"
)

// AccountBalance is one account's aggregated position within a period,
// plus the display fields the dashboard renders next to it.
type AccountBalance struct {
	AccountID  string          `json:"accountID"`
	Title      string          `json:"title"`
	Color      string          `json:"color"`
	IsCredit   bool            `json:"isCredit"`
	Balance    decimal.Decimal `json:"balance"`
	DueDate    int             `json:"dueDate,omitempty"`    // Credit accounts only
	MinimumDue decimal.Decimal `json:"minimumDue,omitempty"` // Credit accounts only
}

// LedgerSummary is the aggregate position over one period: every account's
// balance plus the cash/debt/net rollup. TotalCash sums non-credit
// balances, TotalDebt sums credit balances, and NetPosition is always
// TotalCash minus TotalDebt; the three are derived from Balances and never
// stored independently.
type LedgerSummary struct {
	ResetID     string           `json:"resetID"`
	Balances    []AccountBalance `json:"balances"`
	TotalCash   decimal.Decimal  `json:"totalCash"`
	TotalDebt   decimal.Decimal  `json:"totalDebt"`
	NetPosition decimal.Decimal  `json:"netPosition"`
}
