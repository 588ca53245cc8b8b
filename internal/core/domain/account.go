package domain

import (
	"github.com/shopspring/decimal"
)

// Account represents a balance-holding account within the core domain.
// An account is either a cash/asset account or a revolving-credit account;
// the three credit fields are only meaningful when IsCredit is true.
type Account struct {
	AccountID string `json:"accountID"` // Primary Key (UUID)
	UserID    string `json:"userID"`    // Owning user
	Title     string `json:"title"`     // User-defined name
	Color     string `json:"color"`     // Display color (hex or palette token)
	IsCredit  bool   `json:"isCredit"`  // Revolving credit vs cash/asset

	// Credit-only fields. Zero/absent for non-credit accounts.
	DueDate           int             `json:"dueDate"`           // Day of month, 1-31
	MinPaymentPercent decimal.Decimal `json:"minPaymentPercent"` // 0-100
	InterestRate      decimal.Decimal `json:"interestRate"`      // Informational only, never projected

	AuditFields
}

// NormalizeCreditFields zeroes the credit-only fields for non-credit
// accounts so stored stragglers never leak into responses or arithmetic.
func (a *Account) NormalizeCreditFields() {
	if a.IsCredit {
		return
	}
	a.DueDate = 0
	a.MinPaymentPercent = decimal.Zero
	a.InterestRate = decimal.Zero
}
