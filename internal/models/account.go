package models

import (
	"github.com/shopspring/decimal"
)

// Account is the database representation of a balance-holding account.
// The three credit columns are stored as zero/NULL for non-credit rows.
type Account struct {
	AccountID         string          `db:"account_id"`
	UserID            string          `db:"user_id"`
	Title             string          `db:"title"`
	Color             string          `db:"color"`
	IsCredit          bool            `db:"is_credit"`
	DueDate           int             `db:"due_date"` // Nullable, day of month
	MinPaymentPercent decimal.Decimal `db:"min_payment_percent"`
	InterestRate      decimal.Decimal `db:"interest_rate"`
	AuditFields
}
