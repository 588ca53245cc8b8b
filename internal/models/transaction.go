package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the database representation of a transfer. The category
// and account columns are nullable ids with no foreign keys, so deleting
// an account or category leaves dangling references here on purpose.
type Transaction struct {
	TransactionID     string          `db:"transaction_id"`
	UserID            string          `db:"user_id"`
	ResetID           string          `db:"reset_id"`
	Date              time.Time       `db:"date"`
	Price             decimal.Decimal `db:"price"`
	ServiceFee        decimal.Decimal `db:"service_fee"`
	CategoryID        string          `db:"category_id"`         // Nullable
	NegativeAccountID string          `db:"negative_account_id"` // Nullable
	PositiveAccountID string          `db:"positive_account_id"` // Nullable
	Description       string          `db:"description"`
	AuditFields
}
