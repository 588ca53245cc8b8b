package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction records a directional transfer of Price between up to two
// accounts on a calendar day. NegativeAccountID is the funds source and
// PositiveAccountID the destination; each is independently optional, so a
// transaction may be a pure expense, pure income, an internal transfer, or
// a memo-only entry affecting no balance. ServiceFee is an extra cost borne
// by the source account only.
type Transaction struct {
	TransactionID string          `json:"transactionID"` // Primary Key (UUID)
	UserID        string          `json:"userID"`        // Owning user
	ResetID       string          `json:"resetID"`       // FK -> Reset.ResetID (Not Null)
	Date          time.Time       `json:"date"`          // Calendar day; time component ignored
	Price         decimal.Decimal `json:"price"`         // Transferred amount, non-negative
	ServiceFee    decimal.Decimal `json:"serviceFee"`    // Non-negative, default 0

	CategoryID        string `json:"categoryID"`        // Optional, may dangle after category delete
	NegativeAccountID string `json:"negativeAccountID"` // Optional funds source, may dangle
	PositiveAccountID string `json:"positiveAccountID"` // Optional funds destination, may dangle

	Description string `json:"description"`
	AuditFields
}
