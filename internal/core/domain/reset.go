package domain

import "time"

// Reset marks the start of an accounting period for a user. Transactions
// always belong to exactly one reset. Resets are immutable once created;
// starting a new period is purely additive and the most recent reset (by
// reset date) is the active one.
type Reset struct {
	ResetID   string    `json:"resetID"`   // Primary Key (UUID)
	UserID    string    `json:"userID"`    // Owning user
	ResetDate time.Time `json:"resetDate"` // When the period started
	AuditFields
}
