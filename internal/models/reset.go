package models

import "time"

// Reset is the database representation of a period boundary. Rows are
// insert-only; no UPDATE or DELETE statement exists for this table.
type Reset struct {
	ResetID   string    `db:"reset_id"`
	UserID    string    `db:"user_id"`
	ResetDate time.Time `db:"reset_date"`
	AuditFields
}
