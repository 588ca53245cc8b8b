package models

// Category is the database representation of a transaction tag.
type Category struct {
	CategoryID string `db:"category_id"`
	UserID     string `db:"user_id"`
	Title      string `db:"title"`
	Color      string `db:"color"`
	AuditFields
}
