package domain

// Category is a display tag for transactions. It has no effect on
// aggregation; deleting one leaves dangling references on transactions,
// which downstream consumers must tolerate.
type Category struct {
	CategoryID string `json:"categoryID"` // Primary Key (UUID)
	UserID     string `json:"userID"`     // Owning user
	Title      string `json:"title"`
	Color      string `json:"color"`
	AuditFields
}
