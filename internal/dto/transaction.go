package dto

import (
	"time"

	"github.com/TidonAM/ODET/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionDateLayout is the wire format for transaction dates. Only the
// calendar day matters for aggregation.
const TransactionDateLayout = "2006-01-02"

// CreateTransactionRequest defines the data needed to record a transaction.
// Price and Date are required; both account references and the category are
// independently optional, so pure income, pure expense, transfers, and
// memo-only entries are all valid shapes.
type CreateTransactionRequest struct {
	Date              string           `json:"date" binding:"required"` // yyyy-mm-dd
	Price             *decimal.Decimal `json:"price" binding:"required"`
	ServiceFee        *decimal.Decimal `json:"serviceFee"` // Defaults to 0
	CategoryID        string           `json:"categoryID"`
	NegativeAccountID string           `json:"negativeAccountID"`
	PositiveAccountID string           `json:"positiveAccountID"`
	Description       string           `json:"description"`
}

// UpdateTransactionRequest defines the data allowed for updating a
// transaction. Pointers distinguish omitted fields from zero values; the
// reset id a transaction belongs to is not updatable.
type UpdateTransactionRequest struct {
	Date              *string          `json:"date"` // yyyy-mm-dd
	Price             *decimal.Decimal `json:"price"`
	ServiceFee        *decimal.Decimal `json:"serviceFee"`
	CategoryID        *string          `json:"categoryID"`
	NegativeAccountID *string          `json:"negativeAccountID"`
	PositiveAccountID *string          `json:"positiveAccountID"`
	Description       *string          `json:"description"`
}

// EntityRef is a resolved reference to an account or category shown next
// to a transaction. Dangling references resolve to nil and the client
// renders a placeholder instead.
type EntityRef struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Color    string `json:"color"`
	IsCredit bool   `json:"isCredit,omitempty"` // Accounts only
}

// TransactionResponse defines the data returned for a transaction,
// including resolved references where the target entity still exists.
type TransactionResponse struct {
	TransactionID   string          `json:"transactionID"`
	ResetID         string          `json:"resetID"`
	Date            string          `json:"date"`
	Price           decimal.Decimal `json:"price"`
	ServiceFee      decimal.Decimal `json:"serviceFee"`
	Description     string          `json:"description"`
	Category        *EntityRef      `json:"category,omitempty"`
	NegativeAccount *EntityRef      `json:"negativeAccount,omitempty"`
	PositiveAccount *EntityRef      `json:"positiveAccount,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	LastUpdatedAt   time.Time       `json:"lastUpdatedAt"`
}

func accountRef(id string, accounts map[string]domain.Account) *EntityRef {
	if id == "" {
		return nil
	}
	acc, ok := accounts[id]
	if !ok {
		return nil // dangling reference, client shows "unknown account"
	}
	return &EntityRef{ID: acc.AccountID, Title: acc.Title, Color: acc.Color, IsCredit: acc.IsCredit}
}

func categoryRef(id string, categories map[string]domain.Category) *EntityRef {
	if id == "" {
		return nil
	}
	cat, ok := categories[id]
	if !ok {
		return nil
	}
	return &EntityRef{ID: cat.CategoryID, Title: cat.Title, Color: cat.Color}
}

// ToTransactionResponse converts a domain.Transaction to its response DTO,
// resolving account and category references against the given lookup maps.
func ToTransactionResponse(txn *domain.Transaction, accounts map[string]domain.Account, categories map[string]domain.Category) TransactionResponse {
	return TransactionResponse{
		TransactionID:   txn.TransactionID,
		ResetID:         txn.ResetID,
		Date:            txn.Date.Format(TransactionDateLayout),
		Price:           txn.Price,
		ServiceFee:      txn.ServiceFee,
		Description:     txn.Description,
		Category:        categoryRef(txn.CategoryID, categories),
		NegativeAccount: accountRef(txn.NegativeAccountID, accounts),
		PositiveAccount: accountRef(txn.PositiveAccountID, accounts),
		CreatedAt:       txn.CreatedAt,
		LastUpdatedAt:   txn.LastUpdatedAt,
	}
}

// ListTransactionsResponse wraps the transaction list of one period.
type ListTransactionsResponse struct {
	ResetID      string                `json:"resetID"`
	Transactions []TransactionResponse `json:"transactions"`
}

// ToListTransactionsResponse converts a slice of domain.Transaction to
// ListTransactionsResponse with references resolved.
func ToListTransactionsResponse(resetID string, txns []domain.Transaction, accounts map[string]domain.Account, categories map[string]domain.Category) ListTransactionsResponse {
	res := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		res[i] = ToTransactionResponse(&txn, accounts, categories)
	}
	return ListTransactionsResponse{ResetID: resetID, Transactions: res}
}
