package mapping

import (
	"github.com/TidonAM/ODET/internal/core/domain"
	"github.com/TidonAM/ODET/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:     d.TransactionID,
		UserID:            d.UserID,
		ResetID:           d.ResetID,
		Date:              d.Date,
		Price:             d.Price,
		ServiceFee:        d.ServiceFee,
		CategoryID:        d.CategoryID,
		NegativeAccountID: d.NegativeAccountID,
		PositiveAccountID: d.PositiveAccountID,
		Description:       d.Description,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:     m.TransactionID,
		UserID:            m.UserID,
		ResetID:           m.ResetID,
		Date:              m.Date,
		Price:             m.Price,
		ServiceFee:        m.ServiceFee,
		CategoryID:        m.CategoryID,
		NegativeAccountID: m.NegativeAccountID,
		PositiveAccountID: m.PositiveAccountID,
		Description:       m.Description,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions to domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
