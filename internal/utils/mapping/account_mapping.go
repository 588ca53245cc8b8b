package mapping

import (
	"github.com/TidonAM/ODET/internal/core/domain"
	"github.com/TidonAM/ODET/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:         d.AccountID,
		UserID:            d.UserID,
		Title:             d.Title,
		Color:             d.Color,
		IsCredit:          d.IsCredit,
		DueDate:           d.DueDate,
		MinPaymentPercent: d.MinPaymentPercent,
		InterestRate:      d.InterestRate,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account.
// Credit-only fields of non-credit rows are normalized away so stale stored
// values never surface.
func ToDomainAccount(m models.Account) domain.Account {
	d := domain.Account{
		AccountID:         m.AccountID,
		UserID:            m.UserID,
		Title:             m.Title,
		Color:             m.Color,
		IsCredit:          m.IsCredit,
		DueDate:           m.DueDate,
		MinPaymentPercent: m.MinPaymentPercent,
		InterestRate:      m.InterestRate,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
	d.NormalizeCreditFields()
	return d
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
