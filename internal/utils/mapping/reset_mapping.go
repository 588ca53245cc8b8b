package mapping

import (
	"github.com/TidonAM/ODET/internal/core/domain"
	"github.com/TidonAM/ODET/internal/models"
)

// ToModelReset converts a domain Reset to a model Reset
func ToModelReset(d domain.Reset) models.Reset {
	return models.Reset{
		ResetID:     d.ResetID,
		UserID:      d.UserID,
		ResetDate:   d.ResetDate,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainReset converts a model Reset to a domain Reset
func ToDomainReset(m models.Reset) domain.Reset {
	return domain.Reset{
		ResetID:     m.ResetID,
		UserID:      m.UserID,
		ResetDate:   m.ResetDate,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainResetSlice converts a slice of model Resets to domain Resets
func ToDomainResetSlice(ms []models.Reset) []domain.Reset {
	ds := make([]domain.Reset, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainReset(m)
	}
	return ds
}
