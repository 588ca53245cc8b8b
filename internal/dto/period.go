package dto

import (
	"time"

	"github.com/TidonAM/ODET/internal/core/domain"
)

// PeriodResponse defines the data returned for an accounting period (reset).
type PeriodResponse struct {
	ResetID   string    `json:"resetID"`
	ResetDate time.Time `json:"resetDate"`
	Active    bool      `json:"active"`
}

// ToPeriodResponse converts a domain.Reset to PeriodResponse DTO
func ToPeriodResponse(reset *domain.Reset, active bool) PeriodResponse {
	return PeriodResponse{
		ResetID:   reset.ResetID,
		ResetDate: reset.ResetDate,
		Active:    active,
	}
}

// ListPeriodsResponse wraps one page of the period list, most recent
// first. NextToken is the cursor for the following page, omitted on the
// last one.
type ListPeriodsResponse struct {
	Periods   []PeriodResponse `json:"periods"`
	NextToken *string          `json:"nextToken,omitempty"`
}

// ToListPeriodsResponse converts a page of domain.Reset (ordered most
// recent first) to ListPeriodsResponse. firstPage flags the head entry as
// the active period; on later pages no entry is active.
func ToListPeriodsResponse(resets []domain.Reset, nextToken *string, firstPage bool) ListPeriodsResponse {
	res := make([]PeriodResponse, len(resets))
	for i, reset := range resets {
		res[i] = ToPeriodResponse(&reset, firstPage && i == 0)
	}
	return ListPeriodsResponse{Periods: res, NextToken: nextToken}
}
