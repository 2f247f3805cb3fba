package response

import (
	"time"

	"school-rewards/internal/usecase/queries"
)

type PeriodResponse struct {
	ID                     string `json:"id"`
	Name                   string `json:"name"`
	StartDate              string `json:"start_date"`
	EndDate                string `json:"end_date"`
	MaxVouchers            int    `json:"max_vouchers"`
	RequiredForCertificate int    `json:"required_for_certificate"`
	Active                 bool   `json:"active"`
}

func FromPeriodView(v *queries.PeriodView) *PeriodResponse {
	return &PeriodResponse{
		ID:                     v.ID.String(),
		Name:                   v.Name,
		StartDate:              v.StartDate.Format(time.DateOnly),
		EndDate:                v.EndDate.Format(time.DateOnly),
		MaxVouchers:            v.MaxVouchers,
		RequiredForCertificate: v.RequiredForCertificate,
		Active:                 v.Active,
	}
}

func FromPeriodList(views []*queries.PeriodView) []*PeriodResponse {
	res := make([]*PeriodResponse, len(views))
	for i, v := range views {
		res[i] = FromPeriodView(v)
	}
	return res
}
