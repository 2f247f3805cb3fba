package request

import (
	"time"

	"school-rewards/internal/usecase/commands"
)

type CreatePeriodRequest struct {
	Name                   string    `json:"name" binding:"required,max=200"`
	StartDate              time.Time `json:"start_date" binding:"required"`
	EndDate                time.Time `json:"end_date" binding:"required"`
	MaxVouchers            *int      `json:"max_vouchers" binding:"omitempty,min=1"`
	RequiredForCertificate *int      `json:"required_for_certificate" binding:"omitempty,min=1"`
	Active                 bool      `json:"active"`
}

func (r *CreatePeriodRequest) ToInput() commands.CreatePeriodInput {
	return commands.CreatePeriodInput{
		Name:                   r.Name,
		StartDate:              r.StartDate,
		EndDate:                r.EndDate,
		MaxVouchers:            r.MaxVouchers,
		RequiredForCertificate: r.RequiredForCertificate,
		Active:                 r.Active,
	}
}

type UpdatePeriodRequest struct {
	Name                   *string    `json:"name" binding:"omitempty,max=200"`
	StartDate              *time.Time `json:"start_date"`
	EndDate                *time.Time `json:"end_date"`
	MaxVouchers            *int       `json:"max_vouchers" binding:"omitempty,min=1"`
	RequiredForCertificate *int       `json:"required_for_certificate" binding:"omitempty,min=1"`
	Active                 *bool      `json:"active"`
}

func (r *UpdatePeriodRequest) ToInput() commands.UpdatePeriodInput {
	return commands.UpdatePeriodInput{
		Name:                   r.Name,
		StartDate:              r.StartDate,
		EndDate:                r.EndDate,
		MaxVouchers:            r.MaxVouchers,
		RequiredForCertificate: r.RequiredForCertificate,
		Active:                 r.Active,
	}
}
