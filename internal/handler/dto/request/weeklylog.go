package request

import (
	"time"

	"school-rewards/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateWeeklyLogRequest struct {
	StudentID  uuid.UUID `json:"student_id" binding:"required"`
	Points     int       `json:"points" binding:"min=0"`
	WeekStart  time.Time `json:"week_start" binding:"required"`
	HasVoucher bool      `json:"has_voucher"`
}

type UpdateWeeklyLogRequest struct {
	Points     *int  `json:"points" binding:"omitempty,min=0"`
	HasVoucher *bool `json:"has_voucher"`
}

func (r *UpdateWeeklyLogRequest) ToInput() commands.UpdateLogInput {
	return commands.UpdateLogInput{
		Points:     r.Points,
		HasVoucher: r.HasVoucher,
	}
}
