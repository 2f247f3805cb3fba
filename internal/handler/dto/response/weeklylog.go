package response

import (
	"time"

	"school-rewards/internal/usecase/queries"
)

type WeeklyLogResponse struct {
	ID         string `json:"id"`
	StudentID  string `json:"student_id"`
	Points     int    `json:"points"`
	WeekStart  string `json:"week_start"`
	ApprovedBy string `json:"approved_by"`
	HasVoucher bool   `json:"has_voucher"`
	CreatedAt  int64  `json:"created_at"`
}

func FromWeeklyLogView(v *queries.WeeklyLogView) *WeeklyLogResponse {
	return &WeeklyLogResponse{
		ID:         v.ID.String(),
		StudentID:  v.StudentID.String(),
		Points:     v.Points,
		WeekStart:  v.WeekStart.Format(time.DateOnly),
		ApprovedBy: v.ApprovedBy.String(),
		HasVoucher: v.HasVoucher,
		CreatedAt:  v.CreatedAt.Unix(),
	}
}

func FromWeeklyLogList(views []*queries.WeeklyLogView) []*WeeklyLogResponse {
	res := make([]*WeeklyLogResponse, len(views))
	for i, v := range views {
		res[i] = FromWeeklyLogView(v)
	}
	return res
}
