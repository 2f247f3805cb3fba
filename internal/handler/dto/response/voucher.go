package response

import (
	"time"

	"school-rewards/internal/usecase/queries"
)

type VoucherResponse struct {
	ID         string  `json:"id"`
	StudentID  string  `json:"student_id"`
	IssuedBy   string  `json:"issued_by"`
	OrderID    *string `json:"order_id,omitempty"`
	PeriodID   *string `json:"period_id,omitempty"`
	WeekStart  *string `json:"week_start,omitempty"`
	Status     string  `json:"status"`
	ApprovedBy *string `json:"approved_by,omitempty"`
	ApprovedAt *int64  `json:"approved_at,omitempty"`
	CreatedAt  int64   `json:"created_at"`
}

func FromVoucherView(v *queries.VoucherView) *VoucherResponse {
	resp := &VoucherResponse{
		ID:        v.ID.String(),
		StudentID: v.StudentID.String(),
		IssuedBy:  v.IssuedBy.String(),
		Status:    v.Status,
		CreatedAt: v.CreatedAt.Unix(),
	}

	if v.OrderID != nil {
		s := v.OrderID.String()
		resp.OrderID = &s
	}
	if v.PeriodID != nil {
		s := v.PeriodID.String()
		resp.PeriodID = &s
	}
	if v.WeekStart != nil {
		s := v.WeekStart.Format(time.DateOnly)
		resp.WeekStart = &s
	}
	if v.ApprovedBy != nil {
		s := v.ApprovedBy.String()
		resp.ApprovedBy = &s
	}
	if v.ApprovedAt != nil {
		ts := v.ApprovedAt.Unix()
		resp.ApprovedAt = &ts
	}
	return resp
}

func FromVoucherList(views []*queries.VoucherView) []*VoucherResponse {
	res := make([]*VoucherResponse, len(views))
	for i, v := range views {
		res[i] = FromVoucherView(v)
	}
	return res
}
