package response

import (
	"school-rewards/internal/usecase/queries"
)

type StudentProfileResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Balance      int    `json:"voucher_balance"`
	WeeklyPoints int    `json:"weekly_points"`
	Certificates int    `json:"certificates"`
	IsActive     bool   `json:"is_active"`
}

func FromStudentProfileView(v *queries.StudentProfileView) *StudentProfileResponse {
	return &StudentProfileResponse{
		ID:           v.ID.String(),
		Name:         v.Name,
		Email:        v.Email,
		Balance:      v.Balance,
		WeeklyPoints: v.WeeklyPoints,
		Certificates: v.Certificates,
		IsActive:     v.IsActive,
	}
}
