package request

import (
	"github.com/google/uuid"
)

type IssueVoucherRequest struct {
	StudentID uuid.UUID `json:"student_id" binding:"required"`
}

type RedeemVoucherRequest struct {
	OrderID uuid.UUID `json:"order_id" binding:"required"`
}
