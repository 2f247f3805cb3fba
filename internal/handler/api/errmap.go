package api

import (
	"errors"
	"net/http"

	"school-rewards/internal/handler/httperr"
	"school-rewards/internal/usecase/commands"
	"school-rewards/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

var errUnauthorized = errors.New("unauthorized")

// errorStatus maps use case sentinels onto HTTP statuses. Order matters only
// in that the first match wins; entries are grouped by status for reading.
var errorStatus = []struct {
	target  error
	status  int
	message string
}{
	// validation
	{commands.ErrDomainValidation, http.StatusBadRequest, "Invalid request data"},
	{commands.ErrNotAStudent, http.StatusBadRequest, "Target user is not a student"},

	// not found
	{commands.ErrStudentNotFound, http.StatusNotFound, "Student not found"},
	{commands.ErrProductNotFound, http.StatusNotFound, "Product not found"},
	{commands.ErrOrderNotFound, http.StatusNotFound, "Order not found"},
	{commands.ErrVoucherNotFound, http.StatusNotFound, "Voucher not found"},
	{commands.ErrWeeklyLogNotFound, http.StatusNotFound, "Weekly points log not found"},
	{commands.ErrPeriodNotFound, http.StatusNotFound, "Certificate period not found"},
	{queries.ErrProductNotFound, http.StatusNotFound, "Product not found"},
	{queries.ErrOrderNotFound, http.StatusNotFound, "Order not found"},
	{queries.ErrVoucherNotFound, http.StatusNotFound, "Voucher not found"},
	{queries.ErrWeeklyLogNotFound, http.StatusNotFound, "Weekly points log not found"},
	{queries.ErrPeriodNotFound, http.StatusNotFound, "Certificate period not found"},
	{queries.ErrNoActivePeriod, http.StatusNotFound, "No active certificate period"},
	{queries.ErrStudentNotFound, http.StatusNotFound, "Student not found"},
	{queries.ErrUserNotFound, http.StatusNotFound, "User not found"},

	// conflicts
	{commands.ErrInsufficientStock, http.StatusConflict, "Insufficient product stock"},
	{commands.ErrInsufficientVouchers, http.StatusConflict, "Insufficient voucher balance"},
	{commands.ErrInvalidStatusTransition, http.StatusConflict, "Order status may only move forward"},
	{commands.ErrDuplicateWeek, http.StatusConflict, "A log already exists for this week"},
	{commands.ErrAlreadyInState, http.StatusConflict, "Voucher has already been resolved"},
	{commands.ErrAlreadyRedeemed, http.StatusConflict, "Voucher has already been redeemed"},
	{commands.ErrVoucherNotApproved, http.StatusConflict, "Only approved vouchers can be redeemed"},
	{commands.ErrVoucherRedeemed, http.StatusConflict, "Redeemed vouchers are immutable"},
	{commands.ErrPeriodOverlap, http.StatusConflict, "Period overlaps an existing period"},
	{commands.ErrActivePeriodExists, http.StatusConflict, "Another period is already active"},

	// forbidden
	{commands.ErrForbidden, http.StatusForbidden, "Operation not allowed for this role"},

	// unavailable
	{commands.ErrNoActivePeriod, http.StatusUnprocessableEntity, "No active certificate period"},
	{commands.ErrProductUnavailable, http.StatusUnprocessableEntity, "Product is not available"},
	{commands.ErrStudentInactive, http.StatusUnprocessableEntity, "Student account is inactive"},
}

func respondError(c *gin.Context, err error) {
	for _, m := range errorStatus {
		if errors.Is(err, m.target) {
			httperr.AbortWithError(c, m.status, err, m.message, nil)
			return
		}
	}
	httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
}
