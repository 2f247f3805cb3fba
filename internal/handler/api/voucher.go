package api

import (
	"context"
	"net/http"

	"school-rewards/internal/domain/user"
	reqdto "school-rewards/internal/handler/dto/request"
	resdto "school-rewards/internal/handler/dto/response"
	"school-rewards/internal/handler/httperr"
	"school-rewards/internal/handler/middleware"
	"school-rewards/internal/usecase/commands"
	"school-rewards/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VoucherHandler struct {
	cmds commands.VoucherCommands
	q    queries.VoucherQueries
}

func NewVoucherHandler(cmds commands.VoucherCommands, q queries.VoucherQueries) *VoucherHandler {
	return &VoucherHandler{cmds: cmds, q: q}
}

// @Summary Issue voucher
// @Description Issues a voucher to a student. Vouchers issued by the student's
// @Description assigned teacher are approved immediately; others await approval.
// @Tags vouchers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.IssueVoucherRequest true "Recipient"
// @Success 201 {object} resdto.VoucherResponse
// @Failure 422 {object} map[string]string
// @Router /vouchers [post]
func (h *VoucherHandler) Issue(c *gin.Context) {
	var req reqdto.IssueVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	issuerID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthorized, "Authentication required", nil)
		return
	}
	role, _ := middleware.GetUserRole(c)

	view, err := h.cmds.Issue(c.Request.Context(), req.StudentID, issuerID, role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromVoucherView(view))
}

// @Summary Approve voucher
// @Tags vouchers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Voucher ID"
// @Success 200 {object} resdto.VoucherResponse
// @Failure 409 {object} map[string]string
// @Router /vouchers/{id}/approve [post]
func (h *VoucherHandler) Approve(c *gin.Context) {
	h.resolve(c, h.cmds.Approve)
}

// @Summary Reject voucher
// @Tags vouchers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Voucher ID"
// @Success 200 {object} resdto.VoucherResponse
// @Failure 409 {object} map[string]string
// @Router /vouchers/{id}/reject [post]
func (h *VoucherHandler) Reject(c *gin.Context) {
	h.resolve(c, h.cmds.Reject)
}

type resolveFn func(ctx context.Context, voucherID, approverID uuid.UUID, approverRole user.Role) (*queries.VoucherView, error)

func (h *VoucherHandler) resolve(c *gin.Context, fn resolveFn) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	approverID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthorized, "Authentication required", nil)
		return
	}
	role, _ := middleware.GetUserRole(c)

	view, err := fn(c.Request.Context(), id, approverID, role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromVoucherView(view))
}

// @Summary Redeem voucher
// @Description Attaches an approved voucher to an order. Redeemed vouchers are final.
// @Tags vouchers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Voucher ID"
// @Param request body reqdto.RedeemVoucherRequest true "Order"
// @Success 200 {object} resdto.VoucherResponse
// @Failure 409 {object} map[string]string
// @Router /vouchers/{id}/redeem [post]
func (h *VoucherHandler) Redeem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	var req reqdto.RedeemVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	view, err := h.cmds.Redeem(c.Request.Context(), id, req.OrderID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromVoucherView(view))
}

// @Summary Delete voucher
// @Description Removes an unredeemed voucher, reversing its balance credit if approved
// @Tags vouchers
// @Security BearerAuth
// @Param id path string true "Voucher ID"
// @Success 204
// @Failure 409 {object} map[string]string
// @Router /vouchers/{id} [delete]
func (h *VoucherHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	role, _ := middleware.GetUserRole(c)
	if err := h.cmds.Delete(c.Request.Context(), id, role); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Get voucher
// @Tags vouchers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Voucher ID"
// @Success 200 {object} resdto.VoucherResponse
// @Failure 404 {object} map[string]string
// @Router /vouchers/{id} [get]
func (h *VoucherHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !canReadStudentData(c, view.StudentID) {
		httperr.AbortWithError(c, http.StatusForbidden, commands.ErrForbidden, "Access denied", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromVoucherView(view))
}

// @Summary List student's vouchers
// @Tags vouchers
// @Produce json
// @Security BearerAuth
// @Param studentId path string true "Student ID"
// @Success 200 {array} resdto.VoucherResponse
// @Router /students/{studentId}/vouchers [get]
func (h *VoucherHandler) ListByStudent(c *gin.Context) {
	studentID, err := uuid.Parse(c.Param("studentId"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid student id", nil)
		return
	}
	if !canReadStudentData(c, studentID) {
		httperr.AbortWithError(c, http.StatusForbidden, commands.ErrForbidden, "Access denied", nil)
		return
	}

	var views []*queries.VoucherView
	if c.Query("unredeemed") == "true" {
		views, err = h.q.ListUnredeemedByStudent(c.Request.Context(), studentID)
	} else {
		views, err = h.q.ListByStudent(c.Request.Context(), studentID)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromVoucherList(views))
}

// @Summary List vouchers issued by the caller
// @Tags vouchers
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.VoucherResponse
// @Router /vouchers/issued [get]
func (h *VoucherHandler) ListIssued(c *gin.Context) {
	issuerID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthorized, "Authentication required", nil)
		return
	}

	views, err := h.q.ListByIssuer(c.Request.Context(), issuerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromVoucherList(views))
}
