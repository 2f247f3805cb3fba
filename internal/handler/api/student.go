package api

import (
	"net/http"

	resdto "school-rewards/internal/handler/dto/response"
	"school-rewards/internal/handler/httperr"
	"school-rewards/internal/usecase/commands"
	"school-rewards/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type StudentHandler struct {
	q queries.UserQueries
}

func NewStudentHandler(q queries.UserQueries) *StudentHandler {
	return &StudentHandler{q: q}
}

// @Summary Get student profile
// @Description Voucher balance, weekly points and purchase counters for a student
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param studentId path string true "Student ID"
// @Success 200 {object} resdto.StudentProfileResponse
// @Failure 404 {object} map[string]string
// @Router /students/{studentId} [get]
func (h *StudentHandler) Profile(c *gin.Context) {
	studentID, err := uuid.Parse(c.Param("studentId"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid student id", nil)
		return
	}
	if !canReadStudentData(c, studentID) {
		httperr.AbortWithError(c, http.StatusForbidden, commands.ErrForbidden, "Access denied", nil)
		return
	}

	view, err := h.q.StudentProfile(c.Request.Context(), studentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromStudentProfileView(view))
}
