package api

import (
	"net/http"

	reqdto "school-rewards/internal/handler/dto/request"
	resdto "school-rewards/internal/handler/dto/response"
	"school-rewards/internal/handler/httperr"
	"school-rewards/internal/handler/middleware"
	"school-rewards/internal/usecase/commands"
	"school-rewards/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type WeeklyLogHandler struct {
	cmds commands.WeeklyLogCommands
	q    queries.WeeklyLogQueries
}

func NewWeeklyLogHandler(cmds commands.WeeklyLogCommands, q queries.WeeklyLogQueries) *WeeklyLogHandler {
	return &WeeklyLogHandler{cmds: cmds, q: q}
}

// @Summary Record weekly points
// @Description Creates a points log for one calendar week, optionally granting
// @Description the week's voucher in the same transaction
// @Tags weekly-logs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateWeeklyLogRequest true "Week entry"
// @Success 201 {object} resdto.WeeklyLogResponse
// @Failure 409 {object} map[string]string
// @Router /weekly-logs [post]
func (h *WeeklyLogHandler) Create(c *gin.Context) {
	var req reqdto.CreateWeeklyLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	actorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthorized, "Authentication required", nil)
		return
	}
	role, _ := middleware.GetUserRole(c)

	view, err := h.cmds.CreateLog(c.Request.Context(), req.StudentID, req.Points, req.WeekStart, req.HasVoucher, actorID, role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromWeeklyLogView(view))
}

// @Summary Update weekly log
// @Tags weekly-logs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Log ID"
// @Param request body reqdto.UpdateWeeklyLogRequest true "Fields to update"
// @Success 200 {object} resdto.WeeklyLogResponse
// @Failure 404 {object} map[string]string
// @Router /weekly-logs/{id} [put]
func (h *WeeklyLogHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	var req reqdto.UpdateWeeklyLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	actorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthorized, "Authentication required", nil)
		return
	}
	role, _ := middleware.GetUserRole(c)

	view, err := h.cmds.UpdateLog(c.Request.Context(), id, req.ToInput(), actorID, role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromWeeklyLogView(view))
}

// @Summary Delete weekly log
// @Description Removes a week's log, reversing its points and voucher grant
// @Tags weekly-logs
// @Security BearerAuth
// @Param id path string true "Log ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /weekly-logs/{id} [delete]
func (h *WeeklyLogHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	role, _ := middleware.GetUserRole(c)
	if err := h.cmds.DeleteLog(c.Request.Context(), id, role); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Get weekly log
// @Tags weekly-logs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Log ID"
// @Success 200 {object} resdto.WeeklyLogResponse
// @Failure 404 {object} map[string]string
// @Router /weekly-logs/{id} [get]
func (h *WeeklyLogHandler) Get(c *gin.Context) {
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
	c.JSON(http.StatusOK, resdto.FromWeeklyLogView(view))
}

// @Summary List student's weekly logs
// @Tags weekly-logs
// @Produce json
// @Security BearerAuth
// @Param studentId path string true "Student ID"
// @Success 200 {array} resdto.WeeklyLogResponse
// @Router /students/{studentId}/weekly-logs [get]
func (h *WeeklyLogHandler) ListByStudent(c *gin.Context) {
	studentID, err := uuid.Parse(c.Param("studentId"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid student id", nil)
		return
	}
	if !canReadStudentData(c, studentID) {
		httperr.AbortWithError(c, http.StatusForbidden, commands.ErrForbidden, "Access denied", nil)
		return
	}

	views, err := h.q.ListByStudent(c.Request.Context(), studentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromWeeklyLogList(views))
}

// @Summary Get student's current week log
// @Tags weekly-logs
// @Produce json
// @Security BearerAuth
// @Param studentId path string true "Student ID"
// @Success 200 {object} resdto.WeeklyLogResponse
// @Failure 404 {object} map[string]string
// @Router /students/{studentId}/weekly-logs/current [get]
func (h *WeeklyLogHandler) CurrentWeek(c *gin.Context) {
	studentID, err := uuid.Parse(c.Param("studentId"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid student id", nil)
		return
	}
	if !canReadStudentData(c, studentID) {
		httperr.AbortWithError(c, http.StatusForbidden, commands.ErrForbidden, "Access denied", nil)
		return
	}

	view, err := h.q.CurrentWeekForStudent(c.Request.Context(), studentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromWeeklyLogView(view))
}
