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

type PeriodHandler struct {
	cmds commands.PeriodCommands
	q    queries.PeriodQueries
}

func NewPeriodHandler(cmds commands.PeriodCommands, q queries.PeriodQueries) *PeriodHandler {
	return &PeriodHandler{cmds: cmds, q: q}
}

// @Summary List certificate periods
// @Tags periods
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.PeriodResponse
// @Router /periods [get]
func (h *PeriodHandler) List(c *gin.Context) {
	views, err := h.q.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPeriodList(views))
}

// @Summary Get active certificate period
// @Tags periods
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.PeriodResponse
// @Failure 404 {object} map[string]string
// @Router /periods/active [get]
func (h *PeriodHandler) Active(c *gin.Context) {
	view, err := h.q.GetActive(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPeriodView(view))
}

// @Summary Get certificate period
// @Tags periods
// @Produce json
// @Security BearerAuth
// @Param id path string true "Period ID"
// @Success 200 {object} resdto.PeriodResponse
// @Failure 404 {object} map[string]string
// @Router /periods/{id} [get]
func (h *PeriodHandler) Get(c *gin.Context) {
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
	c.JSON(http.StatusOK, resdto.FromPeriodView(view))
}

// @Summary Create certificate period
// @Description Periods may not overlap and at most one can be active
// @Tags periods
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreatePeriodRequest true "Period"
// @Success 201 {object} resdto.PeriodResponse
// @Failure 409 {object} map[string]string
// @Router /periods [post]
func (h *PeriodHandler) Create(c *gin.Context) {
	var req reqdto.CreatePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	role, _ := middleware.GetUserRole(c)
	view, err := h.cmds.Create(c.Request.Context(), req.ToInput(), role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromPeriodView(view))
}

// @Summary Update certificate period
// @Tags periods
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Period ID"
// @Param request body reqdto.UpdatePeriodRequest true "Fields to update"
// @Success 200 {object} resdto.PeriodResponse
// @Failure 409 {object} map[string]string
// @Router /periods/{id} [put]
func (h *PeriodHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	var req reqdto.UpdatePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	role, _ := middleware.GetUserRole(c)
	view, err := h.cmds.Update(c.Request.Context(), id, req.ToInput(), role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPeriodView(view))
}

// @Summary Deactivate certificate period
// @Tags periods
// @Security BearerAuth
// @Param id path string true "Period ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /periods/{id} [delete]
func (h *PeriodHandler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	role, _ := middleware.GetUserRole(c)
	if err := h.cmds.Deactivate(c.Request.Context(), id, role); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
