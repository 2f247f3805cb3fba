package api

import (
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

type OrderHandler struct {
	cmds commands.OrderCommands
	q    queries.OrderQueries
}

func NewOrderHandler(cmds commands.OrderCommands, q queries.OrderQueries) *OrderHandler {
	return &OrderHandler{cmds: cmds, q: q}
}

// @Summary Create order
// @Description Spend vouchers on products; the cart settles atomically
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateOrderRequest true "Cart"
// @Success 201 {object} resdto.OrderResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthorized, "Unauthorized", nil)
		return
	}
	role, _ := middleware.GetUserRole(c)
	if role != user.RoleStudent {
		httperr.AbortWithError(c, http.StatusForbidden, commands.ErrForbidden, "Only students can place orders", nil)
		return
	}

	var req reqdto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	view, err := h.cmds.CreateOrder(c.Request.Context(), actorID, req.ToCart())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromOrderView(view))
}

// @Summary Get order
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} resdto.OrderResponse
// @Failure 404 {object} map[string]string
// @Router /orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
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
	c.JSON(http.StatusOK, resdto.FromOrderView(view))
}

// @Summary List orders
// @Description List all orders, optionally filtered by status
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param status query string false "Order status filter"
// @Success 200 {array} resdto.OrderResponse
// @Router /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	var (
		views []*queries.OrderView
		err   error
	)
	if status := c.Query("status"); status != "" {
		views, err = h.q.ListByStatus(c.Request.Context(), status)
	} else {
		views, err = h.q.ListAll(c.Request.Context())
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromOrderList(views))
}

// @Summary List student orders
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param studentId path string true "Student ID"
// @Success 200 {array} resdto.OrderResponse
// @Router /orders/student/{studentId} [get]
func (h *OrderHandler) ListByStudent(c *gin.Context) {
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
	c.JSON(http.StatusOK, resdto.FromOrderList(views))
}

// @Summary Update order status
// @Description Move an order forward through its lifecycle
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body reqdto.UpdateOrderStatusRequest true "New status"
// @Success 200 {object} resdto.OrderResponse
// @Failure 409 {object} map[string]string
// @Router /orders/{id}/status [put]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	var req reqdto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	role, _ := middleware.GetUserRole(c)
	view, err := h.cmds.UpdateStatus(c.Request.Context(), id, req.Status, role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromOrderView(view))
}

// canReadStudentData allows staff to read any student's data; students only
// their own.
func canReadStudentData(c *gin.Context, studentID uuid.UUID) bool {
	role, _ := middleware.GetUserRole(c)
	if role == user.RoleTeacher || role == user.RoleAdmin {
		return true
	}
	actorID, ok := middleware.GetUserID(c)
	return ok && actorID == studentID
}
