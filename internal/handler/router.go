package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"school-rewards/internal/domain/user"
	"school-rewards/internal/handler/api"
	"school-rewards/internal/handler/middleware"
	"school-rewards/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Auth      *api.AuthHandler
	Order     *api.OrderHandler
	Product   *api.ProductHandler
	Voucher   *api.VoucherHandler
	WeeklyLog *api.WeeklyLogHandler
	Period    *api.PeriodHandler
	Student   *api.StudentHandler
}

func NewHandlers(
	auth *api.AuthHandler,
	order *api.OrderHandler,
	product *api.ProductHandler,
	voucher *api.VoucherHandler,
	weeklyLog *api.WeeklyLogHandler,
	period *api.PeriodHandler,
	student *api.StudentHandler,
) Handlers {
	return Handlers{
		Auth:      auth,
		Order:     order,
		Product:   product,
		Voucher:   voucher,
		WeeklyLog: weeklyLog,
		Period:    period,
		Student:   student,
	}
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, h, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	staffOnly := authMiddleware.RequireRoleAtLeast(user.RoleTeacher)
	adminOnly := authMiddleware.RequireRoleAtLeast(user.RoleAdmin)

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: h.Auth.Login},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: h.Auth.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: h.Auth.Me},
			})
		}

		orders := apiGroup.Group("/orders")
		orders.Use(authMiddleware.RequireAuth())
		{
			addRoutes(orders, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Order.Create},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Order.Get},
				{Method: http.MethodGet, Path: "", Handler: h.Order.List, Mw: []gin.HandlerFunc{staffOnly}},
				{Method: http.MethodPut, Path: "/:id/status", Handler: h.Order.UpdateStatus, Mw: []gin.HandlerFunc{staffOnly}},
			})
		}

		products := apiGroup.Group("/products")
		products.Use(authMiddleware.RequireAuth())
		{
			addRoutes(products, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Product.List},
				{Method: http.MethodGet, Path: "/available", Handler: h.Product.ListAvailable},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Product.Get},
				{Method: http.MethodPost, Path: "", Handler: h.Product.Create, Mw: []gin.HandlerFunc{adminOnly}},
				{Method: http.MethodPut, Path: "/:id", Handler: h.Product.Update, Mw: []gin.HandlerFunc{adminOnly}},
				{Method: http.MethodPut, Path: "/:id/stock", Handler: h.Product.AdjustStock, Mw: []gin.HandlerFunc{adminOnly}},
			})
		}

		vouchers := apiGroup.Group("/vouchers")
		vouchers.Use(authMiddleware.RequireAuth())
		{
			addRoutes(vouchers, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Voucher.Issue, Mw: []gin.HandlerFunc{staffOnly}},
				{Method: http.MethodGet, Path: "/issued", Handler: h.Voucher.ListIssued, Mw: []gin.HandlerFunc{staffOnly}},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Voucher.Get},
				{Method: http.MethodPost, Path: "/:id/approve", Handler: h.Voucher.Approve, Mw: []gin.HandlerFunc{staffOnly}},
				{Method: http.MethodPost, Path: "/:id/reject", Handler: h.Voucher.Reject, Mw: []gin.HandlerFunc{staffOnly}},
				{Method: http.MethodPost, Path: "/:id/redeem", Handler: h.Voucher.Redeem, Mw: []gin.HandlerFunc{staffOnly}},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Voucher.Delete, Mw: []gin.HandlerFunc{staffOnly}},
			})
		}

		weeklyLogs := apiGroup.Group("/weekly-logs")
		weeklyLogs.Use(authMiddleware.RequireAuth())
		{
			addRoutes(weeklyLogs, []route{
				{Method: http.MethodPost, Path: "", Handler: h.WeeklyLog.Create, Mw: []gin.HandlerFunc{staffOnly}},
				{Method: http.MethodGet, Path: "/:id", Handler: h.WeeklyLog.Get},
				{Method: http.MethodPut, Path: "/:id", Handler: h.WeeklyLog.Update, Mw: []gin.HandlerFunc{staffOnly}},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.WeeklyLog.Delete, Mw: []gin.HandlerFunc{staffOnly}},
			})
		}

		periods := apiGroup.Group("/periods")
		periods.Use(authMiddleware.RequireAuth())
		{
			addRoutes(periods, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Period.List},
				{Method: http.MethodGet, Path: "/active", Handler: h.Period.Active},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Period.Get},
				{Method: http.MethodPost, Path: "", Handler: h.Period.Create, Mw: []gin.HandlerFunc{adminOnly}},
				{Method: http.MethodPut, Path: "/:id", Handler: h.Period.Update, Mw: []gin.HandlerFunc{adminOnly}},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Period.Deactivate, Mw: []gin.HandlerFunc{adminOnly}},
			})
		}

		students := apiGroup.Group("/students")
		students.Use(authMiddleware.RequireAuth())
		{
			addRoutes(students, []route{
				{Method: http.MethodGet, Path: "/:studentId", Handler: h.Student.Profile},
				{Method: http.MethodGet, Path: "/:studentId/orders", Handler: h.Order.ListByStudent},
				{Method: http.MethodGet, Path: "/:studentId/vouchers", Handler: h.Voucher.ListByStudent},
				{Method: http.MethodGet, Path: "/:studentId/weekly-logs", Handler: h.WeeklyLog.ListByStudent},
				{Method: http.MethodGet, Path: "/:studentId/weekly-logs/current", Handler: h.WeeklyLog.CurrentWeek},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
