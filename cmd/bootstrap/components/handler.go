package components

import (
	"school-rewards/internal/handler"
	"school-rewards/internal/handler/api"
	"school-rewards/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewOrderHandler,
		api.NewProductHandler,
		api.NewVoucherHandler,
		api.NewWeeklyLogHandler,
		api.NewPeriodHandler,
		api.NewStudentHandler,
		handler.NewHandlers,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
