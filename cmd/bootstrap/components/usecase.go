package components

import (
	"school-rewards/internal/pkg/clock"
	"school-rewards/internal/usecase"
	"school-rewards/internal/usecase/commands"
	"school-rewards/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewOrderQueries,
		queries.NewProductQueries,
		queries.NewVoucherQueries,
		queries.NewWeeklyLogQueries,
		queries.NewPeriodQueries,
		queries.NewUserQueries,
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewOrderCommands,
		commands.NewProductCommands,
		commands.NewVoucherCommands,
		commands.NewWeeklyLogCommands,
		commands.NewPeriodCommands,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
