package components

import (
	"time"

	"booking-platform/internal/domain/reservation"
	"booking-platform/internal/pkg/clock"
	"booking-platform/internal/pkg/config"
	"booking-platform/internal/usecase"
	"booking-platform/internal/usecase/commands"
	"booking-platform/internal/usecase/queries"

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
	fx.Annotate(
		reservation.NewProratedPriceCalculator,
		fx.As(new(reservation.PriceCalculator)),
	),
	reservation.NewFactory,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewBusinessCommands,
		commands.NewServiceCommands,
		commands.NewReservationCommands,
		commands.NewNotificationCommands,
		commands.NewMaintenanceCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		newBusinessQueries,
		queries.NewServiceQueries,
		queries.NewReservationQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

func newBusinessQueries(
	businesses queries.BusinessReadStore,
	services queries.ServiceReadStore,
	booked queries.BookedIntervalStore,
	clk clock.Clock,
	cfg config.BookingConfig,
) queries.BusinessQueries {
	return queries.NewBusinessQueries(businesses, services, booked, clk, time.Duration(cfg.SlotStepMinutes)*time.Minute)
}
