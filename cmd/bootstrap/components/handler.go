package components

import (
	"booking-platform/internal/handler"
	"booking-platform/internal/handler/api"
	"booking-platform/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewBusinessHandler,
		api.NewServiceHandler,
		api.NewReservationHandler,
		middleware.NewAuthMiddleware,
		func(auth *api.AuthHandler, b *api.BusinessHandler, s *api.ServiceHandler, r *api.ReservationHandler) handler.Handlers {
			return handler.Handlers{Auth: auth, Business: b, Service: s, Reservation: r}
		},
	),
	fx.Invoke(handler.NewRouter),
)
