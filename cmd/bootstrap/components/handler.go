package components

import (
	"session-booking/internal/handler"
	"session-booking/internal/handler/api"
	"session-booking/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	ValidatorsModule,
	fx.Provide(
		api.NewReservationHandler,
		api.NewAvailabilityHandler,
		api.NewAdminHandler,
		middleware.NewAuthMiddleware,
		func(r *api.ReservationHandler, a *api.AvailabilityHandler, adm *api.AdminHandler) handler.Handlers {
			return handler.Handlers{Reservation: r, Availability: a, Admin: adm}
		},
	),
	fx.Invoke(handler.NewRouter),
)
