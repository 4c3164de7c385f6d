package bootstrap

import (
	"session-booking/cmd/bootstrap/components"

	"go.uber.org/fx"
)

// CoreModule is shared by the API server and the worker.
var CoreModule = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	components.PersistenceModule,
	components.MessagingModule,
	components.UseCaseModule,
)

var Module = fx.Options(
	CoreModule,
	JWTModule,
	components.HandlerModule,
)
