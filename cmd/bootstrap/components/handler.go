package components

import (
	"homestay/internal/handler"
	"homestay/internal/handler/api"
	"homestay/internal/handler/middleware"
	"homestay/internal/pkg/jwt"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		fx.Annotate(
			func(svc *jwt.Service) *jwt.Service { return svc },
			fx.As(new(middleware.TokenValidator)),
		),
		api.NewAuthHandler,
		api.NewListingHandler,
		api.NewBookingHandler,
		api.NewUserHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
