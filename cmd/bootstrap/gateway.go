package bootstrap

import (
	"homestay/internal/infra/gateway"
	"homestay/internal/pkg/config"
	"homestay/internal/usecase/commands"
	"homestay/internal/usecase/shared"

	"go.uber.org/fx"
)

var GatewayModule = fx.Module("gateway",
	fx.Provide(
		NewPaymentGateway,
		NewGeocoder,
	),
)

func NewPaymentGateway(cfg config.Config) commands.PaymentGateway {
	return gateway.NewStripeGateway(cfg.Payment)
}

func NewGeocoder(cfg config.Config) (shared.Geocoder, error) {
	return gateway.NewGoogleGeocoder(cfg.Geocode)
}
