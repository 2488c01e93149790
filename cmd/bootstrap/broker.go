package bootstrap

import (
	"context"

	"homestay/internal/infra/broker/kafka"
	"homestay/internal/pkg/config"
	"homestay/internal/usecase/commands"

	"go.uber.org/fx"
)

var BrokerModule = fx.Module("broker",
	fx.Provide(
		NewEventPublisher,
	),
)

func NewEventPublisher(lc fx.Lifecycle, cfg config.Config) (commands.EventPublisher, error) {
	if !cfg.Broker.Enabled {
		return kafka.NewNoopPublisher(), nil
	}

	producer, err := kafka.NewProducer(cfg.Broker)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return producer.Close()
		},
	})

	return producer, nil
}
