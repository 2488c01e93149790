package kafka

import (
	"context"
	"encoding/json"

	"homestay/internal/pkg/config"
	"homestay/internal/pkg/errs"
	"homestay/internal/usecase/commands"

	"github.com/IBM/sarama"
)

// Producer emits booking lifecycle events for downstream consumers
// (notifications, analytics). Delivery is best effort from the caller's
// point of view; the booking itself never depends on it.
type Producer struct {
	sync  sarama.SyncProducer
	topic string
}

func NewProducer(cfg config.BrokerConfig) (*Producer, error) {
	sc := sarama.NewConfig()
	sc.Producer.RequiredAcks = sarama.WaitForAll
	sc.Producer.Idempotent = true
	sc.Producer.Return.Successes = true
	sc.Net.MaxOpenRequests = 1

	sync, err := sarama.NewSyncProducer(cfg.Brokers, sc)
	if err != nil {
		return nil, errs.Wrap(err, "failed to create kafka producer")
	}
	return &Producer{sync: sync, topic: cfg.Topic}, nil
}

func (p *Producer) PublishBookingCreated(ctx context.Context, event commands.BookingCreatedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return errs.Wrap(err, "failed to marshal booking event")
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		// Keyed by listing so events for one listing stay ordered.
		Key:   sarama.StringEncoder(event.ListingID.String()),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte("booking.created")},
		},
	}
	if _, _, err := p.sync.SendMessage(msg); err != nil {
		return errs.Wrap(err, "failed to publish booking event")
	}
	return nil
}

func (p *Producer) Close() error {
	if p.sync == nil {
		return nil
	}
	return p.sync.Close()
}

// NoopPublisher stands in when no broker is configured.
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{}
}

func (NoopPublisher) PublishBookingCreated(context.Context, commands.BookingCreatedEvent) error {
	return nil
}
