package events

import (
	"context"
	"log/slog"

	"session-booking/internal/pkg/config"
	"session-booking/internal/pkg/errs"
	"session-booking/internal/usecase/shared"
)

const (
	BrokerNone  = "none"
	BrokerKafka = "kafka"
	BrokerAMQP  = "amqp"
)

var ErrUnknownBroker = errs.New("unknown events broker")

// NewPublisher picks the relay sink from EVENTS_BROKER.
func NewPublisher(cfg config.EventsConfig) (shared.EventPublisher, error) {
	switch cfg.Broker {
	case "", BrokerNone:
		return NewLogPublisher(), nil
	case BrokerKafka:
		return NewKafkaPublisher(cfg.KafkaBrokers, cfg.TopicPrefix), nil
	case BrokerAMQP:
		return NewAMQPPublisher(cfg.AMQPURL, cfg.TopicPrefix)
	default:
		return nil, errs.Wrapf(ErrUnknownBroker, "broker %q", cfg.Broker)
	}
}

func qualify(prefix, topic string) string {
	if prefix == "" {
		return topic
	}
	return prefix + "." + topic
}

// LogPublisher only logs events. Used when no broker is configured.
type LogPublisher struct{}

func NewLogPublisher() *LogPublisher {
	return &LogPublisher{}
}

func (p *LogPublisher) Publish(ctx context.Context, topic string, key string, payload []byte) error {
	slog.InfoContext(ctx, "Event published", "topic", topic, "key", key, "payload", string(payload))
	return nil
}

func (p *LogPublisher) Close() error { return nil }
