package events

import (
	"context"
	"time"

	"session-booking/internal/pkg/errs"

	"github.com/segmentio/kafka-go"
)

type KafkaPublisher struct {
	writer *kafka.Writer
	prefix string
}

func NewKafkaPublisher(brokers []string, prefix string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Balancer:               &kafka.Hash{},
			// the relay writes one event at a time inside its claim transaction, so flush immediately
			BatchSize:              1,
			BatchTimeout:           time.Millisecond,
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
		},
		prefix: prefix,
	}
}

// Publish keys messages by aggregate so events of one reservation stay ordered within a partition.
func (p *KafkaPublisher) Publish(ctx context.Context, topic string, key string, payload []byte) error {
	err := p.writer.WriteMessages(ctx, kafka.Message{
		Topic: qualify(p.prefix, topic),
		Key:   []byte(key),
		Value: payload,
		Time:  time.Now(),
	})
	if err != nil {
		return errs.Wrapf(err, "kafka write %s", topic)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
