package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
)

// EventPublisher publishes portal events to the broker.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// KafkaEventPublisher publishes events to a Kafka topic via Watermill.
type KafkaEventPublisher struct {
	publisher message.Publisher
	topic     string
	logger    *slog.Logger
}

// NewKafkaEventPublisher connects a Watermill Kafka publisher to the
// given brokers.
func NewKafkaEventPublisher(brokers []string, topic string, logger *slog.Logger) (*KafkaEventPublisher, error) {
	publisher, err := kafka.NewPublisher(
		kafka.PublisherConfig{
			Brokers:   brokers,
			Marshaler: kafka.DefaultMarshaler{},
		},
		watermill.NewSlogLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka publisher: %w", err)
	}

	return &KafkaEventPublisher{
		publisher: publisher,
		topic:     topic,
		logger:    logger,
	}, nil
}

// Publish marshals the event envelope and sends it to the topic.
func (p *KafkaEventPublisher) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(event.ID, payload)
	msg.SetContext(ctx)
	msg.Metadata.Set("event_type", event.Type)

	if err := p.publisher.Publish(p.topic, msg); err != nil {
		return fmt.Errorf("failed to publish event %s: %w", event.Type, err)
	}

	p.logger.Debug("event published",
		"event_id", event.ID,
		"event_type", event.Type,
		"topic", p.topic)

	return nil
}

// Close shuts down the underlying publisher.
func (p *KafkaEventPublisher) Close() error {
	return p.publisher.Close()
}
