package events

import (
	"context"
	"fmt"

	"tutorbook/pkg/kafka"
	"tutorbook/pkg/middleware"
)

// producer is the subset of *kafka.Producer the publisher needs.
type producer interface {
	Publish(ctx context.Context, msg kafka.Message) error
	Close() error
}

type kafkaPublisher struct {
	producer producer
	source   string
}

// NewKafkaPublisher publishes events through p, tagging each message with
// source.
func NewKafkaPublisher(p *kafka.Producer, source string) Publisher {
	return newKafkaPublisher(p, source)
}

func newKafkaPublisher(p producer, source string) *kafkaPublisher {
	return &kafkaPublisher{producer: p, source: source}
}

func (p *kafkaPublisher) Publish(ctx context.Context, event Event) error {
	msg := kafka.NewMessage().
		WithKey(event.Key).
		WithValue(event).
		WithEventID(event.ID).
		WithEventType(string(event.Type)).
		WithSchemaVersion(SchemaVersion).
		WithSource(p.source).
		WithCorrelationID(middleware.RequestIDFromContext(ctx)).
		Build()

	if err := p.producer.Publish(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish %s event %s: %w", event.Type, event.ID, err)
	}
	return nil
}

func (p *kafkaPublisher) Close() error {
	return p.producer.Close()
}

// Decode extracts the event envelope from a consumed message.
func Decode(msg kafka.Message) (Event, error) {
	var event Event
	if err := msg.DecodeValue(&event); err != nil {
		return Event{}, fmt.Errorf("failed to decode event: %w", err)
	}
	if event.Type == "" {
		event.Type = Type(msg.GetEventType())
	}
	return event, nil
}
