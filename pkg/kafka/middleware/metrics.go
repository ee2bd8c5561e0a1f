package kafka_middleware

import (
	"context"
	"time"

	"tutorbook/pkg/kafka"
	"tutorbook/pkg/metrics"
)

// MetricsProducerMiddleware records publish outcomes and latency.
func MetricsProducerMiddleware() kafka.ProducerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next func(ctx context.Context, msg kafka.Message) error) error {
		start := time.Now()
		err := next(ctx, msg)
		metrics.RecordKafkaMessage("publish", msg.Topic, time.Since(start), err)
		return err
	}
}

// MetricsConsumerMiddleware records handler outcomes and latency.
func MetricsConsumerMiddleware() kafka.ConsumerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next kafka.MessageHandler) error {
		start := time.Now()
		err := next(ctx, msg)
		metrics.RecordKafkaMessage("consume", msg.Topic, time.Since(start), err)
		return err
	}
}
