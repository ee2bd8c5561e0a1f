package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"tutorbook/internal/notifications"
	"tutorbook/pkg/config"
	"tutorbook/pkg/kafka"
	kafkaMiddleware "tutorbook/pkg/kafka/middleware"
)

const ServiceName = "notifier"

func main() {
	cfg := config.Load(ServiceName)
	if cfg.Kafka == nil {
		cfg.Log.Fatal("Notifier requires KAFKA_ENABLED=true")
	}

	notifier := notifications.NewNotifier(notifications.NewLogSink(cfg.Log), cfg.Log)
	consumer, err := kafka.NewConsumer(cfg.Kafka, cfg.Log, cfg.KafkaBookingsTopic, cfg.KafkaDLQTopic, notifier.Handle)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka consumer", "error", err)
	}
	consumer.Use(kafkaMiddleware.LoggingConsumerMiddleware(cfg.Log))
	consumer.Use(kafkaMiddleware.MetricsConsumerMiddleware())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg.Log.Info("Starting notifier", "topic", cfg.KafkaBookingsTopic, "group_id", cfg.Kafka.ConsumerGroupID)
	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		cfg.Log.Error("Consumer stopped", "error", err)
	}

	if err := consumer.Close(); err != nil {
		cfg.Log.Error("Failed to close consumer", "error", err)
	}
	cfg.Log.Info("Notifier stopped")
}
