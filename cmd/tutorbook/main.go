package main

import (
	"context"
	"io"

	accountHandler "tutorbook/internal/accounts/handler"
	accountRepository "tutorbook/internal/accounts/repository"
	accountService "tutorbook/internal/accounts/service"
	accountValidator "tutorbook/internal/accounts/validator"
	authHandler "tutorbook/internal/auth/handler"
	"tutorbook/internal/auth/password"
	authService "tutorbook/internal/auth/service"
	"tutorbook/internal/auth/token"
	bookingHandler "tutorbook/internal/bookings/handler"
	bookingRepository "tutorbook/internal/bookings/repository"
	bookingService "tutorbook/internal/bookings/service"
	bookingValidator "tutorbook/internal/bookings/validator"
	catalogHandler "tutorbook/internal/catalog/handler"
	catalogService "tutorbook/internal/catalog/service"
	"tutorbook/internal/events"
	mongoMigration "tutorbook/internal/migrations/mongo"
	profileHandler "tutorbook/internal/profiles/handler"
	profileService "tutorbook/internal/profiles/service"
	"tutorbook/internal/seed"
	"tutorbook/pkg/app"
	"tutorbook/pkg/config"
	"tutorbook/pkg/contracts"
	"tutorbook/pkg/kafka"
	kafkaMiddleware "tutorbook/pkg/kafka/middleware"
)

const ServiceName = "tutorbook"

func main() {
	cfg := config.Load(ServiceName)
	if err := cfg.ValidateAuth(); err != nil {
		cfg.Log.Fatal("Invalid auth configuration", "error", err)
	}
	cfg.SetMongo()
	ensureSchema(cfg)

	cfg.Log.Info("Starting TutorBook service")

	publisher := initPublisher(cfg)
	handlers := initHandlers(cfg, publisher)

	serverApp := app.NewApplication()
	serverApp.SetApp(cfg, []io.Closer{publisher}, handlers...)
	serverApp.Run()
}

// ensureSchema applies the collection validators and indexes so slot and
// email uniqueness hold even when the migrate job has not run.
func ensureSchema(cfg *config.Config) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.MongoConnTimeout)
	defer cancel()

	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	if err := mongoMigration.RunMigration(ctx, db, cfg.Log); err != nil {
		cfg.Log.Fatal("Failed to ensure database schema", "error", err)
	}
}

func initPublisher(cfg *config.Config) events.Publisher {
	if !cfg.KafkaEnabled {
		cfg.Log.Info("Kafka disabled, domain events will not be published")
		return events.NewNoopPublisher()
	}

	producer, err := kafka.NewProducer(cfg.Kafka, cfg.Log, cfg.KafkaBookingsTopic, cfg.KafkaDLQTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	producer.Use(kafkaMiddleware.LoggingProducerMiddleware(cfg.Log))
	producer.Use(kafkaMiddleware.MetricsProducerMiddleware())

	cfg.Log.Info("Kafka publisher initialized", "topic", cfg.KafkaBookingsTopic)
	return events.NewKafkaPublisher(producer, ServiceName)
}

func initHandlers(cfg *config.Config, publisher events.Publisher) []contracts.Handler {
	tokens, err := token.NewManager(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		cfg.Log.Fatal("Failed to create token manager", "error", err)
	}
	hasher := password.NewHasher(cfg.BcryptCost)

	students := accountRepository.NewMongoStudentRepository(cfg)
	teachers := accountRepository.NewMongoTeacherRepository(cfg)
	admins := accountRepository.NewMongoAdminRepository(cfg)
	bookings := bookingRepository.NewMongoBookingRepository(cfg)

	accounts := accountService.NewAccountService(students, teachers, admins, accountValidator.NewAccountValidator(), cfg)
	catalog := catalogService.NewCatalogService(accounts, bookings, cfg)
	auth := authService.NewAuthService(accounts, tokens, hasher, publisher, cfg)
	ledger := bookingService.NewBookingService(
		bookings,
		catalog,
		accounts,
		publisher,
		bookingValidator.NewBookingValidator(cfg.Log),
		cfg,
	)
	profiles := profileService.NewProfileService(accounts, bookings, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.MongoConnTimeout)
	defer cancel()
	if err := seed.NewSeeder(teachers, accounts, hasher, cfg).Run(ctx); err != nil {
		cfg.Log.Fatal("Failed to seed data", "error", err)
	}

	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName)

	return []contracts.Handler{
		catalogHandler.NewTeacherHandler(catalog, cfg.Log),
		accountHandler.NewStudentHandler(accounts, cfg.Log),
		authHandler.NewAuthHandler(auth, cfg.Log),
		bookingHandler.NewBookingHandler(ledger, auth, cfg.Log),
		profileHandler.NewProfileHandler(profiles, auth, cfg.Log),
	}
}
