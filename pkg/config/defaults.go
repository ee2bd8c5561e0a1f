package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "tutorbook"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort      = "8080"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
	DefaultEnvFile   = ".env"

	DefaultRateLimitRequests = 60
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultTokenTTL   = 7 * 24 * time.Hour
	DefaultBcryptCost = 10
	MinBcryptCost     = 4
	MaxBcryptCost     = 31
	MinJWTSecretLen   = 16

	DefaultAdminEmail = "admin@example.com"
	DefaultAdminName  = "Administrator"

	DefaultTimeZone     = "UTC"
	DefaultSeedTeachers = true

	DefaultCORSAllowedOrigins = "*"
	DefaultTrustedProxies     = ""

	DefaultKafkaEnabled       = false
	DefaultKafkaBookingsTopic = "tutorbook.bookings"
	DefaultKafkaDLQTopic      = "tutorbook.bookings.dlq"
)
