package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvKafkaBrokers       = "KAFKA_BROKERS"
	EnvBookingEventsTopic = "BOOKING_EVENTS_TOPIC"
	EnvNotifierGroupID    = "NOTIFIER_GROUP_ID"

	EnvLockTTL        = "ROOM_LOCK_TTL"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"
)
