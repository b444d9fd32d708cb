package config

import (
	"theramind-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "theramind"),
			Username: utils.GetEnvString("MONGODB_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MONGODB_PASSWORD", "defaultPassword"),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		SMTP: SMTP{
			Host:        utils.GetEnvString("SMTP_HOST", "localhost"),
			Username:    utils.GetEnvString("SMTP_USERNAME", ""),
			Password:    utils.GetEnvString("SMTP_PASSWORD", ""),
			EmailSender: utils.GetEnvString("SMTP_EMAIL_SENDER", "no-reply@theramind.app"),
			Port:        utils.GetEnvInt("SMTP_PORT", 2525),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "defaultPassword"),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                  utils.GetEnvString("APP_ENV", "development"),
			Port:                 utils.GetEnvString("APP_PORT", ":8080"),
			Version:              utils.GetEnvString("APP_VERSION", "v1"),
			EndpointPrefix:       utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			Timezone:             utils.GetEnvString("APP_TIMEZONE", "UTC"),
			MaxRequests:          utils.GetEnvInt("APP_MAX_REQUEST", 10),
			ShutdownTimeout:      utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
			SessionExpiryInHours: utils.GetEnvInt("APP_SESSION_EXPIRY_IN_HOURS", 24),
		},
		JWT: JWT{
			Secret:        utils.GetEnvString("JWT_SECRET", "anyjwt"),
			ExpTimeInHour: utils.GetEnvInt("JWT_EXP_TIME_IN_HOUR", 24),
		},
		Identity: Identity{
			BaseUrl:      utils.GetEnvString("IDENTITY_BASE_URL", "http://localhost:5556/identity"),
			ClientID:     utils.GetEnvString("IDENTITY_CLIENT_ID", ""),
			ClientSecret: utils.GetEnvString("IDENTITY_CLIENT_SECRET", ""),
		},
		Calendar: Calendar{
			BaseUrl:           utils.GetEnvString("CALENDAR_BASE_URL", "http://localhost:5557/calendar/v1"),
			RequestsPerSecond: utils.GetEnvFloat("CALENDAR_REQUESTS_PER_SECOND", 5),
			Burst:             utils.GetEnvInt("CALENDAR_BURST", 10),
			TimeoutInSeconds:  utils.GetEnvInt("CALENDAR_TIMEOUT_IN_SECONDS", 10),
		},
		Mailer: Mailer{
			Queue: utils.GetEnvString("APP_RABBITMQ_MAILER_QUEUE", "theramind-mailer"),
		},
	}
}
