package config

import (
	"medilink-service/internal/pkg/utils"

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
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "medilink"),
			Username: utils.GetEnvString("MONGODB_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MONGODB_PASSWORD", "defaultPassword"),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "defaultPassword"),
		},
		Minio: Minio{
			Port:       utils.GetEnvString("MINIO_PORT", "9000"),
			Host:       utils.GetEnvString("MINIO_HOST", "localhost"),
			Username:   utils.GetEnvString("MINIO_USERNAME", "defaultUsername"),
			Password:   utils.GetEnvString("MINIO_PASSWORD", "defaultPassword"),
			BucketName: utils.GetEnvString("MINIO_BUCKET_NAME", "invoices"),
			UseSSL:     utils.GetEnvBool("MINIO_USE_SSL", false),
		},
		SMTP: SMTP{
			Host:        utils.GetEnvString("SMTP_HOST", "localhost"),
			Port:        utils.GetEnvInt("SMTP_PORT", 2525),
			Username:    utils.GetEnvString("SMTP_USERNAME", ""),
			Password:    utils.GetEnvString("SMTP_PASSWORD", ""),
			EmailSender: utils.GetEnvString("SMTP_EMAIL_SENDER", "no-reply@medilink.local"),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                        utils.GetEnvString("APP_ENV", "development"),
			Port:                       utils.GetEnvString("APP_PORT", ":8080"),
			Address:                    utils.GetEnvString("APP_ADDRESS", "localhost"),
			Timezone:                   utils.GetEnvString("APP_TIMEZONE", "Asia/Kolkata"),
			EndpointPrefix:             utils.GetEnvString("APP_ENDPOINT_PREFIX", "/api/v1"),
			MaxRequests:                utils.GetEnvInt("APP_MAX_REQUEST", 100),
			MaxTimeRequestsPerSeconds:  utils.GetEnvInt("APP_MAX_TIME_REQUESTS_PER_SECONDS", 60),
			ShutdownTimeout:            utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
			RequestBodyLimitInMegabyte: utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 2),
			Currency:                   utils.GetEnvString("APP_CURRENCY", "INR"),
		},
		JWT: JWT{
			Secret:        utils.GetEnvString("JWT_SECRET", "anyjwt"),
			ExpTimeInHour: utils.GetEnvInt("JWT_EXP_TIME_IN_HOUR", 24),
		},
		Razorpay: Razorpay{
			KeyID:     utils.GetEnvString("RAZORPAY_KEY_ID", ""),
			KeySecret: utils.GetEnvString("RAZORPAY_KEY_SECRET", ""),
		},
		Google: Google{
			ClientID: utils.GetEnvString("GOOGLE_OAUTH_CLIENT_ID", ""),
		},
		Calendar: Calendar{
			ClientID:     utils.GetEnvString("GOOGLE_CALENDAR_CLIENT_ID", ""),
			ClientSecret: utils.GetEnvString("GOOGLE_CALENDAR_CLIENT_SECRET", ""),
			RefreshToken: utils.GetEnvString("GOOGLE_CALENDAR_REFRESH_TOKEN", ""),
			CalendarID:   utils.GetEnvString("GOOGLE_CALENDAR_ID", "primary"),
		},
		Worker: Worker{
			FanOutMaxRetries:        utils.GetEnvInt("WORKER_FANOUT_MAX_RETRIES", 3),
			MailerSendsPerMinute:    utils.GetEnvInt("WORKER_MAILER_SENDS_PER_MINUTE", 30),
			ReconcileCronSpec:       utils.GetEnvString("WORKER_RECONCILE_CRON_SPEC", "*/10 * * * *"),
			LeaderLockTTLInSeconds:  utils.GetEnvInt("WORKER_LEADER_LOCK_TTL_IN_SECONDS", 60),
			InvoiceUrlExpiryInHours: utils.GetEnvInt("WORKER_INVOICE_URL_EXPIRY_IN_HOURS", 72),
		},
	}
}
