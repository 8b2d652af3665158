package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	ServicePort      string
	MetricsPort      string
	Environment      string
	PostgreSQLConfig PostgreSQLConfig
	AuthConfig       AuthConfig
	KafkaConfig      KafkaConfig
	TracingConfig    TracingConfig
	SMTPConfig       SMTPConfig
	SchedulerConfig  SchedulerConfig
}

type PostgreSQLConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUsername string
	DBPassword string
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// KafkaConfig with an empty BrokerAddress disables event publishing.
type KafkaConfig struct {
	BrokerAddress string
	BrokerTopic   string
}

type TracingConfig struct {
	CollectorHost string
}

// SMTPConfig with an empty Host disables e-mail notifications.
type SMTPConfig struct {
	Host     string
	Port     int
	Sender   string
	Password string
	// QueueSize bounds the messages waiting for delivery.
	QueueSize int
}

type SchedulerConfig struct {
	TokenPurgeInterval time.Duration
}

func CreateNewConfig() *Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Info().Str("component", "CreateNewConfig").Msg(".env file not found, using process environment")
	}

	conf := Config{
		ServicePort: getEnv("SERVICE_PORT", "8000"),
		MetricsPort: getEnv("METRICS_PORT", "8081"),
		Environment: getEnv("ENVIRONMENT", "development"),
		PostgreSQLConfig: PostgreSQLConfig{
			DBHost:     os.Getenv("DB_HOST"),
			DBPort:     getEnv("DB_PORT", "5432"),
			DBName:     os.Getenv("DB_NAME"),
			DBUsername: os.Getenv("DB_USERNAME"),
			DBPassword: os.Getenv("DB_PASSWORD"),
		},
		AuthConfig: AuthConfig{
			JWTSecret: os.Getenv("JWT_SECRET"),
			TokenTTL:  time.Duration(getEnvInt("TOKEN_TTL_HOURS", 24)) * time.Hour,
		},
		KafkaConfig: KafkaConfig{
			BrokerAddress: os.Getenv("BROKER_ADDRESS"),
			BrokerTopic:   getEnv("BROKER_TOPIC", "marketplace-events"),
		},
		TracingConfig: TracingConfig{
			CollectorHost: os.Getenv("COLLECTOR_HOST"),
		},
		SMTPConfig: SMTPConfig{
			Host:      os.Getenv("SMTP_HOST"),
			Port:      getEnvInt("SMTP_PORT", 587),
			Sender:    os.Getenv("SMTP_SENDER"),
			Password:  os.Getenv("SMTP_PASSWORD"),
			QueueSize: getEnvInt("SMTP_QUEUE_SIZE", 100),
		},
		SchedulerConfig: SchedulerConfig{
			TokenPurgeInterval: time.Duration(getEnvInt("TOKEN_PURGE_INTERVAL_MINUTES", 60)) * time.Minute,
		},
	}

	return &conf
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Warn().Err(err).Str("component", "CreateNewConfig").Str("key", key).Msg("invalid integer, using default")
		return fallback
	}

	return parsed
}
