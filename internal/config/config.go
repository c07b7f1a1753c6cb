package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds every setting the server needs. It is built once at startup
// and handed to the database, services, middleware and router.
type Config struct {
	Port     string
	BasePath string
	LogLevel string
	GinMode  string

	Database DatabaseConfig
	Auth     AuthConfig
	Paging   PagingConfig

	SentryDSN         string
	SentryEnvironment string

	RabbitMQ RabbitMQConfig

	// Requests per second and burst for login/register
	AuthRateLimit float64
	AuthRateBurst int
}

// DatabaseConfig selects the driver and connection parameters
type DatabaseConfig struct {
	Driver   string // "postgres" or "sqlite"
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	// Path is the sqlite file (or ":memory:")
	Path string
}

// AuthConfig holds session token settings
type AuthConfig struct {
	JWTSecret     string
	TokenTTL      time.Duration
	Issuer        string
	AdminUsername string
	AdminPassword string
	AdminEmail    string
}

// PagingConfig bounds list endpoints
type PagingConfig struct {
	DefaultSize int
	MaxSize     int
}

// RabbitMQConfig configures the domain event publisher. Publishing is
// disabled when Host is empty.
type RabbitMQConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Exchange string
}

// Load reads .env (if present) and the environment
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found, using environment variables")
	}

	jwtSecret := getEnv("JWT_SECRET", "")
	if jwtSecret == "" {
		jwtSecret = "default-secret-key-change-in-production"
		logrus.Warn("JWT_SECRET not set, using insecure default")
	}

	return &Config{
		Port:     getEnv("PORT", "8080"),
		BasePath: getEnv("BASE_PATH", "/"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		GinMode:  getEnv("GIN_MODE", "release"),
		Database: DatabaseConfig{
			Driver:   getEnv("DB_DRIVER", "postgres"),
			Host:     getEnv("DB_HOST", ""),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", ""),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "forum"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			Path:     getEnv("DB_PATH", "forum.db"),
		},
		Auth: AuthConfig{
			JWTSecret:     jwtSecret,
			TokenTTL:      getEnvAsDuration("TOKEN_TTL", 30*24*time.Hour),
			Issuer:        getEnv("TOKEN_ISSUER", "forum"),
			AdminUsername: getEnv("ADMIN_USERNAME", ""),
			AdminPassword: getEnv("ADMIN_PASSWORD", ""),
			AdminEmail:    getEnv("ADMIN_EMAIL", ""),
		},
		Paging: PagingConfig{
			DefaultSize: getEnvAsInt("PAGE_SIZE_DEFAULT", 5),
			MaxSize:     getEnvAsInt("PAGE_SIZE_MAX", 15),
		},
		SentryDSN:         getEnv("SENTRY_DSN", ""),
		SentryEnvironment: getEnv("SENTRY_ENVIRONMENT", "development"),
		RabbitMQ: RabbitMQConfig{
			Host:     getEnv("RABBITMQ_HOST", ""),
			Port:     getEnv("RABBITMQ_PORT", "5672"),
			User:     getEnv("RABBITMQ_USER", "guest"),
			Password: getEnv("RABBITMQ_PASS", "guest"),
			Exchange: getEnv("RABBITMQ_EXCHANGE", "forum.events"),
		},
		AuthRateLimit: getEnvAsFloat("AUTH_RATE_LIMIT", 5),
		AuthRateBurst: getEnvAsInt("AUTH_RATE_BURST", 10),
	}
}

// getEnv gets environment variable with fallback default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return v
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if v, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil {
		return v
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if v, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return v
	}
	return defaultValue
}
