package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the whole application configuration, populated from
// environment variables.
type Config struct {
	App      AppConfig
	Postgres PostgresConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	Audit    AuditConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
}

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int32
	MinConns int32

	MaxRetries     int
	RetryDelay     time.Duration
	ConnectTimeout time.Duration
}

type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type AuditConfig struct {
	Disabled bool
}

// Load reads config from environment variables, falling back to defaults
// suitable for local development.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Bookshelf API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", getEnv("PORT", "8080")),
		},
		Postgres: PostgresConfig{
			Host:           getEnv("DB_HOST", "localhost"),
			Port:           getEnvInt("DB_PORT", 5432),
			User:           getEnv("DB_USER", "postgres"),
			Password:       getEnv("DB_PASSWORD", ""),
			Database:       getEnv("DB_NAME", "books"),
			SSLMode:        getEnv("DB_SSLMODE", "disable"),
			MaxConns:       int32(getEnvInt("DB_MAX_CONNS", 25)),
			MinConns:       int32(getEnvInt("DB_MIN_CONNS", 5)),
			MaxRetries:     getEnvInt("DB_MAX_RETRIES", 3),
			RetryDelay:     time.Duration(getEnvInt("DB_RETRY_DELAY_MS", 1000)) * time.Millisecond,
			ConnectTimeout: time.Duration(getEnvInt("DB_CONNECT_TIMEOUT_MS", 5000)) * time.Millisecond,
		},
		Mongo: MongoConfig{
			// MONGO_URL wins over MONGODB_URI, matching the deployment scripts.
			URI:        getEnv("MONGO_URL", getEnv("MONGODB_URI", "mongodb://127.0.0.1:27017")),
			Database:   getEnv("MONGO_DB_NAME", "books_app"),
			Collection: getEnv("REVIEWS_COLL", "reviews"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Audit: AuditConfig{
			Disabled: getEnv("AUDIT_DISABLED", "") == "1",
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.App.Environment == "production" && c.Postgres.Password == "" {
		return fmt.Errorf("DB_PASSWORD must be set in production")
	}
	if c.Mongo.Database == "" || c.Mongo.Collection == "" {
		return fmt.Errorf("mongo database and collection must not be empty")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
