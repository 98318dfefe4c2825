package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application configuration
type Config struct {
	Port     string
	Env      string
	LogLevel string

	// Postgres connection string for the clinic database (read-only access).
	DatabaseURL string
	// Deadline applied to every store query.
	StoreTimeout time.Duration

	// Base URL of the clinic API that serves the service catalog.
	CatalogBaseURL string
	CatalogTimeout time.Duration

	// Redis connection for conversation slot state.
	RedisAddr     string
	RedisPassword string
	RedisTLS      bool
	SlotTTL       time.Duration

	// Base URL prepended to UI deep links in chat responses.
	LinkBaseURL string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "5055"),
		Env:            getEnv("ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		StoreTimeout:   getEnvAsDuration("STORE_TIMEOUT", 5*time.Second),
		CatalogBaseURL: getEnv("CATALOG_BASE_URL", ""),
		CatalogTimeout: getEnvAsDuration("CATALOG_TIMEOUT", 15*time.Second),
		RedisAddr:      getEnv("REDIS_ADDR", "redis:6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisTLS:       getEnvAsBool("REDIS_TLS", false),
		SlotTTL:        getEnvAsDuration("SLOT_TTL", 24*time.Hour),
		LinkBaseURL:    getEnv("LINK_BASE_URL", ""),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
