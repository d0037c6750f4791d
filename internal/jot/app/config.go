package app

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/jotapp/jot/pkg/jwtx"
)

// ErrMissingJWTSecret is returned by LoadConfig when JOT_JWT_SECRET is unset.
var ErrMissingJWTSecret = errors.New("missing environment value: JOT_JWT_SECRET")

type Config struct {
	JWTSecret string // Required: HS256 signing secret

	Host                 string        // Optional: bind address (default: empty, all interfaces)
	Port                 int           // Optional: HTTP server port (default: 8080)
	DatabaseFile         string        // Optional: path to SQLite database file (default: ./jot.db)
	TokenTTL             time.Duration // Optional: access token lifetime (default: 90 days)
	DeviceCodeTTL        time.Duration // Optional: device challenge lifetime (default: 15m)
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
}

func LoadConfig() (Config, error) {
	cfg := Config{
		JWTSecret:            os.Getenv("JOT_JWT_SECRET"),
		Host:                 os.Getenv("JOT_HOST"),
		Port:                 getEnvIntOrDefault("JOT_PORT", 8080),
		DatabaseFile:         getEnvOrDefault("DATABASE_PATH", "jot.db"),
		TokenTTL:             getEnvDurationOrDefault("JOT_TOKEN_TTL", jwtx.DefaultTokenTTL),
		DeviceCodeTTL:        getEnvDurationOrDefault("JOT_DEVICE_CODE_TTL", 15*time.Minute),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}

	if cfg.JWTSecret == "" {
		return Config{}, ErrMissingJWTSecret
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}
