package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Issuer       string // issuer claim for access tokens
	DatabaseFile string // path to the SQLite database file
	KeyFile      string // optional: PEM Ed25519 signing key; ephemeral when unset

	GoogleClientID     string // optional: enables Google sign-in when set
	GoogleClientSecret string
	GoogleRedirectURL  string

	Env       string // dev, staging, prod
	LogLevel  string
	LogFormat string

	Port                 int
	SecureCookies        bool // Secure flag on the refresh cookie
	ShutdownGracePeriod  time.Duration
	HousekeepingInterval time.Duration
}

func LoadConfig() Config {
	return Config{
		Issuer:       getEnvOrDefault("STUDYHALL_ISSUER", "studyhall"),
		DatabaseFile: getEnvOrDefault("STUDYHALL_DATABASE_FILE", "studyhall.db"),
		KeyFile:      os.Getenv("STUDYHALL_KEY_FILE"),

		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),

		Env:       getEnvOrDefault("ENV", "dev"),
		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "json"),

		Port:                 getEnvIntOrDefault("PORT", 8080),
		SecureCookies:        getEnvBoolOrDefault("SECURE_COOKIES", false),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", time.Hour),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
