package app

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/yamatodev/dashboard/pkg/jwtx"
)

// ErrMissingJWTSecret means the service cannot start: without a secret every
// token would be forgeable.
var ErrMissingJWTSecret = errors.New("DASHBOARD_JWT_SECRET must be set")

type Config struct {
	JWTSecret    string        // Required: HMAC secret for signing access tokens
	JWTAlgorithm string        // Optional: token signing algorithm (default: HS256)
	AccessTTL    time.Duration // Optional: access token lifetime (default: 30m)

	DatabaseFile string // Optional: path to SQLite database file (default: ./dashboard.db)
	PepperFile   string // Optional: path to password pepper file; empty disables peppering

	CORSOrigins []string // Optional: allowed CORS origins (default: http://localhost:5173)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() (Config, error) {
	cfg := Config{
		JWTSecret:    os.Getenv("DASHBOARD_JWT_SECRET"),
		JWTAlgorithm: getEnvOrDefault("DASHBOARD_JWT_ALGORITHM", jwtx.AlgHS256),
		AccessTTL: getEnvDurationOrDefault(
			"DASHBOARD_ACCESS_TTL",
			jwtx.DefaultAccessTokenTTL,
		),
		DatabaseFile:        getEnvOrDefault("DASHBOARD_DATABASE_FILE", "dashboard.db"),
		PepperFile:          os.Getenv("DASHBOARD_PEPPER_FILE"), // Optional
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	origins := getEnvOrDefault("DASHBOARD_CORS_ORIGINS", "http://localhost:5173")
	for _, origin := range strings.Split(origins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
		}
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

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
