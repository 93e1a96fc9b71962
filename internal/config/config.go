package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

const devSessionSecret = "dev-secret-change-in-production"

type Config struct {
	Port              string
	Env               string
	SessionSecret     string
	SessionTTL        time.Duration
	HistorySize       int
	MaxLength         int
	MaxCount          int
	RateLimitRPS      float64
	RateLimitBurst    int
	StrengthEstimator string
}

func Load() Config {
	cfg := Config{
		Port:              getEnv("PORT", "8080"),
		Env:               getEnv("ENV", "development"),
		SessionSecret:     getEnv("SESSION_SECRET", devSessionSecret),
		SessionTTL:        getEnvDuration("SESSION_TTL", 24*time.Hour),
		HistorySize:       getEnvInt("HISTORY_SIZE", 10),
		MaxLength:         getEnvInt("MAX_LENGTH", 128),
		MaxCount:          getEnvInt("MAX_COUNT", 20),
		RateLimitRPS:      getEnvFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst:    getEnvInt("RATE_LIMIT_BURST", 10),
		StrengthEstimator: getEnv("STRENGTH_ESTIMATOR", "alphabet"),
	}

	if cfg.Env == "production" && cfg.SessionSecret == devSessionSecret {
		slog.Error("SESSION_SECRET must be set in production environment")
		os.Exit(1)
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("invalid integer in environment, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		slog.Warn("invalid number in environment, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return f
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("invalid duration in environment, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return d
}
