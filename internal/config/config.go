package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

const devJWTSecret = "dev-secret-change-in-production"

type Config struct {
	Port        string
	Env         string
	LogFormat   string
	DatabaseDSN string
	JWTSecret   string
	JWTExpiry   time.Duration

	DefaultLength int
	MaxLength     int
	HistoryLimit  int

	GenerateRPS   float64
	GenerateBurst int
	AuthRPS       float64
	AuthBurst     int

	MetricsEnabled bool
}

func Load() Config {
	env := getEnv("ENV", "development")

	defaultFormat := "text"
	if env == "production" {
		defaultFormat = "json"
	}

	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		Env:         env,
		LogFormat:   getEnv("LOG_FORMAT", defaultFormat),
		DatabaseDSN: getEnv("DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/passguard?parseTime=true"),
		JWTSecret:   getEnv("JWT_SECRET", devJWTSecret),
		JWTExpiry:   getEnvDuration("JWT_EXPIRY", 24*time.Hour),

		DefaultLength: getEnvInt("DEFAULT_LENGTH", 16),
		MaxLength:     getEnvInt("MAX_LENGTH", 128),
		HistoryLimit:  getEnvInt("HISTORY_LIMIT", 50),

		GenerateRPS:   getEnvFloat("GENERATE_RPS", 10),
		GenerateBurst: getEnvInt("GENERATE_BURST", 20),
		AuthRPS:       getEnvFloat("AUTH_RPS", 5),
		AuthBurst:     getEnvInt("AUTH_BURST", 10),

		MetricsEnabled: getEnvBool("METRICS_ENABLED", true),
	}

	if cfg.Env == "production" && cfg.JWTSecret == devJWTSecret {
		slog.Error("JWT_SECRET must be set in production environment")
		os.Exit(1)
	}

	if cfg.MaxLength < 1 {
		slog.Warn("MAX_LENGTH must be positive, using 128", "max_length", cfg.MaxLength)
		cfg.MaxLength = 128
	}
	if cfg.HistoryLimit < 1 {
		slog.Warn("HISTORY_LIMIT must be positive, using 50", "history_limit", cfg.HistoryLimit)
		cfg.HistoryLimit = 50
	}
	if cfg.DefaultLength < 1 || cfg.DefaultLength > cfg.MaxLength {
		slog.Warn("DEFAULT_LENGTH out of range, using 16", "default_length", cfg.DefaultLength, "max_length", cfg.MaxLength)
		cfg.DefaultLength = min(16, cfg.MaxLength)
	}

	return cfg
}

// NewLogger builds the process logger for the configured format.
func (c Config) NewLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if c.Env != "production" {
		opts.Level = slog.LevelDebug
	}

	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
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
		slog.Warn("invalid integer in environment, using default", "key", key, "value", v)
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
		slog.Warn("invalid number in environment, using default", "key", key, "value", v)
		return fallback
	}
	return f
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid boolean in environment, using default", "key", key, "value", v)
		return fallback
	}
	return b
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("invalid duration in environment, using default", "key", key, "value", v)
		return fallback
	}
	return d
}
