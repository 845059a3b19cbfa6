package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// RateLimitConfig indicates how many requests are allowed within a given interval.
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// Config aggregates application-wide configuration values.
type Config struct {
	Port      string
	JWTSecret string
	TokenTTL  time.Duration

	// DatabaseURL selects the Postgres user store when set; otherwise the
	// JSON file at UsersFile is used.
	DatabaseURL string
	UsersFile   string

	// RedisAddr enables the enrichment cache when set.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	StripeSecretKey     string
	StripeWebhookSecret string
	FrontendURL         string

	GroqAPIKey  string
	OverpassURL string

	RateLimitFree     RateLimitConfig
	DailyContactQuota int
}

// Load reads configuration from environment variables and applies sane defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Port:                getEnv("PORT", "8080"),
		JWTSecret:           getEnv("JWT_SECRET", "dev-secret"),
		TokenTTL:            parseDuration(getEnv("JWT_TTL", "24h")),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		UsersFile:           getEnv("USERS_FILE", "users.json"),
		RedisAddr:           os.Getenv("REDIS_ADDR"),
		RedisPassword:       os.Getenv("REDIS_PASSWORD"),
		RedisDB:             parseInt(getEnv("REDIS_DB", "0"), 0),
		StripeSecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		FrontendURL:         getEnv("FRONTEND_URL", "http://localhost:3000"),
		GroqAPIKey:          os.Getenv("GROQ_API_KEY"),
		OverpassURL:         getEnv("OVERPASS_URL", "https://overpass-api.de/api/interpreter"),
		DailyContactQuota:   parseInt(getEnv("DAILY_CONTACT_QUOTA", "200"), 200),
	}

	rl, err := parseRateLimit(getEnv("RATE_LIMIT_FREE", "15/hour"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_FREE value: %w", err)
	}
	cfg.RateLimitFree = rl

	return cfg, nil
}

func parseRateLimit(value string) (RateLimitConfig, error) {
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return RateLimitConfig{}, fmt.Errorf("expected format <requests>/<interval>, got %q", value)
	}

	requests, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || requests <= 0 {
		return RateLimitConfig{}, fmt.Errorf("invalid request count: %v", parts[0])
	}

	unit := strings.ToLower(strings.TrimSpace(parts[1]))
	var interval time.Duration
	switch unit {
	case "s", "sec", "second", "seconds":
		interval = time.Second
	case "m", "min", "minute", "minutes":
		interval = time.Minute
	case "h", "hr", "hour", "hours":
		interval = time.Hour
	default:
		return RateLimitConfig{}, fmt.Errorf("unsupported interval unit: %s", unit)
	}

	return RateLimitConfig{Requests: requests, Interval: interval}, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func parseDuration(input string) time.Duration {
	d, err := time.ParseDuration(input)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}

func parseInt(input string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return fallback
	}
	return n
}
