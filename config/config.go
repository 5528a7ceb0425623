package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DBUrl       string
	FrontendURL string
	// Additional origins allowed by CORS, comma separated
	ExtraOrigins []string
	// Auth: HS256 shared secret and/or a JWKS endpoint for RS256 tokens
	JWTSecret string
	JWKSUrl   string
	// SMTP configuration for interview notifications
	SMTPHost      string
	SMTPPort      string
	SMTPUsername  string
	SMTPPassword  string
	SMTPFromEmail string
	// Redis configuration (rate limiting)
	RedisURL      string
	RedisPassword string
	// Rate limiting
	RateLimitWindowSeconds    int
	RateLimitGlobalThreshold  int
	RateLimitProbeThreshold   int
	// Scheduling business rules (see domain.BusinessRules)
	SchedulingStartHour          int
	SchedulingEndHour            int
	SchedulingAllowWeekends      bool
	SchedulingMinDurationMinutes int
	SchedulingMaxDurationMinutes int
	// Alternative slot search
	SuggestionHorizonDays int
	SuggestionMaxResults  int
	SuggestionProbeCap    int
}

func LoadConfig() (*Config, error) {
	// .env is only present in local development; ignored elsewhere
	_ = godotenv.Load()

	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		DBUrl:        getEnv("DATABASE_URL", ""),
		FrontendURL:  strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		ExtraOrigins: splitEnv("CORS_EXTRA_ORIGINS"),
		JWTSecret:    getEnv("AUTH_JWT_SECRET", ""),
		JWKSUrl:      getEnv("AUTH_JWKS_URL", ""),
		// SMTP configuration
		SMTPHost:      getEnv("SMTP_HOST", ""),
		SMTPPort:      getEnv("SMTP_PORT", "587"),
		SMTPUsername:  getEnv("SMTP_USERNAME", ""),
		SMTPPassword:  getEnv("SMTP_PASSWORD", ""),
		SMTPFromEmail: getEnv("SMTP_FROM_EMAIL", ""),
		// Redis configuration
		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		// Rate limiting (with sensible defaults)
		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),
		RateLimitProbeThreshold:  getEnvInt("RATE_LIMIT_PROBE_THRESHOLD", 60),
		// Scheduling rules, institution-tunable
		SchedulingStartHour:          getEnvInt("SCHEDULING_START_HOUR", 9),
		SchedulingEndHour:            getEnvInt("SCHEDULING_END_HOUR", 18),
		SchedulingAllowWeekends:      getEnvBool("SCHEDULING_ALLOW_WEEKENDS", false),
		SchedulingMinDurationMinutes: getEnvInt("SCHEDULING_MIN_DURATION_MINUTES", 15),
		SchedulingMaxDurationMinutes: getEnvInt("SCHEDULING_MAX_DURATION_MINUTES", 240),
		// Alternative slot search
		SuggestionHorizonDays: getEnvInt("SUGGESTION_HORIZON_DAYS", 7),
		SuggestionMaxResults:  getEnvInt("SUGGESTION_MAX_RESULTS", 5),
		SuggestionProbeCap:    getEnvInt("SUGGESTION_PROBE_CAP", 10),
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}
	if cfg.JWTSecret == "" && cfg.JWKSUrl == "" {
		log.Println("WARNING: neither AUTH_JWT_SECRET nor AUTH_JWKS_URL configured. All protected routes will reject requests.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// splitEnv returns a comma-separated environment variable as a slice
func splitEnv(key string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
