package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the application
type Config struct {
	Port           string
	AllowedOrigins []string
	LogLevel       string
	Environment    string
	StaticDir      string

	// Strava provider settings
	StravaClientID     string
	StravaClientSecret string
	StravaRedirectURI  string
	StravaScope        string
	StravaPageSize     int
	StravaMaxPages     int
	ActivityType       string

	// Date window for the tour, ISO dates
	TourStartDate string
	TourEndDate   string

	// Credential storage: Postgres when DatabaseURL is set, JSON file otherwise
	TokenPath   string
	DatabaseURL string

	// Optional cache
	RedisURL string

	// Optional JSON file overriding the built-in sample dataset
	SampleDataPath string

	// Bounded parallelism for per-activity enrichment
	EnrichConcurrency int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		Port:           getEnv("PORT", "3000"),
		AllowedOrigins: parseOrigins(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		Environment:    getEnv("ENVIRONMENT", "production"),
		StaticDir:      getEnv("STATIC_DIR", "public"),

		StravaClientID:     getEnv("STRAVA_CLIENT_ID", ""),
		StravaClientSecret: getEnv("STRAVA_CLIENT_SECRET", ""),
		StravaRedirectURI:  getEnv("STRAVA_REDIRECT_URI", "http://localhost:3000/auth/callback"),
		StravaScope:        getEnv("STRAVA_SCOPE", "activity:read_all"),
		StravaPageSize:     getIntEnv("STRAVA_PAGE_SIZE", 30),
		StravaMaxPages:     getIntEnv("STRAVA_MAX_PAGES", 20),
		ActivityType:       getEnv("ACTIVITY_TYPE", "Ride"),

		TourStartDate: getEnv("LEJOG_START_DATE", "2024-09-02"),
		TourEndDate:   getEnv("LEJOG_END_DATE", "2024-09-15"),

		TokenPath:   getEnv("TOKEN_PATH", "data/strava-token.json"),
		DatabaseURL: getEnv("DATABASE_URL", ""),

		RedisURL: getEnv("REDIS_URL", ""),

		SampleDataPath: getEnv("SAMPLE_DATA_PATH", ""),

		EnrichConcurrency: getIntEnv("ENRICH_CONCURRENCY", 4),
	}, nil
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getIntEnv gets an integer environment variable with a fallback value
func getIntEnv(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

// parseOrigins parses comma-separated origins into a slice
func parseOrigins(origins string) []string {
	if origins == "" {
		return []string{}
	}

	parts := strings.Split(origins, ",")
	result := make([]string, 0, len(parts))

	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
