package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server Configuration
	Port      string
	Env       string
	ClientURL string

	// Database Configuration
	MongoURI string
	DBName   string

	// Security Configuration
	JWTSecret string

	// External Movie API Configuration
	OMDBAPIKey  string
	OMDBBaseURL string

	// Cache Configuration (empty RedisAddr disables caching)
	RedisAddr string
	CacheTTL  time.Duration
}

// LoadConfig loads the configuration from environment variables.
// A .env file is honored when present but never required.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:      getEnvOrDefault("PORT", "5002"),
		Env:       getEnvOrDefault("GO_ENV", "development"),
		ClientURL: getEnvOrDefault("CLIENT_URL", "http://localhost:3000"),

		MongoURI: getEnvOrDefault("MONGODB_URI", "mongodb://localhost:27017"),
		DBName:   getEnvOrDefault("DB_NAME", "mymdb"),

		JWTSecret: getEnvOrDefault("JWT_SECRET", ""),

		OMDBAPIKey:  getEnvOrDefault("OMDB_API_KEY", ""),
		OMDBBaseURL: getEnvOrDefault("OMDB_BASE_URL", "http://www.omdbapi.com/"),

		RedisAddr: getEnvOrDefault("REDIS_ADDR", ""),
		CacheTTL:  time.Duration(atoi(getEnvOrDefault("CACHE_TTL_MINUTES", "10"))) * time.Minute,
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.OMDBAPIKey == "" {
		return nil, fmt.Errorf("OMDB_API_KEY is required")
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func atoi(s string) int {
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return 0
}
