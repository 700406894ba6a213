package config

import (
	"fmt"
	"time"

	"github.com/campuskit/frontdesk/internal/configs/env"
)

// Config holds all configuration for the application
type Config struct {
	// LMS backend
	BackendBaseURL string

	// Redis (session/continuity store)
	RedisHost     string
	RedisPassword string
	SessionTTL    time.Duration

	// MongoDB (comparison history cache)
	MongoURI    string
	MongoDBName string

	// JWT (optional gateway token check)
	JWTSecret string
	JWTIssuer string

	// Rate Limiting
	RateLimitRPS float64

	// Concurrency
	MaxConcurrentChecks int

	// Similarity matching
	MatchThreshold float64

	// Report export
	ExportDir       string
	ReportPageLines int

	// Logging
	LogLevel string

	// Server
	ServerPort string
}

func Load() (*Config, error) {
	cfg := &Config{}

	// LMS backend
	cfg.BackendBaseURL = env.GetEnv("BACKEND_BASE_URL", "")

	// Redis
	cfg.RedisHost = env.GetEnv("REDIS_HOST", "localhost:6379")
	cfg.RedisPassword = env.GetEnv("REDIS_PASSWORD", "")
	ttlHours := env.GetEnvInt("SESSION_TTL_HOURS", 0)
	cfg.SessionTTL = time.Duration(ttlHours) * time.Hour

	// MongoDB
	cfg.MongoURI = env.GetEnv("MONGO_URI", "")
	cfg.MongoDBName = env.GetEnv("MONGO_DB_NAME", "")

	// JWT
	cfg.JWTSecret = env.GetEnv("JWT_SECRET", "")
	cfg.JWTIssuer = env.GetEnv("JWT_ISSUER", "frontdesk")

	// Rate Limiting
	cfg.RateLimitRPS = env.GetEnvFloat("RATE_LIMIT_RPS", 10.0)

	// Concurrency
	cfg.MaxConcurrentChecks = env.GetEnvInt("MAX_CONCURRENT_CHECKS", 5)

	// Similarity matching
	cfg.MatchThreshold = env.GetEnvFloat("MATCH_THRESHOLD", 0.7)

	// Report export
	cfg.ExportDir = env.GetEnv("EXPORT_DIR", "exports")
	cfg.ReportPageLines = env.GetEnvInt("REPORT_PAGE_LINES", 48)

	// Logging
	cfg.LogLevel = env.GetEnv("LOG_LEVEL", "info")

	// Server
	cfg.ServerPort = env.GetEnv("SERVER_PORT", "8080")

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.BackendBaseURL == "" {
		return fmt.Errorf("BACKEND_BASE_URL is required")
	}
	if c.RedisHost == "" {
		return fmt.Errorf("REDIS_HOST is required")
	}
	if c.MongoURI == "" {
		return fmt.Errorf("MONGO_URI is required")
	}
	if c.MongoDBName == "" {
		return fmt.Errorf("MONGO_DB_NAME is required")
	}
	if c.MaxConcurrentChecks <= 0 {
		return fmt.Errorf("MAX_CONCURRENT_CHECKS must be greater than 0")
	}
	if c.MatchThreshold <= 0 || c.MatchThreshold >= 1 {
		return fmt.Errorf("MATCH_THRESHOLD must be between 0 and 1")
	}
	if c.ReportPageLines <= 0 {
		return fmt.Errorf("REPORT_PAGE_LINES must be greater than 0")
	}
	return nil
}
