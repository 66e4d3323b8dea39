package config

import (
	"os"
	"time"
)

var (
	API_ENV         string
	API_SECRET      string
	APP_HOST        string
	JWT_SECRET      string
	PORT            string
	SMTP_FROM       string
	SMTP_FROM_NAME  string
	EMAIL_QUEUE     string
	ADMIN_EMAIL     string
	SessionIdleTTL  time.Duration
	CatalogCacheTTL time.Duration
	ReviewCooldown  time.Duration
	RateLimitPerMin int
)

func init() {
	Load()
}

// Load reads the environment again. main calls it after the .env file is applied.
func Load() {
	API_ENV = GetEnv("API_ENV", "local")
	API_SECRET = os.Getenv("API_SECRET")
	APP_HOST = os.Getenv("APP_HOST")
	JWT_SECRET = os.Getenv("JWT_SECRET")
	PORT = GetEnv("PORT", "9090")
	SMTP_FROM = GetEnv("SMTP_FROM", "noreply@receh48.id")
	SMTP_FROM_NAME = GetEnv("SMTP_FROM_NAME", "Receh48")
	EMAIL_QUEUE = os.Getenv("EMAIL_QUEUE")
	ADMIN_EMAIL = os.Getenv("ADMIN_EMAIL")
	SessionIdleTTL = GetDuration("SESSION_IDLE_TTL", 2*time.Hour)
	CatalogCacheTTL = GetDuration("CATALOG_CACHE_TTL", 30*time.Second)
	ReviewCooldown = GetDuration("REVIEW_COOLDOWN", 60*time.Second)
	RateLimitPerMin = GetInt("RATE_LIMIT_PER_MINUTE", 10)
}
