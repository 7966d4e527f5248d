package config

import (
	"log"
	"os"

	"salestrack-backend/internal/models"
)

type Config struct {
	HTTPPort    string
	DatabaseDSN string
	JWTSecret   string
	CORSOrigins string

	// Seed credentials for the default admin created on first startup.
	AdminUsername string
	AdminPassword string

	// Initial status for newly created leave applications. Some teams want
	// self-service leaves to start approved, most want pending.
	LeaveDefaultStatus models.LeaveStatus
}

func Load() *Config {
	cfg := &Config{
		HTTPPort:      getEnv("HTTP_PORT", "8080"),
		DatabaseDSN:   getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=salestrack port=5432 sslmode=disable"),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		CORSOrigins:   getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
	}

	switch status := models.LeaveStatus(getEnv("LEAVE_DEFAULT_STATUS", "pending")); status {
	case models.LeaveStatusPending, models.LeaveStatusApproved:
		cfg.LeaveDefaultStatus = status
	default:
		log.Fatalf("[FATAL] LEAVE_DEFAULT_STATUS must be 'pending' or 'approved', got %q", status)
	}

	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] JWT_SECRET environment variable is not set. It is required.")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET must be at least 32 characters long.")
	}
	if cfg.DatabaseDSN == "host=localhost user=postgres password=postgres dbname=salestrack port=5432 sslmode=disable" {
		log.Println("[WARN] DATABASE_DSN is using the default value, set your own Postgres connection for production.")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
