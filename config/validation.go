package config

import (
	"fmt"
	"os"
)

// ValidateConfig checks that required settings are present before startup.
func ValidateConfig(cfg *Config) error {
	if cfg.JWTSecret == "" {
		// Tests and local development fall back to a fixed secret
		if os.Getenv("ENV") == "production" {
			return fmt.Errorf("JWT_SECRET is required in production")
		}
		cfg.JWTSecret = "dev-secret"
	}

	if cfg.DBHost == "" || cfg.DBPort == "" || cfg.DBName == "" {
		return fmt.Errorf("database host, port and name are required")
	}

	if cfg.SessionTTLHours <= 0 {
		return fmt.Errorf("session TTL must be positive, got %d", cfg.SessionTTLHours)
	}

	return nil
}
