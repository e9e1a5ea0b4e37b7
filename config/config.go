package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerHost string
	ServerPort string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// JWT configuration
	JWTSecret       string
	SessionTTLHours int

	// Spoonacular recipe-information provider
	SpoonacularAPIKey  string
	SpoonacularBaseURL string

	// S3 image storage
	S3Bucket  string
	AWSRegion string

	// CORS
	AllowedOrigins []string

	// Logging
	LogLevel string
}

// LoadConfig builds a Config from environment variables, applying
// development defaults for anything unset.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerHost: getEnv("SERVER_HOST", "0.0.0.0"),
		ServerPort: getEnv("SERVER_PORT", "8080"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "plateful"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getEnv("DB_NAME", "plateful"),
		DBSSLMode:  getEnv("DB_SSL_MODE", "disable"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		JWTSecret:       os.Getenv("JWT_SECRET"),
		SessionTTLHours: getEnvInt("SESSION_TTL_HOURS", 24),

		SpoonacularAPIKey:  os.Getenv("SPOONACULAR_API_KEY"),
		SpoonacularBaseURL: getEnv("SPOONACULAR_API_URL", "https://api.spoonacular.com/recipes"),

		S3Bucket:  getEnv("S3_BUCKET_NAME", "plateful-recipe-images"),
		AWSRegion: getEnv("AWS_REGION", "us-east-1"),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:5173"), ","),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
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
		return fallback
	}
	return n
}
