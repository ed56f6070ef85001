// File: internal/config/config.go
package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort        string
	JWTSecretKey      string
	DatabasePath      string
	CompletionBaseURL string
	Environment       string
}

// Load reads configuration from environment variables or .env file.
func Load() *Config {
	env := os.Getenv("ENV")
	if strings.ToLower(env) != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found; continuing with environment variables")
		}
	}

	cfg := &Config{
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		JWTSecretKey:      getEnv("JWT_SECRET_KEY", ""),
		DatabasePath:      getEnv("DB_PATH", "sohbet.db"),
		CompletionBaseURL: getEnv("COMPLETION_BASE_URL", "https://api.groq.com/openai/v1"),
		Environment:       env,
	}

	// Validation for production environments
	if strings.ToLower(env) == "production" {
		if cfg.JWTSecretKey == "" {
			log.Fatalf("Missing required production environment variable: JWT_SECRET_KEY")
		}
	}
	if cfg.JWTSecretKey == "" {
		cfg.JWTSecretKey = "dev-secret-change-me"
	}

	return cfg
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
