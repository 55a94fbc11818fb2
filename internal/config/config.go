package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config represents runtime configuration for the service.
type Config struct {
	GeminiAPIKey       string
	GeminiModel        string
	ServiceAccountPath string
	ServerAddress      string
	Environment        string
}

// Load reads configuration from the environment, after loading a .env file
// when one is present. GEMINI_API_KEY and FIREBASE_SERVICE_ACCOUNT_KEY_PATH
// are required; everything else has a default.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		GeminiModel:        getEnv("GEMINI_MODEL", "gemini-2.5-pro"),
		ServiceAccountPath: os.Getenv("FIREBASE_SERVICE_ACCOUNT_KEY_PATH"),
		ServerAddress:      getEnv("SERVER_ADDRESS", ":8000"),
		Environment:        getEnv("APP_ENV", "development"),
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY must be set")
	}
	if cfg.ServiceAccountPath == "" {
		return nil, fmt.Errorf("FIREBASE_SERVICE_ACCOUNT_KEY_PATH must be set")
	}
	if _, err := os.Stat(cfg.ServiceAccountPath); err != nil {
		return nil, fmt.Errorf("service account key %s: %w", cfg.ServiceAccountPath, err)
	}

	return cfg, nil
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}
