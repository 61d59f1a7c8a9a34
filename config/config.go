package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port  string
	DBUrl string
	// Shared secret every inbound request must present in X-Api-Key.
	APIKey string
	// Legacy system mirror (candidates are synced there best-effort).
	LegacyAPIURL string
	LegacyAPIKey string
	// Maximum accepted JSON body size in bytes.
	BodyLimitBytes int64
}

func LoadConfig() (*Config, error) {
	// .env is only present in local dev; ignored in production.
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", "3000"),
		DBUrl:          getEnv("DATABASE_URL", ""),
		APIKey:         getEnv("API_KEY", ""),
		LegacyAPIURL:   strings.TrimRight(getEnv("LEGACY_API_URL", "http://localhost:4040"), "/"),
		LegacyAPIKey:   getEnv("LEGACY_API_KEY", ""),
		BodyLimitBytes: int64(getEnvInt("BODY_LIMIT_BYTES", 5<<20)),
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.APIKey == "" {
		log.Println("WARNING: API_KEY is missing. All requests will be rejected.")
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
