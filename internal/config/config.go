package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything read from the environment at startup.
type Config struct {
	APIURL      string
	HTTPTimeout time.Duration
	LogLevel    string
}

// Load reads an optional .env file, then the environment, applying
// defaults for anything unset.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		APIURL:      getEnv("TEAMBOARD_API_URL", "http://localhost:3000/api"),
		HTTPTimeout: time.Duration(getEnvInt("TEAMBOARD_HTTP_TIMEOUT", 15)) * time.Second,
		LogLevel:    getEnv("TEAMBOARD_LOG_LEVEL", "warn"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}
