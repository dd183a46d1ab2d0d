package cmd

import (
	"os"

	"github.com/joho/godotenv"
)

const (
	defaultFile     = "portfolio.txt"
	defaultCurrency = "USD"
	defaultLogLevel = "warn"
)

// config holds the settings read from the environment.
type config struct {
	File     string
	Currency string
	LogLevel string
}

// loadConfig reads the configuration from environment variables, and from a
// .env file in the current directory if any.
func loadConfig() config {
	// Load .env file if it exists
	_ = godotenv.Load()

	return config{
		File:     getEnv("EPF_FILE", defaultFile),
		Currency: getEnv("EPF_CURRENCY", defaultCurrency),
		LogLevel: getEnv("EPF_LOG_LEVEL", defaultLogLevel),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
