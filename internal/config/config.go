// Package config reads settings from the process environment, with an
// optional .env file loaded at startup. Credentials are always supplied
// externally and never hardcoded.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Client holds PMS client settings.
type Client struct {
	BaseURL  string
	APIKey   string
	Attempts int
	Timeout  time.Duration
}

// Mock holds mock PMS server settings.
type Mock struct {
	Addr     string
	APIKey   string
	HoldTTL  time.Duration
	BookRate int
}

// LoadEnvFile loads a .env file from the working directory when one exists.
// A missing file is not an error.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadClient reads client settings from the environment.
func LoadClient() Client {
	return Client{
		BaseURL:  getEnv("HOTEL_PMS_BASE_URL", "http://localhost:8181/hotel/api"),
		APIKey:   os.Getenv("HOTEL_PMS_API_KEY"),
		Attempts: getEnvInt("HOTEL_PMS_ATTEMPTS", 3),
		Timeout:  getEnvDuration("HOTEL_PMS_TIMEOUT", 10*time.Second),
	}
}

// LoadMock reads mock server settings from the environment.
func LoadMock() Mock {
	return Mock{
		Addr:     getEnv("PMS_MOCK_ADDR", ":8181"),
		APIKey:   getEnv("PMS_MOCK_API_KEY", "dev-key"),
		HoldTTL:  getEnvDuration("PMS_MOCK_HOLD_TTL", 15*time.Minute),
		BookRate: getEnvInt("PMS_MOCK_BOOK_RATE", 10),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}
