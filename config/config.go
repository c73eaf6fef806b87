// Package config loads client configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultBaseURL    = "https://cinebook-backend.onrender.com/api"
	defaultTimeout    = 12 * time.Second
	defaultTotalSeats = 30
)

// Config holds all runtime settings. Every field has a working default so
// the binary runs with no environment at all.
type Config struct {
	APIBaseURL string        // CINEBOOK_API_URL: base URL of the backend API
	Timeout    time.Duration // CINEBOOK_TIMEOUT_SECONDS: per-request HTTP timeout
	TotalSeats int           // CINEBOOK_TOTAL_SEATS: seats per showing
}

// Load reads the environment, after merging a .env file if one exists.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		APIBaseURL: getenv("CINEBOOK_API_URL", defaultBaseURL),
		Timeout:    time.Duration(getenvInt("CINEBOOK_TIMEOUT_SECONDS", int(defaultTimeout/time.Second))) * time.Second,
		TotalSeats: getenvInt("CINEBOOK_TOTAL_SEATS", defaultTotalSeats),
	}
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
