// Package config loads all runtime settings from the environment, with an
// optional .env file for local development.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIPort  string
	LogLevel string

	GeminiAPIKey  string
	GeminiBaseURL string
	GeminiModel   string

	StoreDisplayName string
	ScratchDir       string
	CodebookPath     string
	CategoryConfig   string
	PollInterval     time.Duration

	APIRateLimitRPS   float64
	APIRateLimitBurst int

	RetryMaxAttempts int
}

// Load reads configuration from the environment. A missing .env file is not
// an error; explicit environment variables always win over .env values.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		APIPort:  envOr("API_PORT", "8080"),
		LogLevel: envOr("LOG_LEVEL", "info"),

		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiBaseURL: envOr("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		GeminiModel:   envOr("GEMINI_MODEL", "gemini-2.5-flash"),

		StoreDisplayName: envOr("STORE_DISPLAY_NAME", "medical-device-certification-store"),
		ScratchDir:       os.Getenv("SCRATCH_DIR"),
		CodebookPath:     os.Getenv("CODEBOOK_PATH"),
		CategoryConfig:   os.Getenv("CATEGORY_CONFIG"),
		PollInterval:     envDurationOr("STORE_POLL_INTERVAL", 10*time.Second),

		APIRateLimitRPS:   envFloatOr("API_RATE_LIMIT_RPS", 5),
		APIRateLimitBurst: envIntOr("API_RATE_LIMIT_BURST", 10),

		RetryMaxAttempts: envIntOr("RETRY_MAX_ATTEMPTS", 3),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
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

func envFloatOr(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
