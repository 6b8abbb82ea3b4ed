package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"API_PORT", "LOG_LEVEL", "GEMINI_BASE_URL", "GEMINI_MODEL",
		"STORE_DISPLAY_NAME", "STORE_POLL_INTERVAL",
		"API_RATE_LIMIT_RPS", "API_RATE_LIMIT_BURST", "RETRY_MAX_ATTEMPTS",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.APIPort != "8080" {
		t.Fatalf("APIPort = %q", cfg.APIPort)
	}
	if cfg.GeminiModel != "gemini-2.5-flash" {
		t.Fatalf("GeminiModel = %q", cfg.GeminiModel)
	}
	if cfg.GeminiBaseURL != "https://generativelanguage.googleapis.com" {
		t.Fatalf("GeminiBaseURL = %q", cfg.GeminiBaseURL)
	}
	if cfg.StoreDisplayName != "medical-device-certification-store" {
		t.Fatalf("StoreDisplayName = %q", cfg.StoreDisplayName)
	}
	if cfg.PollInterval != 10*time.Second {
		t.Fatalf("PollInterval = %v", cfg.PollInterval)
	}
	if cfg.APIRateLimitRPS != 5 || cfg.APIRateLimitBurst != 10 {
		t.Fatalf("rate limit defaults = %v/%d", cfg.APIRateLimitRPS, cfg.APIRateLimitBurst)
	}
	if cfg.RetryMaxAttempts != 3 {
		t.Fatalf("RetryMaxAttempts = %d", cfg.RetryMaxAttempts)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("API_PORT", "9999")
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("GEMINI_MODEL", "gemini-2.5-pro")
	t.Setenv("STORE_POLL_INTERVAL", "2s")
	t.Setenv("API_RATE_LIMIT_RPS", "0.5")
	t.Setenv("RETRY_MAX_ATTEMPTS", "5")

	cfg := Load()
	if cfg.APIPort != "9999" || cfg.GeminiAPIKey != "test-key" || cfg.GeminiModel != "gemini-2.5-pro" {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.PollInterval != 2*time.Second {
		t.Fatalf("PollInterval = %v", cfg.PollInterval)
	}
	if cfg.APIRateLimitRPS != 0.5 {
		t.Fatalf("APIRateLimitRPS = %v", cfg.APIRateLimitRPS)
	}
	if cfg.RetryMaxAttempts != 5 {
		t.Fatalf("RetryMaxAttempts = %d", cfg.RetryMaxAttempts)
	}
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("API_RATE_LIMIT_BURST", "many")
	t.Setenv("STORE_POLL_INTERVAL", "soon")

	cfg := Load()
	if cfg.APIRateLimitBurst != 10 {
		t.Fatalf("APIRateLimitBurst = %d", cfg.APIRateLimitBurst)
	}
	if cfg.PollInterval != 10*time.Second {
		t.Fatalf("PollInterval = %v", cfg.PollInterval)
	}
}
