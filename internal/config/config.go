package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

var validate = validator.New()

type AppConfig struct {
	// BotToken authenticates against the Bot API and doubles as the secret
	// webhook path segment.
	BotToken string `validate:"required"`

	// WebhookBaseURL is the public https origin the Bot API pushes updates
	// to. Empty means the webhook is not (re)registered on start.
	WebhookBaseURL string

	// DatabaseURL selects the postgres store; empty falls back to the
	// in-memory store.
	DatabaseURL string

	// Timezone reminders fire in.
	Timezone *time.Location

	// HTTPTimeout bounds outbound provider and Bot API calls.
	HTTPTimeout time.Duration

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Info().Msgf("no .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{
		BotToken:       os.Getenv("BOT_TOKEN"),
		WebhookBaseURL: os.Getenv("WEBHOOK_BASE_URL"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		Port:           getenvDefault("PORT", "8080"),
	}

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "30s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	tzName := getenvDefault("TIMEZONE", "Europe/Moscow")
	tz, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}
	cfg.Timezone = tz

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
