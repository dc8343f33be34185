package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	httpapi "github.com/velikanov/weatherbot/internal/api/http"
	"github.com/velikanov/weatherbot/internal/bot"
	"github.com/velikanov/weatherbot/internal/city"
	"github.com/velikanov/weatherbot/internal/config"
	"github.com/velikanov/weatherbot/internal/reminder"
	"github.com/velikanov/weatherbot/internal/scheduler"
	"github.com/velikanov/weatherbot/internal/store"
	"github.com/velikanov/weatherbot/internal/telegram"
	"github.com/velikanov/weatherbot/internal/weather"
	"github.com/velikanov/weatherbot/internal/weather/yandex"
)

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	// Shared HTTP client for outbound provider and Bot API calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Users and reminders; postgres in production, memory for local runs.
	var st store.Store
	if cfg.DatabaseURL != "" {
		pg, err := store.NewPostgresStore(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pg.Close()
		st = pg
	} else {
		logger.Warn().Msg("DATABASE_URL not set; reminders will not survive restarts")
		st = store.NewMemoryStore()
	}

	resolver, err := city.NewResolver(logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load city table")
	}

	// Core pipeline: resolve, fetch, extract, annotate, format.
	formatter := weather.NewFormatter(weather.NewAnnotator(logger))
	service := weather.NewService(
		resolver,
		yandex.NewClient(httpClient, logger),
		yandex.NewParser(logger),
		formatter,
		logger,
	)

	sender := telegram.NewClient(httpClient, cfg.BotToken, logger)

	// Background reminders.
	sched := scheduler.New(cfg.Timezone, logger)
	orchestrator := reminder.NewOrchestrator(st, sched, service, sender, logger)
	if err := orchestrator.Reload(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to reload reminders")
	}
	sched.Start()
	defer sched.Stop()

	handler := bot.NewHandler(st, service, orchestrator, logger)

	app := fiber.New(fiber.Config{
		AppName:               "weatherbot",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	app.Use(recover.New())
	app.Use(requestLogger(logger))

	httpapi.RegisterRoutes(app, cfg.BotToken, handler, sender, logger)

	if cfg.WebhookBaseURL != "" {
		webhookURL := cfg.WebhookBaseURL + "/webhook/" + cfg.BotToken
		if err := sender.SetWebhook(ctx, webhookURL); err != nil {
			logger.Fatal().Err(err).Msg("failed to register webhook")
		}
		logger.Info().Str("base", cfg.WebhookBaseURL).Msg("webhook registered")
	}

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Error().Err(err).Msg("fiber server stopped")
		}
	}()
	logger.Info().Str("port", cfg.Port).Msg("weatherbot started")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("error during shutdown")
	}
}

// requestLogger logs each request at debug with method, path and status.
func requestLogger(logger zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		logger.Debug().
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Dur("took", time.Since(start)).
			Msg("request")
		return err
	}
}
