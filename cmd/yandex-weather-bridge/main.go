package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/tapokpy/yandex-weather-bridge/internal/api/http"
	"github.com/tapokpy/yandex-weather-bridge/internal/config"
	"github.com/tapokpy/yandex-weather-bridge/internal/entity"
	"github.com/tapokpy/yandex-weather-bridge/internal/sensor"
	"github.com/tapokpy/yandex-weather-bridge/internal/updater"
	"github.com/tapokpy/yandex-weather-bridge/internal/yandex"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound API calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Coordinator polling the Yandex Weather API.
	client := yandex.NewClient(httpClient, cfg.YandexAPIKey, cfg.Language)
	upd := updater.New(client, cfg.Lat, cfg.Lon, cfg.UpdateInterval)
	if err := upd.Start(); err != nil {
		log.Fatalf("failed to start updater: %v", err)
	}
	defer upd.Stop()

	// Entity registry with one sensor per descriptor.
	registry := entity.NewRegistry()
	defer registry.Close()

	if _, err := sensor.Setup(cfg.EntryName, cfg.EntryID, upd, registry); err != nil {
		log.Fatalf("failed to set up sensors: %v", err)
	}

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "yandex-weather-bridge",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
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

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "yandex-weather-bridge",
			"updated": upd.LastUpdateSuccess(),
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, registry, upd)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
