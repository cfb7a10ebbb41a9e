package httpapi

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/tapokpy/yandex-weather-bridge/internal/entity"
)

var validate = validator.New()

// Refresher is the slice of the updater contract the API needs.
type Refresher interface {
	RequestRefresh(ctx context.Context) error
	LastUpdateSuccess() bool
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, registry *entity.Registry, refresher Refresher) {
	v1 := app.Group("/api/v1")

	v1.Get("/entities", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"entities": registry.States(),
		})
	})

	v1.Get("/entities/:id", func(c *fiber.Ctx) error {
		req := entityParams{ID: c.Params("id")}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		state, ok := registry.State(req.ID)
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "unknown entity id")
		}
		return c.JSON(state)
	})

	v1.Post("/refresh", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.Context(), 30*time.Second)
		defer cancel()

		if err := refresher.RequestRefresh(ctx); err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "refresh failed")
		}
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
			"status": "refreshed",
		})
	})
}

// entityParams holds path parameters for single-entity lookups.
type entityParams struct {
	ID string `validate:"required"`
}
