package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/webfolio/webfolio/internal/db/controller"
)

// JSONError writes a JSON error body with the given status.
func JSONError(c *fiber.Ctx, status int, err error) error {
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// StoreError maps controller sentinel errors onto HTTP statuses and writes
// the JSON error body. Unknown errors become 500.
func StoreError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, controller.ErrNotFound):
		return JSONError(c, fiber.StatusNotFound, err)
	case errors.Is(err, controller.ErrConflict):
		return JSONError(c, fiber.StatusConflict, err)
	default:
		return JSONError(c, fiber.StatusInternalServerError, err)
	}
}
