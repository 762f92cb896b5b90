package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/webfolio/webfolio/internal/config"
	"github.com/webfolio/webfolio/internal/store"
)

// Service is the interface for a web handler service.
type Service interface {
	Init(app *fiber.App, cfg *config.Config, st *store.Store) error
}
