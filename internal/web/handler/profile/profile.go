// Package profile serves the public profile JSON API.
package profile

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/webfolio/webfolio/internal/config"
	"github.com/webfolio/webfolio/internal/store"
	"github.com/webfolio/webfolio/internal/web/handler"
)

// Path is the path of the profile API.
const Path = handler.APIPath + "/profile"

// Service is the public profile handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	st  *store.Store
}

// Handler is the public profile handler.
var Handler = Service{}

// Init initializes the public profile handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, st *store.Store) {
	if app == nil || cfg == nil || st == nil {
		log.Fatal().Msg(handler.ErrNilACSFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.st = st

	app.Get(Path, s.Get)
}

// Get returns the profile. Before the first upsert the body is a JSON null.
func (s *Service) Get(c *fiber.Ctx) error {
	prof, err := s.st.GetProfile()
	if err != nil {
		return handler.StoreError(c, err)
	}

	return c.JSON(prof)
}
