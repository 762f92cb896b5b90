// Package home renders the public landing page.
package home

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/webfolio/webfolio/internal/config"
	"github.com/webfolio/webfolio/internal/store"
	"github.com/webfolio/webfolio/internal/web/handler"
)

const (
	// Path is the path to the landing page.
	Path = handler.RootPath

	// TemplateName is the name of the landing page template.
	TemplateName = "home/home"
)

// Service is the landing page handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	st  *store.Store
}

// Handler is the landing page handler.
var Handler = Service{}

// Init initializes the landing page handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, st *store.Store) {
	if app == nil || cfg == nil || st == nil {
		log.Fatal().Msg(handler.ErrNilACSFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.st = st

	app.Get(Path, s.Get)
}

// Get renders the landing page with the profile, the featured projects and
// the resolved site settings.
func (s *Service) Get(c *fiber.Ctx) error {
	prof, err := s.st.GetProfile()
	if err != nil {
		log.Error().Err(err).Msg("failed to load profile")

		return c.Status(fiber.StatusInternalServerError).SendString("failed to load profile")
	}

	featured, err := s.st.GetFeaturedProjects()
	if err != nil {
		log.Error().Err(err).Msg("failed to load featured projects")

		return c.Status(fiber.StatusInternalServerError).SendString("failed to load projects")
	}

	settings, err := s.st.ResolveSettings()
	if err != nil {
		log.Error().Err(err).Msg("failed to resolve settings")

		return c.Status(fiber.StatusInternalServerError).SendString("failed to load settings")
	}

	return c.Render(TemplateName, fiber.Map{
		"Profile":  prof,
		"Projects": featured,
		"Settings": settings,
	}, handler.BaseLayout)
}
