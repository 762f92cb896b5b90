// Package project serves the public project pages and the read-only
// project JSON API.
package project

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/webfolio/webfolio/internal/config"
	"github.com/webfolio/webfolio/internal/store"
	"github.com/webfolio/webfolio/internal/web/handler"
)

const (
	// PagePath is the path of the project detail page.
	PagePath = "/projects/:slug"

	// TemplateName is the name of the project detail template.
	TemplateName = "project/project"

	// ListPath is the path of the project list API.
	ListPath = handler.APIPath + "/projects"

	// FeaturedPath is the path of the featured project API.
	FeaturedPath = handler.APIPath + "/projects/featured"

	// SlugPath is the path of the lookup-by-slug API.
	SlugPath = handler.APIPath + "/projects/slug/:slug"
)

// Service is the public project handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	st  *store.Store
}

// Handler is the public project handler.
var Handler = Service{}

// Init initializes the public project handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, st *store.Store) {
	if app == nil || cfg == nil || st == nil {
		log.Fatal().Msg(handler.ErrNilACSFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.st = st

	// fixed segments before the :slug wildcard
	app.Get(FeaturedPath, s.GetFeatured)
	app.Get(SlugPath, s.GetBySlug)
	app.Get(ListPath, s.GetAll)
	app.Get(PagePath, s.GetPage)
}

// GetPage renders the project detail page.
func (s *Service) GetPage(c *fiber.Ctx) error {
	proj, err := s.st.GetProjectBySlug(c.Params("slug"))
	if err != nil {
		log.Error().Err(err).Str("slug", c.Params("slug")).Msg("failed to load project")

		return c.Status(fiber.StatusInternalServerError).SendString("failed to load project")
	}

	if proj == nil {
		return c.Status(fiber.StatusNotFound).SendString("project not found")
	}

	settings, err := s.st.ResolveSettings()
	if err != nil {
		log.Error().Err(err).Msg("failed to resolve settings")

		return c.Status(fiber.StatusInternalServerError).SendString("failed to load settings")
	}

	return c.Render(TemplateName, fiber.Map{
		"Project":  proj,
		"Settings": settings,
	}, handler.BaseLayout)
}

// GetAll returns all projects, optionally filtered by a technology tag.
func (s *Service) GetAll(c *fiber.Ctx) error {
	tech := c.Query("technology")

	if tech != "" {
		list, errTech := s.st.GetProjectsByTechnology(tech)
		if errTech != nil {
			return handler.StoreError(c, errTech)
		}

		return c.JSON(list)
	}

	list, err := s.st.GetProjects()
	if err != nil {
		return handler.StoreError(c, err)
	}

	return c.JSON(list)
}

// GetFeatured returns the featured projects.
func (s *Service) GetFeatured(c *fiber.Ctx) error {
	list, err := s.st.GetFeaturedProjects()
	if err != nil {
		return handler.StoreError(c, err)
	}

	return c.JSON(list)
}

// GetBySlug returns one project by its slug. A missing slug yields a JSON
// null with status 200, mirroring the page query used by the frontend.
func (s *Service) GetBySlug(c *fiber.Ctx) error {
	proj, err := s.st.GetProjectBySlug(c.Params("slug"))
	if err != nil {
		return handler.StoreError(c, err)
	}

	return c.JSON(proj)
}
