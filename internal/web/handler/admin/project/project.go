// Package project provides the admin project CRUD API.
package project

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/webfolio/webfolio/internal/config"
	"github.com/webfolio/webfolio/internal/db/controller/project"
	"github.com/webfolio/webfolio/internal/db/models"
	"github.com/webfolio/webfolio/internal/store"
	"github.com/webfolio/webfolio/internal/web/handler"
)

const (
	// Path is the path of the admin project collection.
	Path = handler.AdminAPIPath + "/projects"

	// ItemPath is the path of a single admin project.
	ItemPath = Path + "/:id"
)

// CreateRequest is the body of a project creation.
type CreateRequest struct {
	Title        string            `json:"title"`
	Slug         string            `json:"slug"`
	Description  string            `json:"description"`
	Content      string            `json:"content"`
	Thumbnail    string            `json:"thumbnail"`
	Images       models.StringList `json:"images"`
	Technologies models.StringList `json:"technologies"`
	GithubURL    string            `json:"githubUrl"`
	LiveURL      string            `json:"liveUrl"`
	Featured     bool              `json:"featured"`
	SortOrder    float64           `json:"order"`
}

// UpdateRequest is the body of a project patch. Absent fields stay untouched.
type UpdateRequest struct {
	Title        *string            `json:"title"`
	Slug         *string            `json:"slug"`
	Description  *string            `json:"description"`
	Content      *string            `json:"content"`
	Thumbnail    *string            `json:"thumbnail"`
	Images       *models.StringList `json:"images"`
	Technologies *models.StringList `json:"technologies"`
	GithubURL    *string            `json:"githubUrl"`
	LiveURL      *string            `json:"liveUrl"`
	Featured     *bool              `json:"featured"`
	SortOrder    *float64           `json:"order"`
}

// Service is the admin project handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	st  *store.Store
}

// Handler is the admin project handler.
var Handler = Service{}

// Init initializes the admin project handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, st *store.Store) {
	if app == nil || cfg == nil || st == nil {
		log.Fatal().Msg(handler.ErrNilACSFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.st = st

	app.Get(Path, s.GetAll)
	app.Post(Path, s.Create)
	app.Get(ItemPath, s.Get)
	app.Put(ItemPath, s.Update)
	app.Delete(ItemPath, s.Delete)
}

// GetAll returns every project, including unfeatured ones.
func (s *Service) GetAll(c *fiber.Ctx) error {
	list, err := s.st.GetProjects()
	if err != nil {
		return handler.StoreError(c, err)
	}

	return c.JSON(list)
}

// Get returns one project by id.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return handler.JSONError(c, fiber.StatusBadRequest, project.ErrProjectNotFound)
	}

	proj, err := s.st.GetProject(uint64(id))
	if err != nil {
		return handler.StoreError(c, err)
	}

	return c.JSON(proj)
}

// Create stores a new project.
func (s *Service) Create(c *fiber.Ctx) error {
	var req CreateRequest

	if err := c.BodyParser(&req); err != nil {
		return handler.JSONError(c, fiber.StatusBadRequest, err)
	}

	if req.Slug == "" {
		req.Slug = Slugify(req.Title)
	}

	if !ValidSlug(req.Slug) {
		return handler.JSONError(c, fiber.StatusBadRequest, ErrInvalidSlug)
	}

	proj, err := s.st.CreateProject(project.CreateParams{
		Title:        req.Title,
		Slug:         req.Slug,
		Description:  req.Description,
		Content:      req.Content,
		Thumbnail:    req.Thumbnail,
		Images:       req.Images,
		Technologies: req.Technologies,
		GithubURL:    req.GithubURL,
		LiveURL:      req.LiveURL,
		Featured:     req.Featured,
		SortOrder:    req.SortOrder,
	})
	if err != nil {
		return handler.StoreError(c, err)
	}

	log.Info().Uint64("project_id", proj.ID).Str("slug", proj.Slug).Msg("project created")

	return c.Status(fiber.StatusCreated).JSON(proj)
}

// Update applies a partial patch to a project.
func (s *Service) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return handler.JSONError(c, fiber.StatusBadRequest, project.ErrProjectNotFound)
	}

	var req UpdateRequest

	if err := c.BodyParser(&req); err != nil {
		return handler.JSONError(c, fiber.StatusBadRequest, err)
	}

	if req.Slug != nil && !ValidSlug(*req.Slug) {
		return handler.JSONError(c, fiber.StatusBadRequest, ErrInvalidSlug)
	}

	proj, err := s.st.UpdateProject(uint64(id), project.UpdateParams{
		Title:        req.Title,
		Slug:         req.Slug,
		Description:  req.Description,
		Content:      req.Content,
		Thumbnail:    req.Thumbnail,
		Images:       req.Images,
		Technologies: req.Technologies,
		GithubURL:    req.GithubURL,
		LiveURL:      req.LiveURL,
		Featured:     req.Featured,
		SortOrder:    req.SortOrder,
	})
	if err != nil {
		return handler.StoreError(c, err)
	}

	return c.JSON(proj)
}

// Delete removes a project.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return handler.JSONError(c, fiber.StatusBadRequest, project.ErrProjectNotFound)
	}

	if err := s.st.DeleteProject(uint64(id)); err != nil {
		return handler.StoreError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
