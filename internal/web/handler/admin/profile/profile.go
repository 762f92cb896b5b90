// Package profile provides the admin profile and skill API.
package profile

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/webfolio/webfolio/internal/config"
	"github.com/webfolio/webfolio/internal/db/controller/profile"
	"github.com/webfolio/webfolio/internal/db/models"
	"github.com/webfolio/webfolio/internal/store"
	"github.com/webfolio/webfolio/internal/web/handler"
)

const (
	// Path is the path of the admin profile API.
	Path = handler.AdminAPIPath + "/profile"

	// SkillsPath is the path of the skill list API.
	SkillsPath = Path + "/skills"
)

// ErrSkillEmpty is returned when a skill mutation carries an empty skill.
var ErrSkillEmpty = errors.New("skill cannot be empty")

// UpsertRequest is the body of a profile upsert. It always carries the full
// field set; the stored row is replaced wholesale.
type UpsertRequest struct {
	Name     string            `json:"name"`
	Title    string            `json:"title"`
	Bio      string            `json:"bio"`
	Avatar   string            `json:"avatar"`
	Email    string            `json:"email"`
	GitHub   string            `json:"github"`
	Twitter  string            `json:"twitter"`
	LinkedIn string            `json:"linkedin"`
	Resume   string            `json:"resume"`
	Skills   models.StringList `json:"skills"`
}

// UpdateRequest is the body of a partial profile patch. Absent fields stay
// untouched.
type UpdateRequest struct {
	Name     *string            `json:"name"`
	Title    *string            `json:"title"`
	Bio      *string            `json:"bio"`
	Avatar   *string            `json:"avatar"`
	Email    *string            `json:"email"`
	GitHub   *string            `json:"github"`
	Twitter  *string            `json:"twitter"`
	LinkedIn *string            `json:"linkedin"`
	Resume   *string            `json:"resume"`
	Skills   *models.StringList `json:"skills"`
}

// SkillRequest is the body of a skill add or remove.
type SkillRequest struct {
	Skill string `json:"skill"`
}

// Service is the admin profile handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	st  *store.Store
}

// Handler is the admin profile handler.
var Handler = Service{}

// Init initializes the admin profile handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, st *store.Store) {
	if app == nil || cfg == nil || st == nil {
		log.Fatal().Msg(handler.ErrNilACSFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.st = st

	app.Get(Path, s.Get)
	app.Put(Path, s.Upsert)
	app.Patch(Path, s.Update)
	app.Post(SkillsPath, s.AddSkill)
	app.Delete(SkillsPath, s.RemoveSkill)
}

// Get returns the profile as stored, or a JSON null before the first upsert.
func (s *Service) Get(c *fiber.Ctx) error {
	prof, err := s.st.GetProfile()
	if err != nil {
		return handler.StoreError(c, err)
	}

	return c.JSON(prof)
}

// Upsert creates or replaces the singleton profile.
func (s *Service) Upsert(c *fiber.Ctx) error {
	var req UpsertRequest

	if err := c.BodyParser(&req); err != nil {
		return handler.JSONError(c, fiber.StatusBadRequest, err)
	}

	id, err := s.st.UpsertProfile(profile.UpsertParams{
		Name:     req.Name,
		Title:    req.Title,
		Bio:      req.Bio,
		Avatar:   req.Avatar,
		Email:    req.Email,
		GitHub:   req.GitHub,
		Twitter:  req.Twitter,
		LinkedIn: req.LinkedIn,
		Resume:   req.Resume,
		Skills:   req.Skills,
	})
	if err != nil {
		return handler.StoreError(c, err)
	}

	log.Info().Uint64("profile_id", id).Msg("profile upserted")

	return c.JSON(fiber.Map{"id": id})
}

// Update applies a partial patch to the existing profile.
func (s *Service) Update(c *fiber.Ctx) error {
	var req UpdateRequest

	if err := c.BodyParser(&req); err != nil {
		return handler.JSONError(c, fiber.StatusBadRequest, err)
	}

	prof, err := s.st.GetProfile()
	if err != nil {
		return handler.StoreError(c, err)
	}

	if prof == nil {
		return handler.JSONError(c, fiber.StatusNotFound, profile.ErrProfileNotFound)
	}

	updated, err := s.st.UpdateProfile(prof.ID, profile.UpdateParams{
		Name:     req.Name,
		Title:    req.Title,
		Bio:      req.Bio,
		Avatar:   req.Avatar,
		Email:    req.Email,
		GitHub:   req.GitHub,
		Twitter:  req.Twitter,
		LinkedIn: req.LinkedIn,
		Resume:   req.Resume,
		Skills:   req.Skills,
	})
	if err != nil {
		return handler.StoreError(c, err)
	}

	return c.JSON(updated)
}

// AddSkill appends a skill to the profile.
func (s *Service) AddSkill(c *fiber.Ctx) error {
	req, prof, err := s.parseSkillRequest(c)
	if err != nil || prof == nil {
		return err
	}

	updated, err := s.st.AddSkill(prof.ID, req.Skill)
	if err != nil {
		return handler.StoreError(c, err)
	}

	return c.JSON(updated)
}

// RemoveSkill removes every occurrence of a skill from the profile.
func (s *Service) RemoveSkill(c *fiber.Ctx) error {
	req, prof, err := s.parseSkillRequest(c)
	if err != nil || prof == nil {
		return err
	}

	updated, err := s.st.RemoveSkill(prof.ID, req.Skill)
	if err != nil {
		return handler.StoreError(c, err)
	}

	return c.JSON(updated)
}

// parseSkillRequest parses and validates a skill mutation body and resolves
// the profile it applies to. On failure the response is already written and
// the returned error is what the route should return.
func (s *Service) parseSkillRequest(c *fiber.Ctx) (*SkillRequest, *models.Profile, error) {
	var req SkillRequest

	if err := c.BodyParser(&req); err != nil {
		return nil, nil, handler.JSONError(c, fiber.StatusBadRequest, err)
	}

	if req.Skill == "" {
		return nil, nil, handler.JSONError(c, fiber.StatusBadRequest, ErrSkillEmpty)
	}

	prof, err := s.st.GetProfile()
	if err != nil {
		return nil, nil, handler.StoreError(c, err)
	}

	if prof == nil {
		return nil, nil, handler.JSONError(c, fiber.StatusNotFound, profile.ErrProfileNotFound)
	}

	return &req, prof, nil
}
