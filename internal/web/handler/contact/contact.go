// Package contact handles public contact-form submissions.
package contact

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/webfolio/webfolio/internal/config"
	"github.com/webfolio/webfolio/internal/db/controller/message"
	"github.com/webfolio/webfolio/internal/store"
	"github.com/webfolio/webfolio/internal/web/handler"
)

// Path is the path of the contact submission API.
const Path = handler.APIPath + "/contact"

// ErrContactFormDisabled is returned when submissions are switched off in
// the site settings.
var ErrContactFormDisabled = errors.New("contact form is disabled")

var validate = validator.New()

// Request is a contact-form submission body.
type Request struct {
	Name    string `json:"name" validate:"required,max=255"`
	Email   string `json:"email" validate:"required,email,max=255"`
	Subject string `json:"subject" validate:"max=255"`
	Message string `json:"message" validate:"required,max=10000"`
}

// Service is the contact handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	st  *store.Store
}

// Handler is the contact handler.
var Handler = Service{}

// Init initializes the contact handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, st *store.Store) {
	if app == nil || cfg == nil || st == nil {
		log.Fatal().Msg(handler.ErrNilACSFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.st = st

	app.Post(Path, s.Post)
}

// Post validates and stores a contact-form submission.
func (s *Service) Post(c *fiber.Ctx) error {
	settings, err := s.st.ResolveSettings()
	if err != nil {
		return handler.StoreError(c, err)
	}

	if !settings.General.EnableContactForm {
		return handler.JSONError(c, fiber.StatusForbidden, ErrContactFormDisabled)
	}

	var req Request

	if err := c.BodyParser(&req); err != nil {
		return handler.JSONError(c, fiber.StatusBadRequest, err)
	}

	if err := validate.Struct(&req); err != nil {
		return handler.JSONError(c, fiber.StatusBadRequest, err)
	}

	msg, err := s.st.SubmitMessage(message.SubmitParams{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Body:    req.Message,
	})
	if err != nil {
		return handler.StoreError(c, err)
	}

	log.Info().Uint64("message_id", msg.ID).Msg("contact message submitted")

	return c.Status(fiber.StatusCreated).JSON(msg)
}
