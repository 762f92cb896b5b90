// Package message provides the admin inbox API for contact submissions.
package message

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/webfolio/webfolio/internal/config"
	"github.com/webfolio/webfolio/internal/db/controller/message"
	"github.com/webfolio/webfolio/internal/store"
	"github.com/webfolio/webfolio/internal/web/handler"
)

const (
	// Path is the path of the admin message collection.
	Path = handler.AdminAPIPath + "/messages"

	// UnreadPath is the path of the unread message list.
	UnreadPath = Path + "/unread"

	// ItemPath is the path of a single message.
	ItemPath = Path + "/:id"

	// ReadPath marks a single message as read.
	ReadPath = ItemPath + "/read"
)

// Service is the admin message handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	st  *store.Store
}

// Handler is the admin message handler.
var Handler = Service{}

// Init initializes the admin message handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, st *store.Store) {
	if app == nil || cfg == nil || st == nil {
		log.Fatal().Msg(handler.ErrNilACSFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.st = st

	app.Get(UnreadPath, s.GetUnread)
	app.Get(Path, s.GetAll)
	app.Get(ItemPath, s.Get)
	app.Post(ReadPath, s.MarkAsRead)
	app.Delete(ItemPath, s.Delete)
}

// GetAll returns every message, newest first.
func (s *Service) GetAll(c *fiber.Ctx) error {
	list, err := s.st.GetMessages()
	if err != nil {
		return handler.StoreError(c, err)
	}

	return c.JSON(list)
}

// GetUnread returns the unread messages, newest first.
func (s *Service) GetUnread(c *fiber.Ctx) error {
	list, err := s.st.GetUnreadMessages()
	if err != nil {
		return handler.StoreError(c, err)
	}

	return c.JSON(list)
}

// Get returns one message by id.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return handler.JSONError(c, fiber.StatusBadRequest, message.ErrMessageNotFound)
	}

	msg, err := s.st.GetMessage(uint64(id))
	if err != nil {
		return handler.StoreError(c, err)
	}

	return c.JSON(msg)
}

// MarkAsRead flips a message to read. Repeating the call is a no-op.
func (s *Service) MarkAsRead(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return handler.JSONError(c, fiber.StatusBadRequest, message.ErrMessageNotFound)
	}

	if err := s.st.MarkMessageAsRead(uint64(id)); err != nil {
		return handler.StoreError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Delete removes a message.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return handler.JSONError(c, fiber.StatusBadRequest, message.ErrMessageNotFound)
	}

	if err := s.st.DeleteMessage(uint64(id)); err != nil {
		return handler.StoreError(c, err)
	}

	log.Info().Int("message_id", id).Msg("message deleted")

	return c.SendStatus(fiber.StatusNoContent)
}
