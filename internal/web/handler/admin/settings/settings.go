// Package settings provides the admin site-settings API.
package settings

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/webfolio/webfolio/internal/config"
	"github.com/webfolio/webfolio/internal/db/controller/setting"
	"github.com/webfolio/webfolio/internal/store"
	"github.com/webfolio/webfolio/internal/web/handler"
)

const (
	// Path is the path of the admin settings API.
	Path = handler.AdminAPIPath + "/settings"

	// ResolvedPath returns the defaulted, structured configuration.
	ResolvedPath = Path + "/resolved"

	// ItemPath is the path of a single setting key.
	ItemPath = Path + "/:key"
)

// ErrNoEntries is returned when a batch update carries no entries.
var ErrNoEntries = errors.New("no settings to update")

// BatchRequest is the body of a batch settings update.
type BatchRequest struct {
	Entries []setting.Entry `json:"entries"`
}

// BatchResponse reports which keys of a batch were committed. On a partial
// failure Committed holds the keys written before the failing entry.
type BatchResponse struct {
	Committed []string `json:"committed"`
	Error     string   `json:"error,omitempty"`
}

// Service is the admin settings handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	st  *store.Store
}

// Handler is the admin settings handler.
var Handler = Service{}

// Init initializes the admin settings handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, st *store.Store) {
	if app == nil || cfg == nil || st == nil {
		log.Fatal().Msg(handler.ErrNilACSFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.st = st

	app.Get(ResolvedPath, s.GetResolved)
	app.Get(Path, s.GetAll)
	app.Put(Path, s.UpdateBatch)
	app.Delete(ItemPath, s.Delete)
}

// GetAll returns the raw key-value settings map.
func (s *Service) GetAll(c *fiber.Ctx) error {
	all, err := s.st.GetSettings()
	if err != nil {
		return handler.StoreError(c, err)
	}

	return c.JSON(all)
}

// GetResolved returns the structured configuration with defaults applied.
func (s *Service) GetResolved(c *fiber.Ctx) error {
	resolved, err := s.st.ResolveSettings()
	if err != nil {
		return handler.StoreError(c, err)
	}

	return c.JSON(resolved)
}

// UpdateBatch applies a batch of settings sequentially. Entries are not
// atomic as a group: a mid-batch failure leaves the earlier entries
// committed, and the response names exactly those keys.
func (s *Service) UpdateBatch(c *fiber.Ctx) error {
	var req BatchRequest

	if err := c.BodyParser(&req); err != nil {
		return handler.JSONError(c, fiber.StatusBadRequest, err)
	}

	if len(req.Entries) == 0 {
		return handler.JSONError(c, fiber.StatusBadRequest, ErrNoEntries)
	}

	committed, err := s.st.UpdateSettings(req.Entries)
	if err != nil {
		log.Error().Err(err).Strs("committed", committed).Msg("settings batch failed partway")

		return c.Status(fiber.StatusInternalServerError).JSON(BatchResponse{
			Committed: committed,
			Error:     err.Error(),
		})
	}

	return c.JSON(BatchResponse{Committed: committed})
}

// Delete removes one setting key, reverting it to its default.
func (s *Service) Delete(c *fiber.Ctx) error {
	if err := s.st.DeleteSetting(c.Params("key")); err != nil {
		return handler.StoreError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
