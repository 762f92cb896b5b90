// Package uploads forwards admin image uploads to the external provider.
package uploads

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/webfolio/webfolio/internal/config"
	"github.com/webfolio/webfolio/internal/store"
	"github.com/webfolio/webfolio/internal/upload"
	"github.com/webfolio/webfolio/internal/web/handler"
)

// Path is the path of the upload proxy, keyed by slot.
const Path = handler.AdminAPIPath + "/uploads/:slot"

// ErrNoFiles is returned when the multipart body carries no files.
var ErrNoFiles = errors.New("no files in upload request")

// Response carries the provider URLs of a completed upload, in input order.
type Response struct {
	URLs []string `json:"urls"`
}

// Service is the upload handler service.
type Service struct {
	handler.Service
	cfg      *config.Config
	st       *store.Store
	uploader *upload.Client
}

// Handler is the upload handler.
var Handler = Service{}

// Init initializes the upload handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, st *store.Store) {
	if app == nil || cfg == nil || st == nil {
		log.Fatal().Msg(handler.ErrNilACSFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.st = st
	s.uploader = upload.NewClient(cfg.Upload)

	app.Post(Path, s.Post)
}

// Post validates the files against the slot limits and forwards them to the
// provider. The group query parameter ties gallery uploads to a project.
func (s *Service) Post(c *fiber.Ctx) error {
	slot, err := upload.SlotByName(c.Params("slot"))
	if err != nil {
		return handler.JSONError(c, fiber.StatusNotFound, err)
	}

	form, err := c.MultipartForm()
	if err != nil {
		return handler.JSONError(c, fiber.StatusBadRequest, err)
	}

	var files []upload.File

	for _, headers := range form.File {
		for _, header := range headers {
			f, err := header.Open()
			if err != nil {
				return handler.JSONError(c, fiber.StatusBadRequest, err)
			}

			data, err := io.ReadAll(f)

			_ = f.Close()

			if err != nil {
				return handler.JSONError(c, fiber.StatusBadRequest, err)
			}

			files = append(files, upload.File{
				Name:        header.Filename,
				ContentType: header.Header.Get("Content-Type"),
				Data:        data,
			})
		}
	}

	if len(files) == 0 {
		return handler.JSONError(c, fiber.StatusBadRequest, ErrNoFiles)
	}

	urls, err := s.uploader.Upload(c.Context(), slot, c.Query("group"), files)

	switch {
	case errors.Is(err, upload.ErrTooManyFiles), errors.Is(err, upload.ErrFileTooLarge):
		return handler.JSONError(c, fiber.StatusRequestEntityTooLarge, err)
	case errors.Is(err, upload.ErrUpstream):
		log.Error().Err(err).Str("slot", slot.Name).Msg("upload provider failed")

		return handler.JSONError(c, fiber.StatusBadGateway, err)
	case err != nil:
		return handler.JSONError(c, fiber.StatusInternalServerError, err)
	}

	log.Info().Str("slot", slot.Name).Int("files", len(files)).Msg("upload forwarded")

	return c.Status(fiber.StatusCreated).JSON(Response{URLs: urls})
}
