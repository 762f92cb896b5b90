// Package web wires the fiber application: public pages, the JSON APIs,
// the subscription websocket and the operational endpoints.
package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/template/html/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/webfolio/webfolio/internal/config"
	fiberlogger "github.com/webfolio/webfolio/internal/logger/adapter/fiber"
	"github.com/webfolio/webfolio/internal/store"
	adminmessage "github.com/webfolio/webfolio/internal/web/handler/admin/message"
	adminprofile "github.com/webfolio/webfolio/internal/web/handler/admin/profile"
	adminproject "github.com/webfolio/webfolio/internal/web/handler/admin/project"
	adminsettings "github.com/webfolio/webfolio/internal/web/handler/admin/settings"
	adminuploads "github.com/webfolio/webfolio/internal/web/handler/admin/uploads"
	"github.com/webfolio/webfolio/internal/web/handler/contact"
	"github.com/webfolio/webfolio/internal/web/handler/home"
	"github.com/webfolio/webfolio/internal/web/handler/profile"
	"github.com/webfolio/webfolio/internal/web/handler/project"
	"github.com/webfolio/webfolio/internal/web/handler/subscribe"
)

// CheckAlivePath is the liveness endpoint used by load balancers.
const CheckAlivePath = "/checkalive"

// MetricsPath is the prometheus scrape endpoint.
const MetricsPath = "/metrics"

// maxRequestBody must fit the largest gallery upload batch, ten 4MB files
// plus multipart framing.
const maxRequestBody = 48 << 20

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
	st           *store.Store
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for graceful shutdown of the web service.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	// stop fiber http server
	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		err := s.App.Shutdown()
		if err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

// New creates a new web service with the given configuration and store.
func New(cfg *config.Config, st *store.Store) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if st == nil {
		panic("store cannot be nil")
	}

	httpFS := http.FS(templatesFS{embeddedTemplates})
	templateEngine := html.NewFileSystem(httpFS, ".gohtml")

	// in debug mode, use local filesystem for templates
	if cfg.DevMode {
		templateEngine = html.New("./internal/web/templates", ".gohtml")
		templateEngine.ShouldReload = true

		log.Warn().Msg("debug mode enabled: using local filesystem for templates")
	}

	// create fiber app
	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			BodyLimit:      maxRequestBody,
			AppName:        cfg.Title,
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
			Views:          templateEngine,
		},
	)

	// request counting and access logging
	app.Use(countRequests())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Config:        cfg.Log,
		CheckAliveURI: CheckAlivePath,
	}))

	// serve embedded static files
	app.Use("/static",
		filesystem.New(
			filesystem.Config{
				Root:       http.FS(embeddedStaticFiles),
				PathPrefix: "static",
			},
		),
	)

	// init web service
	service := &Service{
		cfg: cfg,
		App: app,
		st:  st,
	}

	service.alive.Store(true)

	app.Get(CheckAlivePath, func(c *fiber.Ctx) error {
		if !service.alive.Load() {
			return c.SendStatus(fiber.StatusServiceUnavailable)
		}

		return c.SendString("OK")
	})

	app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	// init handlers (they register their own routes)
	home.Handler.Init(app, cfg, st)
	profile.Handler.Init(app, cfg, st)
	project.Handler.Init(app, cfg, st)
	contact.Handler.Init(app, cfg, st)
	adminprofile.Handler.Init(app, cfg, st)
	adminproject.Handler.Init(app, cfg, st)
	adminmessage.Handler.Init(app, cfg, st)
	adminsettings.Handler.Init(app, cfg, st)
	adminuploads.Handler.Init(app, cfg, st)
	subscribe.Handler.Init(app, cfg, st)

	return service
}
