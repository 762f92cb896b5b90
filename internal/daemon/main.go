// Package daemon assembles the application: database, reactive registry,
// store and web service.
package daemon

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/webfolio/webfolio/internal/config"
	"github.com/webfolio/webfolio/internal/db/dsn"
	"github.com/webfolio/webfolio/internal/db/models"
	"github.com/webfolio/webfolio/internal/logger/adapter/gormlogger"
	"github.com/webfolio/webfolio/internal/reactive"
	"github.com/webfolio/webfolio/internal/store"
	"github.com/webfolio/webfolio/internal/web"
)

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	webService *web.Service
}

// Start starts the Daemon's web service and blocks until shutdown.
func (d *Daemon) Start() error {
	go d.webService.WaitShutdown()

	return d.webService.Start(fmt.Sprintf(":%d", d.cfg.Webserver.Port))
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) *Daemon {
	if cfg == nil {
		log.Fatal().Msg("config is nil")
		return nil
	}

	var dialector gorm.Dialector

	switch cfg.DB.GormEngine {
	case config.GormEnginePostgres:
		dialector = gormpostgres.Open(dsn.Create(cfg))
	case config.GormEngineMySQL:
		dialector = gormmysql.Open(dsn.Create(cfg))
	default:
		dialector = sqlite.Open(dsn.Create(cfg))
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormlogger.New()})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
		return nil
	}

	if err = db.AutoMigrate(
		&models.Profile{},
		&models.Project{},
		&models.Message{},
		&models.Setting{},
	); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
		return nil
	}

	seed(cfg, db)

	st := store.New(db, reactive.NewRegistry())

	return &Daemon{
		cfg:        cfg,
		webService: web.New(cfg, st),
	}
}
