package config

import (
	"github.com/webfolio/webfolio/internal/logger"
)

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Upload    Upload
	Webserver Webserver
}

// Webserver implement webserver settings.
type Webserver struct {
	CacheEnabled   bool   // true = enable cache, false = disable cache
	CleanPath      bool   // use clean path middleware to allow multi slash requests
	DisableRecover bool   // disable recover middleware
	Domain         string // domain name for the webserver
	Port           int    // listening port for the webserver
	ShutDownTime   int    // wait time for shutdown
	URL            string // base url for the webserver
}

// Upload holds the external image upload provider settings.
type Upload struct {
	Endpoint string // base URL of the upload provider
	Token    string // bearer token for the provider, empty disables auth
	Timeout  int    // request timeout in seconds, 0 uses the default
}
