package handler

const (
	// BaseLayout is the default path for layout templates.
	BaseLayout = "layouts/base"

	// RootPath is the root path of the route group.
	RootPath = "/"

	// APIPath is the prefix of the public JSON API.
	APIPath = "/api"

	// AdminAPIPath is the prefix of the admin JSON API.
	AdminAPIPath = "/admin/api"

	// ErrNilACSFatalLogMsg is used if the app, cfg or store pointer is nil.
	ErrNilACSFatalLogMsg = "app, cfg or store is nil"
)
