package web

import (
	"embed"
	"io/fs"
	"path"
)

var (
	//go:embed static/*
	embeddedStaticFiles embed.FS

	//go:embed templates/*
	embeddedTemplates embed.FS
)

// templatesFS roots the embedded template tree at templates/ so the view
// engine resolves template names without the directory prefix.
type templatesFS struct {
	inner embed.FS
}

// Open opens name relative to the templates directory.
func (t templatesFS) Open(name string) (fs.File, error) {
	return t.inner.Open(path.Join("templates", name))
}
