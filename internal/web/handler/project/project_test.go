package project

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/webfolio/webfolio/internal/config"
	projectctl "github.com/webfolio/webfolio/internal/db/controller/project"
	"github.com/webfolio/webfolio/internal/db/models"
	"github.com/webfolio/webfolio/internal/reactive"
	"github.com/webfolio/webfolio/internal/store"
)

// noOpViews is a minimal Fiber Views engine used for tests.
type noOpViews struct{}

func (noOpViews) Load() error { return nil }

func (noOpViews) Render(w io.Writer, name string, _ interface{}, _ ...string) error {
	_, _ = io.WriteString(w, name)
	return nil
}

func newTestApp(t *testing.T) (*fiber.App, *store.Store) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	require.NoError(t, db.AutoMigrate(&models.Project{}, &models.Setting{}), "failed to migrate test database")

	st := store.New(db, reactive.NewRegistry())

	app := fiber.New(fiber.Config{Views: noOpViews{}})

	(&Service{}).Init(app, &config.Config{Title: "test"}, st)

	return app, st
}

func seedProjects(t *testing.T, st *store.Store) {
	t.Helper()

	_, err := st.CreateProject(projectctl.CreateParams{
		Title:        "Tracker",
		Slug:         "tracker",
		Thumbnail:    "https://cdn.example.com/tracker.png",
		Technologies: models.StringList{"Go", "Postgres"},
		Featured:     true,
	})
	require.NoError(t, err)

	_, err = st.CreateProject(projectctl.CreateParams{
		Title:        "Gallery",
		Slug:         "gallery",
		Thumbnail:    "https://cdn.example.com/gallery.png",
		Technologies: models.StringList{"TypeScript"},
	})
	require.NoError(t, err)
}

func getJSON(t *testing.T, app *fiber.App, path string, out any) int {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)

	resp, err := app.Test(req)
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}

	return resp.StatusCode
}

func TestGetAll(t *testing.T) {
	app, st := newTestApp(t)
	seedProjects(t, st)

	var list []models.Project

	status := getJSON(t, app, ListPath, &list)
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, list, 2)
}

func TestGetAllFilteredByTechnology(t *testing.T) {
	app, st := newTestApp(t)
	seedProjects(t, st)

	var list []models.Project

	status := getJSON(t, app, ListPath+"?technology=Go", &list)
	assert.Equal(t, http.StatusOK, status)
	require.Len(t, list, 1)
	assert.Equal(t, "tracker", list[0].Slug)

	status = getJSON(t, app, ListPath+"?technology=Rust", &list)
	assert.Equal(t, http.StatusOK, status)
	assert.Empty(t, list)
}

func TestGetFeatured(t *testing.T) {
	app, st := newTestApp(t)
	seedProjects(t, st)

	var list []models.Project

	status := getJSON(t, app, FeaturedPath, &list)
	assert.Equal(t, http.StatusOK, status)
	require.Len(t, list, 1)
	assert.Equal(t, "tracker", list[0].Slug)
}

func TestGetBySlug(t *testing.T) {
	app, st := newTestApp(t)
	seedProjects(t, st)

	var proj models.Project

	status := getJSON(t, app, "/api/projects/slug/gallery", &proj)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Gallery", proj.Title)
}

func TestGetBySlugMissingReturnsNull(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/projects/slug/nope", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, "null", string(body))
}

func TestProjectPage(t *testing.T) {
	app, st := newTestApp(t)
	seedProjects(t, st)

	req := httptest.NewRequest(http.MethodGet, "/projects/tracker", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), TemplateName)
}

func TestProjectPageNotFound(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/projects/nope", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
