package home

import (
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
	profilectl "github.com/webfolio/webfolio/internal/db/controller/profile"
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

	require.NoError(t,
		db.AutoMigrate(&models.Profile{}, &models.Project{}, &models.Setting{}),
		"failed to migrate test database")

	st := store.New(db, reactive.NewRegistry())

	app := fiber.New(fiber.Config{Views: noOpViews{}})

	(&Service{}).Init(app, &config.Config{Title: "test"}, st)

	return app, st
}

func TestGetRendersWithoutData(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, Path, nil))
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), TemplateName)
}

func TestGetRendersWithProfile(t *testing.T) {
	app, st := newTestApp(t)

	_, err := st.UpsertProfile(profilectl.UpsertParams{Name: "Ada"})
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, Path, nil))
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
