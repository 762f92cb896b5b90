package project

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/webfolio/webfolio/internal/db/controller"
	"github.com/webfolio/webfolio/internal/db/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(&models.Project{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func testParams(slug string) CreateParams {
	return CreateParams{
		Title:        "Demo " + slug,
		Slug:         slug,
		Description:  "A demo project",
		Content:      "# Demo\n\nLong form content.",
		Thumbnail:    "https://img.example/" + slug + ".png",
		Images:       models.StringList{"https://img.example/" + slug + "-1.png"},
		Technologies: models.StringList{"Go", "SQLite"},
		Featured:     false,
		SortOrder:    1,
	}
}

func strptr(s string) *string { return &s }

func TestCreate(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		db := setupTestDB(t)

		created, err := Create(db, testParams("demo"))
		require.NoError(t, err)
		require.NotZero(t, created.ID)
		assert.NotZero(t, created.CreatedAt)
		assert.NotZero(t, created.UpdatedAt)

		got, err := GetByID(db, created.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, created.Title, got.Title)
		assert.Equal(t, created.Slug, got.Slug)
		assert.Equal(t, created.Images, got.Images)
		assert.Equal(t, created.Technologies, got.Technologies)
	})

	t.Run("duplicate slug fails with conflict and keeps the first", func(t *testing.T) {
		db := setupTestDB(t)

		first, err := Create(db, testParams("demo"))
		require.NoError(t, err)

		params := testParams("demo")
		params.Title = "Imposter"

		_, err = Create(db, params)
		require.ErrorIs(t, err, ErrSlugTaken)
		require.ErrorIs(t, err, controller.ErrConflict)

		got, err := GetBySlug(db, "demo")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, first.ID, got.ID)
		assert.Equal(t, first.Title, got.Title)
	})

	t.Run("slug match is case sensitive", func(t *testing.T) {
		db := setupTestDB(t)

		_, err := Create(db, testParams("demo"))
		require.NoError(t, err)

		_, err = Create(db, testParams("Demo"))
		require.NoError(t, err)
	})
}

func TestUpdate(t *testing.T) {
	t.Run("partial patch refreshes updatedAt", func(t *testing.T) {
		db := setupTestDB(t)

		created, err := Create(db, testParams("demo"))
		require.NoError(t, err)

		updated, err := Update(db, created.ID, UpdateParams{Title: strptr("Renamed")})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", updated.Title)
		assert.Equal(t, created.Slug, updated.Slug, "unpatched fields untouched")
		assert.GreaterOrEqual(t, updated.UpdatedAt, created.UpdatedAt)
	})

	t.Run("missing id fails with not found", func(t *testing.T) {
		db := setupTestDB(t)

		_, err := Update(db, 4242, UpdateParams{Title: strptr("x")})
		require.ErrorIs(t, err, ErrProjectNotFound)
	})

	t.Run("renaming to a taken slug fails with conflict", func(t *testing.T) {
		db := setupTestDB(t)

		_, err := Create(db, testParams("one"))
		require.NoError(t, err)

		second, err := Create(db, testParams("two"))
		require.NoError(t, err)

		_, err = Update(db, second.ID, UpdateParams{Slug: strptr("one")})
		require.ErrorIs(t, err, ErrSlugTaken)
	})

	t.Run("renaming to the own slug is allowed", func(t *testing.T) {
		db := setupTestDB(t)

		created, err := Create(db, testParams("one"))
		require.NoError(t, err)

		updated, err := Update(db, created.ID, UpdateParams{Slug: strptr("one")})
		require.NoError(t, err)
		assert.Equal(t, "one", updated.Slug)
	})
}

func TestDelete(t *testing.T) {
	t.Run("removes the project everywhere", func(t *testing.T) {
		db := setupTestDB(t)

		params := testParams("demo")
		params.Featured = true

		created, err := Create(db, params)
		require.NoError(t, err)

		require.NoError(t, Delete(db, created.ID))

		got, err := GetByID(db, created.ID)
		require.NoError(t, err)
		assert.Nil(t, got)

		all, err := GetAll(db)
		require.NoError(t, err)
		assert.Empty(t, all)

		featured, err := GetFeatured(db)
		require.NoError(t, err)
		assert.Empty(t, featured)
	})

	t.Run("deleting a missing id fails with not found", func(t *testing.T) {
		db := setupTestDB(t)

		err := Delete(db, 4242)
		require.ErrorIs(t, err, ErrProjectNotFound)
	})
}

func TestQueries(t *testing.T) {
	db := setupTestDB(t)

	slugs := []string{"alpha", "beta", "gamma"}
	for _, s := range slugs {
		params := testParams(s)
		params.Featured = s == "beta"

		if s == "gamma" {
			params.Technologies = models.StringList{"Rust"}
		}

		_, err := Create(db, params)
		require.NoError(t, err)
	}

	t.Run("getAll contains exactly the created projects", func(t *testing.T) {
		all, err := GetAll(db)
		require.NoError(t, err)
		require.Len(t, all, 3)

		got := make([]string, 0, len(all))
		for _, p := range all {
			got = append(got, p.Slug)
		}

		assert.ElementsMatch(t, slugs, got)
	})

	t.Run("getAll is newest first", func(t *testing.T) {
		all, err := GetAll(db)
		require.NoError(t, err)

		for i := 1; i < len(all); i++ {
			if all[i-1].CreatedAt == all[i].CreatedAt {
				assert.Greater(t, all[i-1].ID, all[i].ID)
			} else {
				assert.Greater(t, all[i-1].CreatedAt, all[i].CreatedAt)
			}
		}
	})

	t.Run("getBySlug returns the matching project", func(t *testing.T) {
		p, err := GetBySlug(db, "beta")
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, "beta", p.Slug)
	})

	t.Run("getBySlug yields nil for a missing slug", func(t *testing.T) {
		p, err := GetBySlug(db, "missing")
		require.NoError(t, err)
		assert.Nil(t, p)
	})

	t.Run("getFeatured filters on the flag", func(t *testing.T) {
		featured, err := GetFeatured(db)
		require.NoError(t, err)
		require.Len(t, featured, 1)
		assert.Equal(t, "beta", featured[0].Slug)
	})

	t.Run("getByTechnology filters per record", func(t *testing.T) {
		goProjects, err := GetByTechnology(db, "Go")
		require.NoError(t, err)
		assert.Len(t, goProjects, 2)

		rustProjects, err := GetByTechnology(db, "Rust")
		require.NoError(t, err)
		require.Len(t, rustProjects, 1)
		assert.Equal(t, "gamma", rustProjects[0].Slug)
	})
}
