package profile

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

	err = db.AutoMigrate(&models.Profile{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func testParams() UpsertParams {
	return UpsertParams{
		Name:     "Ada Example",
		Title:    "Software Engineer",
		Bio:      "I build things.",
		Avatar:   "https://img.example/avatar.png",
		Email:    "ada@example.com",
		GitHub:   "https://github.com/ada",
		Twitter:  "https://twitter.com/ada",
		LinkedIn: "https://linkedin.com/in/ada",
		Skills:   models.StringList{"Go", "SQL"},
	}
}

func TestGet(t *testing.T) {
	t.Run("nil database", func(t *testing.T) {
		_, err := Get(nil)
		require.ErrorIs(t, err, controller.ErrDBNil)
	})

	t.Run("missing profile yields nil without error", func(t *testing.T) {
		db := setupTestDB(t)

		p, err := Get(db)
		require.NoError(t, err)
		assert.Nil(t, p)
	})

	t.Run("returns the profile after upsert", func(t *testing.T) {
		db := setupTestDB(t)

		id, err := Upsert(db, testParams())
		require.NoError(t, err)

		p, err := Get(db)
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, id, p.ID)
		assert.Equal(t, "Ada Example", p.Name)
	})
}

func TestUpsert(t *testing.T) {
	t.Run("first call creates, second patches the same row", func(t *testing.T) {
		db := setupTestDB(t)

		first, err := Upsert(db, testParams())
		require.NoError(t, err)

		params := testParams()
		params.Title = "Principal Engineer"
		params.Skills = models.StringList{"Go", "SQL", "Kubernetes"}

		second, err := Upsert(db, params)
		require.NoError(t, err)
		assert.Equal(t, first, second, "upsert must never create a second profile")

		var count int64
		require.NoError(t, db.Model(&models.Profile{}).Count(&count).Error)
		assert.EqualValues(t, 1, count)

		p, err := Get(db)
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, "Principal Engineer", p.Title)
		assert.Equal(t, models.StringList{"Go", "SQL", "Kubernetes"}, p.Skills)
	})

	t.Run("nil database", func(t *testing.T) {
		_, err := Upsert(nil, testParams())
		require.ErrorIs(t, err, controller.ErrDBNil)
	})
}

func TestUpdate(t *testing.T) {
	t.Run("patches only the provided fields", func(t *testing.T) {
		db := setupTestDB(t)

		id, err := Upsert(db, testParams())
		require.NoError(t, err)

		title := "Principal Engineer"
		resume := "https://cdn.example.com/resume.pdf"

		p, err := Update(db, id, UpdateParams{Title: &title, Resume: &resume})
		require.NoError(t, err)
		assert.Equal(t, "Principal Engineer", p.Title)
		assert.Equal(t, resume, p.Resume)
		assert.Equal(t, "Ada Example", p.Name, "absent fields stay untouched")
		assert.Equal(t, models.StringList{"Go", "SQL"}, p.Skills)
	})

	t.Run("empty patch still refreshes updated_at", func(t *testing.T) {
		db := setupTestDB(t)

		id, err := Upsert(db, testParams())
		require.NoError(t, err)

		before, err := Get(db)
		require.NoError(t, err)

		p, err := Update(db, id, UpdateParams{})
		require.NoError(t, err)
		assert.False(t, p.UpdatedAt.Before(before.UpdatedAt))
	})

	t.Run("unknown id fails with not found", func(t *testing.T) {
		db := setupTestDB(t)

		name := "Nobody"

		_, err := Update(db, 4242, UpdateParams{Name: &name})
		require.ErrorIs(t, err, ErrProfileNotFound)
	})

	t.Run("nil database", func(t *testing.T) {
		_, err := Update(nil, 1, UpdateParams{})
		require.ErrorIs(t, err, controller.ErrDBNil)
	})
}

func TestSkills(t *testing.T) {
	t.Run("add then remove restores the original list", func(t *testing.T) {
		db := setupTestDB(t)

		id, err := Upsert(db, testParams())
		require.NoError(t, err)

		p, err := AddSkill(db, id, "Rust")
		require.NoError(t, err)
		assert.Equal(t, models.StringList{"Go", "SQL", "Rust"}, p.Skills)

		p, err = RemoveSkill(db, id, "Rust")
		require.NoError(t, err)
		assert.Equal(t, models.StringList{"Go", "SQL"}, p.Skills)
	})

	t.Run("add does not deduplicate", func(t *testing.T) {
		db := setupTestDB(t)

		id, err := Upsert(db, testParams())
		require.NoError(t, err)

		p, err := AddSkill(db, id, "Go")
		require.NoError(t, err)
		assert.Equal(t, models.StringList{"Go", "SQL", "Go"}, p.Skills)
	})

	t.Run("remove drops every occurrence and keeps order", func(t *testing.T) {
		db := setupTestDB(t)

		params := testParams()
		params.Skills = models.StringList{"Go", "SQL", "Go", "Docker"}

		id, err := Upsert(db, params)
		require.NoError(t, err)

		p, err := RemoveSkill(db, id, "Go")
		require.NoError(t, err)
		assert.Equal(t, models.StringList{"SQL", "Docker"}, p.Skills)
	})

	t.Run("unknown id fails with not found", func(t *testing.T) {
		db := setupTestDB(t)

		_, err := AddSkill(db, 4242, "Go")
		require.ErrorIs(t, err, ErrProfileNotFound)
		require.ErrorIs(t, err, controller.ErrNotFound)

		_, err = RemoveSkill(db, 4242, "Go")
		require.ErrorIs(t, err, ErrProfileNotFound)
	})
}
