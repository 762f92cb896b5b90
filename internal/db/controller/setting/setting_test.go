package setting

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

// setupTestDB creates a throwaway SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(&models.Setting{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

// seedSettings inserts test data into the database.
func seedSettings(t *testing.T, db *gorm.DB, settings []models.Setting) {
	t.Helper()

	for _, s := range settings {
		err := db.Create(&s).Error
		require.NoError(t, err, "failed to seed test data")
	}
}

func TestGet(t *testing.T) {
	testCases := []struct {
		name          string
		nilDB         bool
		key           string
		seedData      []models.Setting
		expectedError error
		expectedValue models.Value
	}{
		{
			name:          "nil database",
			nilDB:         true,
			key:           "general.siteName",
			expectedError: controller.ErrDBNil,
		},
		{
			name:          "empty key",
			key:           "",
			expectedError: ErrSettingKeyEmpty,
		},
		{
			name:          "setting not found",
			key:           "general.nonexistent",
			expectedError: ErrSettingNotFound,
		},
		{
			name: "successful get",
			key:  "general.siteName",
			seedData: []models.Setting{
				{Key: "general.siteName", Value: models.StringValue("My Site")},
			},
			expectedValue: models.StringValue("My Site"),
		},
		{
			name: "boolean value round trips",
			key:  "general.enableBlog",
			seedData: []models.Setting{
				{Key: "general.enableBlog", Value: models.BoolValue(false)},
			},
			expectedValue: models.BoolValue(false),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var db *gorm.DB
			if !tc.nilDB {
				db = setupTestDB(t)
				seedSettings(t, db, tc.seedData)
			}

			s, err := Get(db, tc.key)

			if tc.expectedError != nil {
				require.Error(t, err)
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, s)
			} else {
				require.NoError(t, err)
				require.NotNil(t, s)
				assert.Equal(t, tc.key, s.Key)
				assert.Equal(t, tc.expectedValue, s.Value)
			}
		})
	}
}

func TestSet(t *testing.T) {
	t.Run("creates a missing key", func(t *testing.T) {
		db := setupTestDB(t)

		s, err := Set(db, "seo.siteTitle", models.StringValue("X"))
		require.NoError(t, err)
		assert.Equal(t, "seo.siteTitle", s.Key)
		assert.Equal(t, models.StringValue("X"), s.Value)
	})

	t.Run("updates an existing key without duplicating it", func(t *testing.T) {
		db := setupTestDB(t)

		first, err := Set(db, "seo.siteTitle", models.StringValue("X"))
		require.NoError(t, err)

		second, err := Set(db, "seo.siteTitle", models.StringValue("Y"))
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID, "upsert must patch the same row")

		var count int64
		require.NoError(t, db.Model(&models.Setting{}).Where(keyQueryPattern, "seo.siteTitle").Count(&count).Error)
		assert.EqualValues(t, 1, count)

		got, err := Get(db, "seo.siteTitle")
		require.NoError(t, err)
		assert.Equal(t, models.StringValue("Y"), got.Value)
	})

	t.Run("empty key rejected", func(t *testing.T) {
		db := setupTestDB(t)

		_, err := Set(db, "", models.StringValue("X"))
		require.ErrorIs(t, err, ErrSettingKeyEmpty)
	})
}

func TestGetAll(t *testing.T) {
	db := setupTestDB(t)

	seedSettings(t, db, []models.Setting{
		{Key: "general.siteName", Value: models.StringValue("My Site")},
		{Key: "general.enableBlog", Value: models.BoolValue(true)},
		{Key: "theme.fontSize", Value: models.NumberValue(16)},
	})

	all, err := GetAll(db)
	require.NoError(t, err)

	assert.Len(t, all, 3)
	assert.Equal(t, models.StringValue("My Site"), all["general.siteName"])
	assert.Equal(t, models.BoolValue(true), all["general.enableBlog"])
	assert.Equal(t, models.NumberValue(16), all["theme.fontSize"])
}

func TestUpdateBatch(t *testing.T) {
	t.Run("applies all entries", func(t *testing.T) {
		db := setupTestDB(t)

		committed, err := UpdateBatch(db, []Entry{
			{Key: "seo.siteTitle", Value: models.StringValue("X")},
			{Key: "seo.ogImage", Value: models.StringValue("https://img.example/og.png")},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"seo.siteTitle", "seo.ogImage"}, committed)
	})

	t.Run("same key twice is last write wins", func(t *testing.T) {
		db := setupTestDB(t)

		_, err := UpdateBatch(db, []Entry{
			{Key: "seo.siteTitle", Value: models.StringValue("X")},
			{Key: "seo.siteTitle", Value: models.StringValue("Y")},
		})
		require.NoError(t, err)

		got, err := Get(db, "seo.siteTitle")
		require.NoError(t, err)
		assert.Equal(t, models.StringValue("Y"), got.Value)

		var count int64
		require.NoError(t, db.Model(&models.Setting{}).Count(&count).Error)
		assert.EqualValues(t, 1, count, "no duplicate rows for one key")
	})

	t.Run("mid-batch failure leaves earlier entries committed", func(t *testing.T) {
		db := setupTestDB(t)

		committed, err := UpdateBatch(db, []Entry{
			{Key: "general.siteName", Value: models.StringValue("My Site")},
			{Key: "", Value: models.StringValue("boom")},
			{Key: "general.siteUrl", Value: models.StringValue("https://example.com")},
		})
		require.ErrorIs(t, err, ErrSettingKeyEmpty)
		assert.Equal(t, []string{"general.siteName"}, committed)

		// first entry committed, third never applied
		_, err = Get(db, "general.siteName")
		assert.NoError(t, err)

		_, err = Get(db, "general.siteUrl")
		assert.ErrorIs(t, err, ErrSettingNotFound)
	})
}

func TestDelete(t *testing.T) {
	testCases := []struct {
		name          string
		key           string
		seedData      []models.Setting
		expectedError error
	}{
		{
			name:          "empty key",
			key:           "",
			expectedError: ErrSettingKeyEmpty,
		},
		{
			name:          "missing key",
			key:           "general.siteName",
			expectedError: ErrSettingNotFound,
		},
		{
			name: "successful delete",
			key:  "general.siteName",
			seedData: []models.Setting{
				{Key: "general.siteName", Value: models.StringValue("My Site")},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db := setupTestDB(t)
			seedSettings(t, db, tc.seedData)

			err := Delete(db, tc.key)

			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				return
			}

			require.NoError(t, err)

			_, err = Get(db, tc.key)
			assert.ErrorIs(t, err, ErrSettingNotFound)
		})
	}
}
