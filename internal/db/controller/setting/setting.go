// Package setting provides the key-value store for site settings.
package setting

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/webfolio/webfolio/internal/db/controller"
	"github.com/webfolio/webfolio/internal/db/models"
)

const (
	keyQueryPattern = "key = ?"
)

var (
	// ErrSettingNotFound is returned when a setting key does not resolve.
	ErrSettingNotFound = fmt.Errorf("setting %w", controller.ErrNotFound)

	// ErrSettingKeyEmpty is returned when a setting key is empty.
	ErrSettingKeyEmpty = errors.New("setting key cannot be empty")
)

// Entry is one key-value pair of a batch update.
type Entry struct {
	Key   string       `json:"key"`
	Value models.Value `json:"value"`
}

// Get retrieves a setting by key. A missing key fails with
// ErrSettingNotFound; use GetAll for presence-tolerant reads.
func Get(db *gorm.DB, key string) (*models.Setting, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	if key == "" {
		return nil, ErrSettingKeyEmpty
	}

	var s models.Setting

	result := db.Where(keyQueryPattern, key).First(&s)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSettingNotFound
		}

		return nil, result.Error
	}

	return &s, nil
}

// GetAll retrieves every setting as a flat key-value map.
func GetAll(db *gorm.DB) (map[string]models.Value, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	var settings []models.Setting

	result := db.Find(&settings)
	if result.Error != nil {
		return nil, result.Error
	}

	out := make(map[string]models.Value, len(settings))
	for _, s := range settings {
		out[s.Key] = s.Value
	}

	return out, nil
}

// Set creates or updates a setting by key (upsert operation). There is no
// plain insert path, so duplicate rows for one key cannot be created.
func Set(db *gorm.DB, key string, value models.Value) (*models.Setting, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	if key == "" {
		return nil, ErrSettingKeyEmpty
	}

	var s models.Setting

	result := db.Where(keyQueryPattern, key).First(&s)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		s = models.Setting{Key: key, Value: value}

		if err := db.Create(&s).Error; err != nil {
			return nil, err
		}

		return &s, nil
	}

	if result.Error != nil {
		return nil, result.Error
	}

	s.Value = value

	if err := db.Save(&s).Error; err != nil {
		return nil, err
	}

	return &s, nil
}

// UpdateBatch applies the entries as sequential per-key upserts. The batch
// is NOT atomic: a failure partway through leaves the earlier entries
// committed. The returned slice names the keys that were committed, so a
// caller can see exactly how far a partial application got.
func UpdateBatch(db *gorm.DB, entries []Entry) ([]string, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	committed := make([]string, 0, len(entries))

	for _, e := range entries {
		if _, err := Set(db, e.Key, e.Value); err != nil {
			return committed, err
		}

		committed = append(committed, e.Key)
	}

	return committed, nil
}

// Delete removes a setting by key. Fails with ErrSettingNotFound when
// nothing was deleted.
func Delete(db *gorm.DB, key string) error {
	if db == nil {
		return controller.ErrDBNil
	}

	if key == "" {
		return ErrSettingKeyEmpty
	}

	result := db.Where(keyQueryPattern, key).Delete(&models.Setting{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrSettingNotFound
	}

	return nil
}
