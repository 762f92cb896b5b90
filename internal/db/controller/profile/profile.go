// Package profile provides operations on the singleton profile record.
package profile

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/webfolio/webfolio/internal/db/controller"
	"github.com/webfolio/webfolio/internal/db/models"
)

var (
	// ErrProfileNotFound is returned when an operation references a profile
	// id that does not resolve.
	ErrProfileNotFound = fmt.Errorf("profile %w", controller.ErrNotFound)
)

// UpsertParams carries the full field set written by an upsert.
type UpsertParams struct {
	Name     string
	Title    string
	Bio      string
	Avatar   string
	Email    string
	GitHub   string
	Twitter  string
	LinkedIn string
	Resume   string
	Skills   models.StringList
}

// Get retrieves the singleton profile. A missing profile yields (nil, nil),
// never an error.
func Get(db *gorm.DB) (*models.Profile, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	var p models.Profile

	result := db.Order("id asc").First(&p)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, result.Error
	}

	return &p, nil
}

// Upsert creates the profile if none exists, otherwise patches the existing
// row. The read-then-write runs inside a transaction so two racing upserts
// cannot both observe "no profile" and insert twice. Returns the profile id.
func Upsert(db *gorm.DB, params UpsertParams) (uint64, error) {
	if db == nil {
		return 0, controller.ErrDBNil
	}

	var id uint64

	err := db.Transaction(func(tx *gorm.DB) error {
		var existing models.Profile

		result := tx.Order("id asc").First(&existing)
		if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}

		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			created := models.Profile{
				Name:     params.Name,
				Title:    params.Title,
				Bio:      params.Bio,
				Avatar:   params.Avatar,
				Email:    params.Email,
				GitHub:   params.GitHub,
				Twitter:  params.Twitter,
				LinkedIn: params.LinkedIn,
				Resume:   params.Resume,
				Skills:   params.Skills,
			}

			if err := tx.Create(&created).Error; err != nil {
				return err
			}

			id = created.ID

			return nil
		}

		updates := map[string]any{
			"name":       params.Name,
			"title":      params.Title,
			"bio":        params.Bio,
			"avatar":     params.Avatar,
			"email":      params.Email,
			"github":     params.GitHub,
			"twitter":    params.Twitter,
			"linkedin":   params.LinkedIn,
			"resume":     params.Resume,
			"skills":     params.Skills,
			"updated_at": time.Now(),
		}

		if err := tx.Model(&models.Profile{}).Where("id = ?", existing.ID).Updates(updates).Error; err != nil {
			return err
		}

		id = existing.ID

		return nil
	})
	if err != nil {
		return 0, err
	}

	return id, nil
}

// UpdateParams carries a partial patch; nil fields are left untouched.
type UpdateParams struct {
	Name     *string
	Title    *string
	Bio      *string
	Avatar   *string
	Email    *string
	GitHub   *string
	Twitter  *string
	LinkedIn *string
	Resume   *string
	Skills   *models.StringList
}

// Update applies a partial patch to the profile. Fails with
// ErrProfileNotFound when the id does not resolve. UpdatedAt is always
// refreshed, even for an empty patch.
func Update(db *gorm.DB, id uint64, params UpdateParams) (*models.Profile, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	var existing models.Profile

	result := db.First(&existing, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}

		return nil, result.Error
	}

	updates := map[string]any{"updated_at": time.Now()}

	if params.Name != nil {
		updates["name"] = *params.Name
	}

	if params.Title != nil {
		updates["title"] = *params.Title
	}

	if params.Bio != nil {
		updates["bio"] = *params.Bio
	}

	if params.Avatar != nil {
		updates["avatar"] = *params.Avatar
	}

	if params.Email != nil {
		updates["email"] = *params.Email
	}

	if params.GitHub != nil {
		updates["github"] = *params.GitHub
	}

	if params.Twitter != nil {
		updates["twitter"] = *params.Twitter
	}

	if params.LinkedIn != nil {
		updates["linkedin"] = *params.LinkedIn
	}

	if params.Resume != nil {
		updates["resume"] = *params.Resume
	}

	if params.Skills != nil {
		updates["skills"] = *params.Skills
	}

	if err := db.Model(&models.Profile{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}

	var updated models.Profile

	if err := db.First(&updated, id).Error; err != nil {
		return nil, err
	}

	return &updated, nil
}

// AddSkill appends a skill to the profile's skill list. The list is not
// deduplicated here; callers decide whether duplicates are acceptable.
func AddSkill(db *gorm.DB, id uint64, skill string) (*models.Profile, error) {
	return patchSkills(db, id, func(skills models.StringList) models.StringList {
		return append(skills, skill)
	})
}

// RemoveSkill removes every occurrence of a skill from the profile's skill
// list, preserving the order of the remaining entries.
func RemoveSkill(db *gorm.DB, id uint64, skill string) (*models.Profile, error) {
	return patchSkills(db, id, func(skills models.StringList) models.StringList {
		return skills.Without(skill)
	})
}

// patchSkills reads the current skill list, applies fn and writes the result
// back. Fails with ErrProfileNotFound when the id does not resolve.
func patchSkills(db *gorm.DB, id uint64, fn func(models.StringList) models.StringList) (*models.Profile, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	var p models.Profile

	result := db.First(&p, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}

		return nil, result.Error
	}

	p.Skills = fn(p.Skills)
	p.UpdatedAt = time.Now()

	if err := db.Save(&p).Error; err != nil {
		return nil, err
	}

	return &p, nil
}
