// Package project provides CRUD operations for portfolio projects.
package project

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/webfolio/webfolio/internal/db/controller"
	"github.com/webfolio/webfolio/internal/db/models"
)

const (
	slugQueryPattern = "slug = ?"
)

var (
	// ErrProjectNotFound is returned when an operation references a project
	// id that does not resolve.
	ErrProjectNotFound = fmt.Errorf("project %w", controller.ErrNotFound)

	// ErrSlugTaken is returned when creating or renaming a project to a slug
	// already owned by a different project. The match is case-sensitive.
	ErrSlugTaken = fmt.Errorf("project slug %w", controller.ErrConflict)
)

// CreateParams carries the full field set of a new project.
type CreateParams struct {
	Title        string
	Slug         string
	Description  string
	Content      string
	Thumbnail    string
	Images       models.StringList
	Technologies models.StringList
	GithubURL    string
	LiveURL      string
	Featured     bool
	SortOrder    float64
}

// UpdateParams carries a partial patch; nil fields are left untouched.
type UpdateParams struct {
	Title        *string
	Slug         *string
	Description  *string
	Content      *string
	Thumbnail    *string
	Images       *models.StringList
	Technologies *models.StringList
	GithubURL    *string
	LiveURL      *string
	Featured     *bool
	SortOrder    *float64
}

// Create stores a new project. Fails with ErrSlugTaken when the slug is
// already in use. CreatedAt and UpdatedAt are stamped by the model.
func Create(db *gorm.DB, params CreateParams) (*models.Project, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	var existing models.Project

	result := db.Where(slugQueryPattern, params.Slug).First(&existing)
	if result.Error == nil {
		return nil, ErrSlugTaken
	}

	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	p := &models.Project{
		Title:        params.Title,
		Slug:         params.Slug,
		Description:  params.Description,
		Content:      params.Content,
		Thumbnail:    params.Thumbnail,
		Images:       params.Images,
		Technologies: params.Technologies,
		GithubURL:    params.GithubURL,
		LiveURL:      params.LiveURL,
		Featured:     params.Featured,
		SortOrder:    params.SortOrder,
	}

	if err := db.Create(p).Error; err != nil {
		return nil, err
	}

	return p, nil
}

// Update applies a partial patch to a project. Fails with ErrProjectNotFound
// when the id does not resolve and with ErrSlugTaken when the patch renames
// the project to a slug owned by a different id. UpdatedAt is always
// refreshed, even for an empty patch.
func Update(db *gorm.DB, id uint64, params UpdateParams) (*models.Project, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	var p models.Project

	result := db.First(&p, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}

		return nil, result.Error
	}

	if params.Slug != nil && *params.Slug != p.Slug {
		var other models.Project

		result = db.Where(slugQueryPattern, *params.Slug).First(&other)
		if result.Error == nil && other.ID != id {
			return nil, ErrSlugTaken
		}

		if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, result.Error
		}
	}

	updates := map[string]any{
		"updated_at": time.Now().UnixMilli(),
	}

	if params.Title != nil {
		updates["title"] = *params.Title
	}

	if params.Slug != nil {
		updates["slug"] = *params.Slug
	}

	if params.Description != nil {
		updates["description"] = *params.Description
	}

	if params.Content != nil {
		updates["content"] = *params.Content
	}

	if params.Thumbnail != nil {
		updates["thumbnail"] = *params.Thumbnail
	}

	if params.Images != nil {
		updates["images"] = *params.Images
	}

	if params.Technologies != nil {
		updates["technologies"] = *params.Technologies
	}

	if params.GithubURL != nil {
		updates["github_url"] = *params.GithubURL
	}

	if params.LiveURL != nil {
		updates["live_url"] = *params.LiveURL
	}

	if params.Featured != nil {
		updates["featured"] = *params.Featured
	}

	if params.SortOrder != nil {
		updates["sort_order"] = *params.SortOrder
	}

	if err := db.Model(&models.Project{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}

	result = db.First(&p, id)
	if result.Error != nil {
		return nil, result.Error
	}

	return &p, nil
}

// Delete removes a project outright. Deleting an id that does not resolve
// fails with ErrProjectNotFound; this operation is deliberately not
// idempotent so a retried delete surfaces the earlier success.
func Delete(db *gorm.DB, id uint64) error {
	if db == nil {
		return controller.ErrDBNil
	}

	result := db.Delete(&models.Project{}, id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrProjectNotFound
	}

	return nil
}

// GetByID retrieves a project by id, (nil, nil) when missing.
func GetByID(db *gorm.DB, id uint64) (*models.Project, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	var p models.Project

	result := db.First(&p, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, result.Error
	}

	return &p, nil
}

// GetBySlug retrieves a project by slug, (nil, nil) when missing. Should the
// uniqueness rule ever be bypassed, the lowest id wins deterministically.
func GetBySlug(db *gorm.DB, slug string) (*models.Project, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	var p models.Project

	result := db.Where(slugQueryPattern, slug).Order("id asc").First(&p)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, result.Error
	}

	return &p, nil
}

// GetAll retrieves all projects, newest first.
func GetAll(db *gorm.DB) ([]models.Project, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	var out []models.Project

	result := db.Order("created_at desc, id desc").Find(&out)
	if result.Error != nil {
		return nil, result.Error
	}

	return out, nil
}

// GetFeatured retrieves featured projects, newest first.
func GetFeatured(db *gorm.DB) ([]models.Project, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	var out []models.Project

	result := db.Where("featured = ?", true).Order("created_at desc, id desc").Find(&out)
	if result.Error != nil {
		return nil, result.Error
	}

	return out, nil
}

// GetByTechnology retrieves projects tagged with the given technology,
// newest first. The technology list lives in a serialized column, so this is
// a full scan with a per-record filter.
func GetByTechnology(db *gorm.DB, tech string) ([]models.Project, error) {
	all, err := GetAll(db)
	if err != nil {
		return nil, err
	}

	out := make([]models.Project, 0, len(all))

	for _, p := range all {
		if p.Technologies.Contains(tech) {
			out = append(out, p)
		}
	}

	return out, nil
}
