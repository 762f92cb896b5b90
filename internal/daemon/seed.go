package daemon

import (
	"gorm.io/gorm"

	"github.com/webfolio/webfolio/internal/config"
	"github.com/webfolio/webfolio/internal/db/models"
)

func seed(cfg *config.Config, db *gorm.DB) {
	// Seed initial data if the settings table is empty

	var count int64

	db.Model(&models.Setting{}).Count(&count)

	if count == 0 && cfg.Title != "" {
		db.Create(
			&models.Setting{
				Key:   "general.siteName",
				Value: models.StringValue(cfg.Title),
			},
		)
	}
}
