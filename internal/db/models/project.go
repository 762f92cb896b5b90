package models

// Project represents a portfolio project.
type Project struct {
	// ID is the unique identifier for the project.
	ID uint64 `gorm:"primaryKey" json:"id"`
	// Title is the display title.
	Title string `gorm:"size:255;not null" json:"title"`
	// Slug is the URL-safe identifier, unique across all projects.
	Slug string `gorm:"uniqueIndex;size:255;not null" json:"slug"`
	// Description is the short teaser text.
	Description string `gorm:"type:text" json:"description"`
	// Content is the long-form body and may embed markup.
	Content string `gorm:"type:text" json:"content"`
	// Thumbnail is the URL of the card image.
	Thumbnail string `gorm:"size:1024;not null" json:"thumbnail"`
	// Images holds gallery image URLs in display order.
	Images StringList `gorm:"type:text" json:"images"`
	// Technologies lists the tech stack tags.
	Technologies StringList `gorm:"type:text" json:"technologies"`
	// GithubURL and LiveURL are optional external links.
	GithubURL string `gorm:"size:1024" json:"githubUrl,omitempty"`
	LiveURL   string `gorm:"size:1024" json:"liveUrl,omitempty"`
	// Featured marks projects surfaced on the home page.
	Featured bool `gorm:"index" json:"featured"`
	// SortOrder is the custom ordering key ("order" is reserved in SQL).
	SortOrder float64 `gorm:"column:sort_order" json:"order"`
	// CreatedAt and UpdatedAt are unix milliseconds (managed by GORM).
	CreatedAt int64 `gorm:"autoCreateTime:milli" json:"createdAt"`
	UpdatedAt int64 `gorm:"autoUpdateTime:milli" json:"updatedAt"`
}
