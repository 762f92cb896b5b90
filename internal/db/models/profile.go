// Package models contains database model definitions.
package models

import (
	"time"
)

// Profile represents the site owner. At most one row ever exists; the
// profile controller enforces the singleton through a transactional upsert.
type Profile struct {
	// ID is the unique identifier for the profile.
	ID uint64 `gorm:"primaryKey" json:"id"`
	// Name is the display name of the site owner.
	Name string `gorm:"size:255;not null" json:"name"`
	// Title is the professional headline shown under the name.
	Title string `gorm:"size:255" json:"title"`
	// Bio is the free-form about text.
	Bio string `gorm:"type:text" json:"bio"`
	// Avatar is the URL of the profile image, owned by the upload provider.
	Avatar string `gorm:"size:1024" json:"avatar"`
	// Email is the public contact address.
	Email string `gorm:"size:255" json:"email"`
	// GitHub, Twitter and LinkedIn are the social profile URLs.
	GitHub   string `gorm:"column:github;size:1024" json:"github"`
	Twitter  string `gorm:"size:1024" json:"twitter"`
	LinkedIn string `gorm:"column:linkedin;size:1024" json:"linkedin"`
	// Resume is an optional URL to a downloadable resume.
	Resume string `gorm:"size:1024" json:"resume,omitempty"`
	// Skills is the ordered skill list. Duplicates are not prevented here.
	Skills StringList `gorm:"type:text" json:"skills"`
	// UpdatedAt is refreshed on every upsert (managed by GORM).
	UpdatedAt time.Time `json:"updatedAt"`
}
