package models

// Setting represents one site configuration entry. Keys are namespaced by
// convention as "<group>.<field>", e.g. "seo.siteTitle".
type Setting struct {
	ID    uint64 `gorm:"primaryKey" json:"id"`
	Key   string `gorm:"uniqueIndex;size:255;not null" json:"key"`
	Value Value  `gorm:"type:text" json:"value"`
}
