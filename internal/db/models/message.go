package models

// Message is a contact-form submission.
// Read transitions false to true on first admin view and never back.
type Message struct {
	ID      uint64 `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:255;not null" json:"name"`
	Email   string `gorm:"size:255;not null" json:"email"`
	Subject string `gorm:"size:255" json:"subject"`
	Body    string `gorm:"column:message;type:text" json:"message"`
	Read    bool   `gorm:"index;not null;default:false" json:"read"`
	// CreatedAt is an ISO-8601 string, set by the message controller.
	CreatedAt string `gorm:"size:64;index" json:"createdAt"`
}
