// Package message provides operations on contact-form messages.
package message

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/webfolio/webfolio/internal/db/controller"
	"github.com/webfolio/webfolio/internal/db/models"
)

var (
	// ErrMessageNotFound is returned when an operation references a message
	// id that does not resolve.
	ErrMessageNotFound = fmt.Errorf("message %w", controller.ErrNotFound)
)

// SubmitParams carries the fields of a contact-form submission.
type SubmitParams struct {
	Name    string
	Email   string
	Subject string
	Body    string
}

// Submit stores a new message. Submissions always start unread; CreatedAt is
// an ISO-8601 UTC timestamp, which also sorts chronologically as a string.
func Submit(db *gorm.DB, params SubmitParams) (*models.Message, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	m := &models.Message{
		Name:      params.Name,
		Email:     params.Email,
		Subject:   params.Subject,
		Body:      params.Body,
		Read:      false,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}

	if err := db.Create(m).Error; err != nil {
		return nil, err
	}

	return m, nil
}

// GetAll retrieves all messages, newest first.
func GetAll(db *gorm.DB) ([]models.Message, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	var out []models.Message

	result := db.Order("created_at desc, id desc").Find(&out)
	if result.Error != nil {
		return nil, result.Error
	}

	return out, nil
}

// GetByID retrieves a message by id, (nil, nil) when missing.
func GetByID(db *gorm.DB, id uint64) (*models.Message, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	var m models.Message

	result := db.First(&m, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, result.Error
	}

	return &m, nil
}

// GetUnread retrieves unread messages, newest first.
func GetUnread(db *gorm.DB) ([]models.Message, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	var out []models.Message

	// map condition so gorm quotes the column; READ is reserved in mysql
	result := db.Where(map[string]any{"read": false}).Order("created_at desc, id desc").Find(&out)
	if result.Error != nil {
		return nil, result.Error
	}

	return out, nil
}

// MarkAsRead flips the read flag to true. Marking an already-read message is
// a no-op in effect, so the operation is safe to retry. Fails with
// ErrMessageNotFound when the id does not resolve.
func MarkAsRead(db *gorm.DB, id uint64) error {
	if db == nil {
		return controller.ErrDBNil
	}

	var m models.Message

	result := db.First(&m, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return ErrMessageNotFound
		}

		return result.Error
	}

	if m.Read {
		return nil
	}

	return db.Model(&m).Update("read", true).Error
}

// Delete removes a message outright. Fails with ErrMessageNotFound when
// nothing was deleted.
func Delete(db *gorm.DB, id uint64) error {
	if db == nil {
		return controller.ErrDBNil
	}

	result := db.Delete(&models.Message{}, id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrMessageNotFound
	}

	return nil
}
