package database

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/readhub/library/internal/entities"
)

// IsDuplicateKey reports whether err is a unique constraint violation. GORM
// translates it for both drivers; the message check covers driver versions
// that return the raw error.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}

// NotFound maps gorm.ErrRecordNotFound to entities.ErrNotFound and passes anything else through.
func NotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.ErrNotFound
	}
	return err
}

// RequireRow returns entities.ErrNotFound unless model has a row with the given id.
func RequireRow(db *gorm.DB, model any, id uint) error {
	var count int64
	if err := db.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return entities.ErrNotFound
	}
	return nil
}
