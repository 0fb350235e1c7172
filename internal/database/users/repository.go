// Package users provides database operations for library members.
//
// # Usage
//
//	repo := users.NewRepository(db)
//	user, err := repo.GetUserByEmail(ctx, "ana@example.com")
package users

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/readhub/library/internal/database"
	"github.com/readhub/library/internal/entities"
)

// Repository handles all user database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser inserts a user. The unique index on email is the only duplicate
// check, so concurrent registrations cannot both succeed.
func (r *Repository) CreateUser(ctx context.Context, user *entities.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if database.IsDuplicateKey(err) {
		return entities.ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// GetUserByID retrieves a user by ID.
func (r *Repository) GetUserByID(ctx context.Context, id uint) (*entities.User, error) {
	var user entities.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		return nil, database.NotFound(err)
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by exact email.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	var user entities.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, database.NotFound(err)
	}
	return &user, nil
}

// UpdatePassword overwrites the stored credential.
func (r *Repository) UpdatePassword(ctx context.Context, id uint, password string) error {
	result := r.db.WithContext(ctx).Model(&entities.User{}).
		Where("id = ?", id).
		Update("password", password)
	if result.Error != nil {
		return fmt.Errorf("update password: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return entities.ErrNotFound
	}
	return nil
}

// DeleteUser removes a user; loans, favorites and tickets go with it via ON DELETE CASCADE.
func (r *Repository) DeleteUser(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entities.User{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return entities.ErrNotFound
	}
	return nil
}
