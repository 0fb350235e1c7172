// Package books provides database operations for the book catalogue.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	matches, err := repo.ListBooks(ctx, "casmurro")
package books

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/readhub/library/internal/database"
	"github.com/readhub/library/internal/entities"
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateBook inserts a book into the catalogue.
func (r *Repository) CreateBook(ctx context.Context, book *entities.Book) error {
	if err := r.db.WithContext(ctx).Create(book).Error; err != nil {
		return fmt.Errorf("create book: %w", err)
	}
	return nil
}

// GetBookByID retrieves a book by its ID.
func (r *Repository) GetBookByID(ctx context.Context, id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.WithContext(ctx).First(&book, id).Error
	if err != nil {
		return nil, database.NotFound(err)
	}
	return &book, nil
}

// ListBooks returns the catalogue, optionally filtered by a case-insensitive
// substring of the title.
func (r *Repository) ListBooks(ctx context.Context, search string) ([]entities.Book, error) {
	books := []entities.Book{}
	query := r.db.WithContext(ctx).Order("id ASC")
	if search = strings.TrimSpace(search); search != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	err := query.Find(&books).Error
	return books, err
}

// DeleteBook removes a book; its loans and favorites go with it via ON DELETE CASCADE.
func (r *Repository) DeleteBook(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entities.Book{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete book: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return entities.ErrNotFound
	}
	return nil
}
