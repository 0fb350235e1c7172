// Package favorites provides database operations for users' favorite books.
//
// Adding is idempotent: the composite unique index on (user_id, book_id)
// guarantees a single row per pair even under concurrent requests.
//
// # Usage
//
//	repo := favorites.NewRepository(db)
//	fav, created, err := repo.AddFavorite(ctx, userID, bookID)
package favorites

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/readhub/library/internal/database"
	"github.com/readhub/library/internal/entities"
)

// Repository handles all favorite database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new favorites repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// AddFavorite marks a book as a favorite of the user. If the pair already
// exists the existing row is returned and created is false.
func (r *Repository) AddFavorite(ctx context.Context, userID, bookID uint) (*entities.Favorite, bool, error) {
	db := r.db.WithContext(ctx)

	existing, err := r.find(db, userID, bookID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, entities.ErrNotFound) {
		return nil, false, err
	}

	if err := database.RequireRow(db, &entities.User{}, userID); err != nil {
		return nil, false, err
	}
	if err := database.RequireRow(db, &entities.Book{}, bookID); err != nil {
		return nil, false, err
	}

	fav := &entities.Favorite{UserID: userID, BookID: bookID}
	err = db.Create(fav).Error
	if database.IsDuplicateKey(err) {
		// lost a race with a concurrent add of the same pair
		existing, err := r.find(db, userID, bookID)
		return existing, false, err
	}
	if err != nil {
		return nil, false, fmt.Errorf("add favorite: %w", err)
	}

	created, err := r.find(db, userID, bookID)
	return created, true, err
}

// ListFavorites returns the user's favorites with their books, oldest first.
func (r *Repository) ListFavorites(ctx context.Context, userID uint) ([]entities.Favorite, error) {
	favorites := []entities.Favorite{}
	err := r.db.WithContext(ctx).Preload("Book").
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&favorites).Error
	return favorites, err
}

// RemoveFavorite deletes the pair if present and returns the removed row.
// Removing an absent pair is not an error and returns nil.
func (r *Repository) RemoveFavorite(ctx context.Context, userID, bookID uint) (*entities.Favorite, error) {
	db := r.db.WithContext(ctx)

	var fav entities.Favorite
	res := db.Where("user_id = ? AND book_id = ?", userID, bookID).Limit(1).Find(&fav)
	if res.Error != nil {
		return nil, fmt.Errorf("find favorite: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}

	del := db.Delete(&entities.Favorite{}, fav.ID)
	if del.Error != nil {
		return nil, fmt.Errorf("delete favorite: %w", del.Error)
	}
	// a concurrent delete got there first
	if del.RowsAffected == 0 {
		return nil, nil
	}
	return &fav, nil
}

func (r *Repository) find(db *gorm.DB, userID, bookID uint) (*entities.Favorite, error) {
	var fav entities.Favorite
	err := db.Preload("Book").
		Where("user_id = ? AND book_id = ?", userID, bookID).
		First(&fav).Error
	if err != nil {
		return nil, database.NotFound(err)
	}
	return &fav, nil
}
