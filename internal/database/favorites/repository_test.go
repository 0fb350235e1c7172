package favorites

import (
	"context"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/readhub/library/internal/database"
	"github.com/readhub/library/internal/entities"
)

func setupTestDB(t *testing.T) (*gorm.DB, *Repository, func()) {
	t.Helper()
	dbPath := "./test_favorites_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"

	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}

	return db.DB, NewRepository(db.DB), cleanup
}

func seed(t *testing.T, db *gorm.DB) (*entities.User, *entities.Book) {
	t.Helper()
	user := &entities.User{Name: "Ana", Email: "ana@x.com", Password: "p1"}
	require.NoError(t, db.Create(user).Error)
	book := &entities.Book{Title: "Dom Casmurro", Author: "Machado de Assis"}
	require.NoError(t, db.Create(book).Error)
	return user, book
}

func TestRepository_AddFavorite(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()
	user, book := seed(t, db)

	fav, created, err := repo.AddFavorite(ctx, user.ID, book.ID)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, user.ID, fav.UserID)
	require.NotNil(t, fav.Book)
	assert.Equal(t, "Dom Casmurro", fav.Book.Title)

	again, created, err := repo.AddFavorite(ctx, user.ID, book.ID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, fav.ID, again.ID)

	var count int64
	db.Model(&entities.Favorite{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestRepository_AddFavorite_Concurrent(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()
	user, book := seed(t, db)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := repo.AddFavorite(context.Background(), user.ID, book.ID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	var count int64
	db.Model(&entities.Favorite{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestRepository_AddFavorite_UnknownReferences(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()
	user, book := seed(t, db)

	_, _, err := repo.AddFavorite(ctx, 999, book.ID)
	assert.ErrorIs(t, err, entities.ErrNotFound)

	_, _, err = repo.AddFavorite(ctx, user.ID, 999)
	assert.ErrorIs(t, err, entities.ErrNotFound)
}

func TestRepository_ListAndRemove(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()
	user, book := seed(t, db)
	second := &entities.Book{Title: "Iracema", Author: "José de Alencar"}
	require.NoError(t, db.Create(second).Error)

	_, _, err := repo.AddFavorite(ctx, user.ID, book.ID)
	require.NoError(t, err)
	_, _, err = repo.AddFavorite(ctx, user.ID, second.ID)
	require.NoError(t, err)

	favs, err := repo.ListFavorites(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, favs, 2)
	assert.Equal(t, "Iracema", favs[1].Book.Title)

	removed, err := repo.RemoveFavorite(ctx, user.ID, book.ID)
	require.NoError(t, err)
	require.NotNil(t, removed)
	assert.Equal(t, book.ID, removed.BookID)

	removed, err = repo.RemoveFavorite(ctx, user.ID, book.ID)
	require.NoError(t, err, "removing twice is a no-op")
	assert.Nil(t, removed)

	favs, err = repo.ListFavorites(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, favs, 1)
	assert.Equal(t, second.ID, favs[0].BookID)

	favs, err = repo.ListFavorites(ctx, 999)
	require.NoError(t, err)
	assert.Empty(t, favs)
}
