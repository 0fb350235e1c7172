package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/readhub/library/internal/audit"
	"github.com/readhub/library/internal/dto"
	"github.com/readhub/library/internal/entities"
)

// FavoriteStore defines database operations for a member's favorite books.
type FavoriteStore interface {
	AddFavorite(ctx context.Context, userID, bookID uint) (*entities.Favorite, bool, error)
	ListFavorites(ctx context.Context, userID uint) ([]entities.Favorite, error)
	RemoveFavorite(ctx context.Context, userID, bookID uint) (*entities.Favorite, error)
}

type FavoritesController struct {
	store  FavoriteStore
	audit  *audit.Service
	logger *zap.Logger
}

func NewFavoritesController(store FavoriteStore, auditSvc *audit.Service, logger *zap.Logger) *FavoritesController {
	return &FavoritesController{store: store, audit: auditSvc, logger: logger}
}

// AddFavorite marks a book as favorite. Re-adding returns the existing row.
// POST /favorites?user_id=
func (fc *FavoritesController) AddFavorite(c *gin.Context) {
	userID, ok := parseQueryID(c, "user_id")
	if !ok {
		return
	}

	var req dto.FavoriteCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(c, err)
		return
	}

	fav, created, err := fc.store.AddFavorite(c.Request.Context(), userID, *req.BookID)
	if err != nil {
		respondError(c, fc.logger, err, "user or book", "add favorite")
		return
	}

	if created {
		fc.audit.LogCreate(&userID, "favorite", fav.ID, "Added favorite", map[string]any{"book_id": fav.BookID})
	}
	respondCreated(c, dto.NewFavoritePublic(fav))
}

// ListFavorites returns a member's favorites with their books.
// GET /favorites?user_id=
func (fc *FavoritesController) ListFavorites(c *gin.Context) {
	userID, ok := parseQueryID(c, "user_id")
	if !ok {
		return
	}

	favs, err := fc.store.ListFavorites(c.Request.Context(), userID)
	if err != nil {
		respondInternalError(c, fc.logger, err, "list favorites")
		return
	}

	c.JSON(http.StatusOK, dto.NewFavoriteList(favs))
}

// RemoveFavorite unmarks a book. Succeeds even when it was not a favorite.
// DELETE /favorites/:book_id?user_id=
func (fc *FavoritesController) RemoveFavorite(c *gin.Context) {
	userID, ok := parseQueryID(c, "user_id")
	if !ok {
		return
	}
	bookID, ok := parseIDParam(c, "book_id")
	if !ok {
		return
	}

	removed, err := fc.store.RemoveFavorite(c.Request.Context(), userID, bookID)
	if err != nil {
		respondInternalError(c, fc.logger, err, "remove favorite")
		return
	}

	if removed != nil {
		fc.audit.LogDelete(&userID, "favorite", removed.ID, "Removed favorite")
	}
	c.Status(http.StatusNoContent)
}
