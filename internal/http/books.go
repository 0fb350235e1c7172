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

// BookStore defines database operations for the catalogue.
type BookStore interface {
	CreateBook(ctx context.Context, book *entities.Book) error
	GetBookByID(ctx context.Context, id uint) (*entities.Book, error)
	ListBooks(ctx context.Context, search string) ([]entities.Book, error)
	DeleteBook(ctx context.Context, id uint) error
}

type BooksController struct {
	store  BookStore
	audit  *audit.Service
	logger *zap.Logger
}

func NewBooksController(store BookStore, auditSvc *audit.Service, logger *zap.Logger) *BooksController {
	return &BooksController{store: store, audit: auditSvc, logger: logger}
}

// ListBooks returns the catalogue, filtered by ?search= on the title.
// GET /books
func (bc *BooksController) ListBooks(c *gin.Context) {
	books, err := bc.store.ListBooks(c.Request.Context(), c.Query("search"))
	if err != nil {
		respondInternalError(c, bc.logger, err, "list books")
		return
	}

	c.JSON(http.StatusOK, dto.NewBookList(books))
}

// CreateBook adds a book to the catalogue.
// POST /books
func (bc *BooksController) CreateBook(c *gin.Context) {
	var req dto.BookCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(c, err)
		return
	}

	book := &entities.Book{
		Title:       dto.Value(req.Title),
		Author:      dto.Value(req.Author),
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}
	if err := bc.store.CreateBook(c.Request.Context(), book); err != nil {
		respondInternalError(c, bc.logger, err, "create book")
		return
	}

	bc.audit.LogCreate(nil, "book", book.ID, "Added "+book.Title, map[string]any{"author": book.Author})
	respondCreated(c, dto.NewBookPublic(book))
}

// GetBook returns a single book.
// GET /books/:id
func (bc *BooksController) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := bc.store.GetBookByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, bc.logger, err, "book", "get book")
		return
	}

	c.JSON(http.StatusOK, dto.NewBookPublic(book))
}

// DeleteBook removes a book together with its loans and favorites.
// DELETE /books/:id
func (bc *BooksController) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := bc.store.DeleteBook(c.Request.Context(), id); err != nil {
		respondError(c, bc.logger, err, "book", "delete book")
		return
	}

	bc.audit.LogDelete(nil, "book", id, "Deleted book")
	c.Status(http.StatusNoContent)
}
