// Package loans records books being lent to users and returned.
//
// A loan is created Borrowed and moves to Returned exactly once. Every read
// eagerly loads the book so callers can render titles without a second query.
//
// # Usage
//
//	repo := loans.NewRepository(db)
//	loan, err := repo.CreateLoan(ctx, userID, bookID, loanDate, dueDate)
package loans

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/readhub/library/internal/database"
	"github.com/readhub/library/internal/entities"
)

// Repository handles all loan database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new loans repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateLoan opens a Borrowed loan. Both the user and the book must exist.
func (r *Repository) CreateLoan(ctx context.Context, userID, bookID uint, loanDate, expectedReturn time.Time) (*entities.Loan, error) {
	db := r.db.WithContext(ctx)

	if err := database.RequireRow(db, &entities.User{}, userID); err != nil {
		return nil, err
	}
	if err := database.RequireRow(db, &entities.Book{}, bookID); err != nil {
		return nil, err
	}

	loan := &entities.Loan{
		UserID:             userID,
		BookID:             bookID,
		LoanDate:           loanDate,
		ExpectedReturnDate: expectedReturn,
		Status:             entities.LoanStatusBorrowed,
	}
	if err := db.Create(loan).Error; err != nil {
		return nil, fmt.Errorf("create loan: %w", err)
	}

	return r.GetLoanByID(ctx, loan.ID)
}

// GetLoanByID retrieves a loan with its book.
func (r *Repository) GetLoanByID(ctx context.Context, id uint) (*entities.Loan, error) {
	var loan entities.Loan
	err := r.db.WithContext(ctx).Preload("Book").First(&loan, id).Error
	if err != nil {
		return nil, database.NotFound(err)
	}
	return &loan, nil
}

// ListLoans returns loans newest first, restricted to one user when userID is set.
func (r *Repository) ListLoans(ctx context.Context, userID *uint) ([]entities.Loan, error) {
	loans := []entities.Loan{}
	query := r.db.WithContext(ctx).Preload("Book").Order("loan_date DESC").Order("id DESC")
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}
	err := query.Find(&loans).Error
	return loans, err
}

// ReturnLoan marks a loan as Returned on the given date. Returning an already
// returned loan overwrites the return date.
func (r *Repository) ReturnLoan(ctx context.Context, id uint, returnedOn time.Time) (*entities.Loan, error) {
	result := r.db.WithContext(ctx).Model(&entities.Loan{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":           entities.LoanStatusReturned,
			"real_return_date": returnedOn,
		})
	if result.Error != nil {
		return nil, fmt.Errorf("return loan: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, entities.ErrNotFound
	}
	return r.GetLoanByID(ctx, id)
}
