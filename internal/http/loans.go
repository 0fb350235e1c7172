package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/readhub/library/internal/audit"
	"github.com/readhub/library/internal/dto"
	"github.com/readhub/library/internal/entities"
)

// LoanStore defines database operations for loans.
type LoanStore interface {
	CreateLoan(ctx context.Context, userID, bookID uint, loanDate, expectedReturn time.Time) (*entities.Loan, error)
	GetLoanByID(ctx context.Context, id uint) (*entities.Loan, error)
	ListLoans(ctx context.Context, userID *uint) ([]entities.Loan, error)
	ReturnLoan(ctx context.Context, id uint, returnedOn time.Time) (*entities.Loan, error)
}

type LoansController struct {
	store  LoanStore
	audit  *audit.Service
	logger *zap.Logger
}

func NewLoansController(store LoanStore, auditSvc *audit.Service, logger *zap.Logger) *LoansController {
	return &LoansController{store: store, audit: auditSvc, logger: logger}
}

// CreateLoan lends a book to a member.
// POST /loans
func (lc *LoansController) CreateLoan(c *gin.Context) {
	var req dto.LoanCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(c, err)
		return
	}

	loanDate, err := dto.ParseDate(req.LoanDate)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	expected, err := dto.ParseDate(req.ExpectedReturnDate)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	loan, err := lc.store.CreateLoan(c.Request.Context(), *req.UserID, *req.BookID, loanDate, expected)
	if err != nil {
		respondError(c, lc.logger, err, "user or book", "create loan")
		return
	}

	lc.audit.LogCreate(&loan.UserID, "loan", loan.ID, "Borrowed book", map[string]any{
		"book_id":              loan.BookID,
		"expected_return_date": req.ExpectedReturnDate,
	})
	respondCreated(c, dto.NewLoanPublic(loan))
}

// GetLoan returns a single loan with its book.
// GET /loans/:id
func (lc *LoansController) GetLoan(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	loan, err := lc.store.GetLoanByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, lc.logger, err, "loan", "get loan")
		return
	}

	c.JSON(http.StatusOK, dto.NewLoanPublic(loan))
}

// ListLoans returns loans newest first, optionally for one member.
// GET /loans?user_id=
func (lc *LoansController) ListLoans(c *gin.Context) {
	userID, ok := parseOptionalQueryID(c, "user_id")
	if !ok {
		return
	}

	loans, err := lc.store.ListLoans(c.Request.Context(), userID)
	if err != nil {
		respondInternalError(c, lc.logger, err, "list loans")
		return
	}

	c.JSON(http.StatusOK, dto.NewLoanList(loans))
}

// ReturnLoan closes a loan on the given date.
// PUT /loans/:id/return
func (lc *LoansController) ReturnLoan(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.LoanReturn
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(c, err)
		return
	}
	returnedOn, err := dto.ParseDate(req.RealReturnDate)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	loan, err := lc.store.ReturnLoan(c.Request.Context(), id, returnedOn)
	if err != nil {
		respondError(c, lc.logger, err, "loan", "return loan")
		return
	}

	lc.audit.LogUpdate(&loan.UserID, "loan", loan.ID, "loan_return", "Returned book", map[string]any{
		"real_return_date": req.RealReturnDate,
	})
	c.JSON(http.StatusOK, dto.NewLoanPublic(loan))
}
