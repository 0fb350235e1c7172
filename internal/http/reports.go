package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/readhub/library/internal/database/reports"
	"github.com/readhub/library/internal/dto"
	"github.com/readhub/library/internal/entities"
)

// ReportStore provides the read-only aggregate queries.
type ReportStore interface {
	OverdueLoans(ctx context.Context, asOf time.Time) ([]entities.OverdueLoan, error)
	TopBooks(ctx context.Context, limit int) ([]entities.TopBook, error)
}

type ReportsController struct {
	store  ReportStore
	logger *zap.Logger
	now    func() time.Time
}

func NewReportsController(store ReportStore, logger *zap.Logger) *ReportsController {
	return &ReportsController{store: store, logger: logger, now: time.Now}
}

// Overdue lists Borrowed loans past their expected return date.
// GET /reports/overdue?as_of=YYYY-MM-DD (defaults to today)
func (rc *ReportsController) Overdue(c *gin.Context) {
	asOf := reports.DateOnly(rc.now())
	if raw := c.Query("as_of"); raw != "" {
		parsed, err := dto.ParseDate(raw)
		if err != nil {
			respondBadRequest(c, err.Error())
			return
		}
		asOf = parsed
	}

	rows, err := rc.store.OverdueLoans(c.Request.Context(), asOf)
	if err != nil {
		respondInternalError(c, rc.logger, err, "overdue report")
		return
	}

	c.JSON(http.StatusOK, dto.NewOverdueReport(rows))
}

// TopBooks ranks books by number of loans.
// GET /reports/top-books?limit=
func (rc *ReportsController) TopBooks(c *gin.Context) {
	limit := reports.DefaultTopBooksLimit
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}

	rows, err := rc.store.TopBooks(c.Request.Context(), limit)
	if err != nil {
		respondInternalError(c, rc.logger, err, "top books report")
		return
	}

	c.JSON(http.StatusOK, dto.NewTopBooksReport(rows))
}
