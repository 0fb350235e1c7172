// Package reports runs the read-only aggregate queries behind /reports.
//
// Queries are built with goqu for the active dialect and scanned with sqlx
// over the same connection pool GORM uses.
//
// # Usage
//
//	repo, err := reports.NewRepository(db)
//	overdue, err := repo.OverdueLoans(ctx, time.Now())
package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"
	"github.com/jmoiron/sqlx"

	"github.com/readhub/library/internal/config"
	"github.com/readhub/library/internal/database"
	"github.com/readhub/library/internal/entities"
)

const (
	DefaultTopBooksLimit = 10
	MaxTopBooksLimit     = 100
)

type Repository struct {
	db      *sqlx.DB
	dialect goqu.DialectWrapper
}

// NewRepository wraps the GORM pool in sqlx; no new connections are opened.
func NewRepository(db *database.Database) (*Repository, error) {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return nil, fmt.Errorf("reports: get sql handle: %w", err)
	}

	dialect := "sqlite3"
	if db.Driver == config.DatabaseDriverPostgres {
		dialect = "postgres"
	}

	return &Repository{
		db:      sqlx.NewDb(sqlDB, db.SQLDriverName()),
		dialect: goqu.Dialect(dialect),
	}, nil
}

// OverdueLoans lists Borrowed loans due strictly before asOf, most overdue first.
// Dates are compared in Go because SQLite stores them as driver-formatted text.
func (r *Repository) OverdueLoans(ctx context.Context, asOf time.Time) ([]entities.OverdueLoan, error) {
	query, args, err := r.dialect.
		From(goqu.T("loans").As("l")).
		Join(goqu.T("books").As("b"), goqu.On(goqu.I("b.id").Eq(goqu.I("l.book_id")))).
		Join(goqu.T("users").As("u"), goqu.On(goqu.I("u.id").Eq(goqu.I("l.user_id")))).
		Select(
			goqu.I("l.id").As("loan_id"),
			goqu.I("l.user_id").As("user_id"),
			goqu.I("l.book_id").As("book_id"),
			goqu.I("b.title").As("book_title"),
			goqu.I("u.name").As("user_name"),
			goqu.I("l.loan_date").As("loan_date"),
			goqu.I("l.expected_return_date").As("expected_return_date"),
		).
		Where(goqu.I("l.status").Eq(string(entities.LoanStatusBorrowed))).
		Order(goqu.I("l.expected_return_date").Asc(), goqu.I("l.id").Asc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build overdue query: %w", err)
	}

	var rows []entities.OverdueLoan
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("overdue loans: %w", err)
	}

	today := DateOnly(asOf)
	overdue := make([]entities.OverdueLoan, 0, len(rows))
	for _, row := range rows {
		due := DateOnly(row.ExpectedReturnDate)
		if !due.Before(today) {
			continue
		}
		row.DaysOverdue = int(today.Sub(due).Hours() / 24)
		overdue = append(overdue, row)
	}
	return overdue, nil
}

// TopBooks ranks books by loan count. limit is clamped to [1, MaxTopBooksLimit]
// with DefaultTopBooksLimit for non-positive values.
func (r *Repository) TopBooks(ctx context.Context, limit int) ([]entities.TopBook, error) {
	if limit <= 0 {
		limit = DefaultTopBooksLimit
	}
	if limit > MaxTopBooksLimit {
		limit = MaxTopBooksLimit
	}

	query, args, err := r.dialect.
		From(goqu.T("loans").As("l")).
		Join(goqu.T("books").As("b"), goqu.On(goqu.I("b.id").Eq(goqu.I("l.book_id")))).
		Select(
			goqu.I("b.id").As("book_id"),
			goqu.I("b.title").As("book_title"),
			goqu.COUNT(goqu.I("l.id")).As("loan_count"),
		).
		GroupBy(goqu.I("b.id"), goqu.I("b.title")).
		Order(goqu.C("loan_count").Desc(), goqu.I("b.id").Asc()).
		Limit(uint(limit)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build top books query: %w", err)
	}

	books := []entities.TopBook{}
	if err := r.db.SelectContext(ctx, &books, query, args...); err != nil {
		return nil, fmt.Errorf("top books: %w", err)
	}
	return books, nil
}

// DateOnly drops the clock part, keeping the calendar date in UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
