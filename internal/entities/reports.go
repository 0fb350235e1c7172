package entities

import "time"

// OverdueLoan is a Borrowed loan whose expected return date has passed.
// It is a read model assembled by the reports queries, not a table.
type OverdueLoan struct {
	LoanID             uint      `db:"loan_id"`
	UserID             uint      `db:"user_id"`
	BookID             uint      `db:"book_id"`
	BookTitle          string    `db:"book_title"`
	UserName           string    `db:"user_name"`
	LoanDate           time.Time `db:"loan_date"`
	ExpectedReturnDate time.Time `db:"expected_return_date"`
	DaysOverdue        int       `db:"-"`
}

// TopBook is a book ranked by how many times it has been lent.
type TopBook struct {
	BookID    uint   `db:"book_id"`
	BookTitle string `db:"book_title"`
	LoanCount int64  `db:"loan_count"`
}
