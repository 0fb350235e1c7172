package entities

import (
	"time"
)

type LoanStatus string

const (
	LoanStatusBorrowed LoanStatus = "Borrowed"
	LoanStatusReturned LoanStatus = "Returned"
)

type TicketStatus string

const (
	TicketStatusOpen     TicketStatus = "Open"
	TicketStatusResolved TicketStatus = "Resolved"
)

// User is a library member. Password holds whatever the configured
// PasswordHasher produced; in the default "plain" mode that is the password itself.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255" json:"name"`
	Email     string    `gorm:"uniqueIndex;size:255" json:"email"`
	Password  string    `gorm:"size:255" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

type Book struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"index;size:255" json:"title"`
	Author      string    `gorm:"size:255" json:"author"`
	Description *string   `gorm:"type:text" json:"description"`
	ImageURL    *string   `gorm:"type:text" json:"image_url"` // usually a base64 data URI
	CreatedAt   time.Time `json:"created_at"`
}

type Loan struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	UserID             uint       `gorm:"index;not null" json:"user_id"`
	BookID             uint       `gorm:"index;not null" json:"book_id"`
	LoanDate           time.Time  `gorm:"type:date;index" json:"loan_date"`
	ExpectedReturnDate time.Time  `gorm:"type:date" json:"expected_return_date"`
	RealReturnDate     *time.Time `gorm:"type:date" json:"real_return_date"`
	Status             LoanStatus `gorm:"size:50;default:'Borrowed'" json:"status"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Book *Book `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE" json:"book,omitempty"`
}

// Favorite links a user to a book. The composite unique index keeps one row per pair.
type Favorite struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;uniqueIndex:idx_favorites_user_book" json:"user_id"`
	BookID uint `gorm:"not null;uniqueIndex:idx_favorites_user_book;index" json:"book_id"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Book *Book `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE" json:"book,omitempty"`
}

type SupportTicket struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	UserID    *uint        `gorm:"index" json:"user_id,omitempty"`
	Name      string       `gorm:"size:255" json:"name"`
	Email     string       `gorm:"size:255" json:"email"`
	Subject   string       `gorm:"size:255" json:"subject"`
	Message   string       `gorm:"type:text" json:"message"`
	Status    TicketStatus `gorm:"size:50;default:'Open'" json:"status"`
	CreatedAt time.Time    `gorm:"index" json:"created_at"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (User) TableName() string {
	return "users"
}

func (Book) TableName() string {
	return "books"
}

func (Loan) TableName() string {
	return "loans"
}

func (Favorite) TableName() string {
	return "favorites"
}

func (SupportTicket) TableName() string {
	return "support_tickets"
}

// IsReturned reports whether the loan has been closed.
func (l *Loan) IsReturned() bool {
	return l.Status == LoanStatusReturned
}

// AllModels lists every table the application owns, in dependency order.
func AllModels() []any {
	return []any{
		&User{},
		&Book{},
		&Loan{},
		&Favorite{},
		&SupportTicket{},
		&AuditEvent{},
	}
}
