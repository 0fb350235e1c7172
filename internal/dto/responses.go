package dto

import (
	"time"

	"github.com/readhub/library/internal/entities"
)

type UserPublic struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type BookPublic struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Description *string   `json:"description"`
	ImageURL    *string   `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
}

type LoanPublic struct {
	ID                 uint        `json:"id"`
	UserID             uint        `json:"user_id"`
	BookID             uint        `json:"book_id"`
	LoanDate           Date        `json:"loan_date"`
	ExpectedReturnDate Date        `json:"expected_return_date"`
	Status             string      `json:"status"`
	RealReturnDate     *Date       `json:"real_return_date"`
	Book               *BookPublic `json:"book,omitempty"`
}

type FavoritePublic struct {
	ID     uint        `json:"id"`
	UserID uint        `json:"user_id"`
	BookID uint        `json:"book_id"`
	Book   *BookPublic `json:"book,omitempty"`
}

type TicketPublic struct {
	ID        uint      `json:"id"`
	UserID    *uint     `json:"user_id,omitempty"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type OverdueReport struct {
	LoanID             uint   `json:"loan_id"`
	UserID             uint   `json:"user_id"`
	BookID             uint   `json:"book_id"`
	BookTitle          string `json:"book_title"`
	UserName           string `json:"user_name"`
	LoanDate           Date   `json:"loan_date"`
	ExpectedReturnDate Date   `json:"expected_return_date"`
	DaysOverdue        int    `json:"days_overdue"`
}

type TopBookReport struct {
	BookID    uint   `json:"book_id"`
	BookTitle string `json:"book_title"`
	LoanCount int64  `json:"loan_count"`
}

type AuditEventPublic struct {
	ID          uint      `json:"id"`
	UserID      *uint     `json:"user_id,omitempty"`
	EventType   string    `json:"event_type"`
	Action      string    `json:"action"`
	Description string    `json:"description"`
	EntityType  string    `json:"entity_type,omitempty"`
	EntityID    *uint     `json:"entity_id,omitempty"`
	Metadata    string    `json:"metadata,omitempty"`
	Status      string    `json:"status"`
	ErrorMsg    string    `json:"error_msg,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewUserPublic(u *entities.User) UserPublic {
	return UserPublic{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt}
}

func NewBookPublic(b *entities.Book) BookPublic {
	return BookPublic{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		Description: b.Description,
		ImageURL:    b.ImageURL,
		CreatedAt:   b.CreatedAt,
	}
}

func NewBookList(books []entities.Book) []BookPublic {
	out := make([]BookPublic, 0, len(books))
	for i := range books {
		out = append(out, NewBookPublic(&books[i]))
	}
	return out
}

func NewLoanPublic(l *entities.Loan) LoanPublic {
	out := LoanPublic{
		ID:                 l.ID,
		UserID:             l.UserID,
		BookID:             l.BookID,
		LoanDate:           NewDate(l.LoanDate),
		ExpectedReturnDate: NewDate(l.ExpectedReturnDate),
		Status:             string(l.Status),
		RealReturnDate:     datePtr(l.RealReturnDate),
	}
	if l.Book != nil {
		book := NewBookPublic(l.Book)
		out.Book = &book
	}
	return out
}

func NewLoanList(loans []entities.Loan) []LoanPublic {
	out := make([]LoanPublic, 0, len(loans))
	for i := range loans {
		out = append(out, NewLoanPublic(&loans[i]))
	}
	return out
}

func NewFavoritePublic(f *entities.Favorite) FavoritePublic {
	out := FavoritePublic{ID: f.ID, UserID: f.UserID, BookID: f.BookID}
	if f.Book != nil {
		book := NewBookPublic(f.Book)
		out.Book = &book
	}
	return out
}

func NewFavoriteList(favs []entities.Favorite) []FavoritePublic {
	out := make([]FavoritePublic, 0, len(favs))
	for i := range favs {
		out = append(out, NewFavoritePublic(&favs[i]))
	}
	return out
}

func NewTicketPublic(t *entities.SupportTicket) TicketPublic {
	return TicketPublic{
		ID:        t.ID,
		UserID:    t.UserID,
		Name:      t.Name,
		Email:     t.Email,
		Subject:   t.Subject,
		Message:   t.Message,
		Status:    string(t.Status),
		CreatedAt: t.CreatedAt,
	}
}

func NewTicketList(tickets []entities.SupportTicket) []TicketPublic {
	out := make([]TicketPublic, 0, len(tickets))
	for i := range tickets {
		out = append(out, NewTicketPublic(&tickets[i]))
	}
	return out
}

func NewOverdueReport(rows []entities.OverdueLoan) []OverdueReport {
	out := make([]OverdueReport, 0, len(rows))
	for _, r := range rows {
		out = append(out, OverdueReport{
			LoanID:             r.LoanID,
			UserID:             r.UserID,
			BookID:             r.BookID,
			BookTitle:          r.BookTitle,
			UserName:           r.UserName,
			LoanDate:           NewDate(r.LoanDate),
			ExpectedReturnDate: NewDate(r.ExpectedReturnDate),
			DaysOverdue:        r.DaysOverdue,
		})
	}
	return out
}

func NewTopBooksReport(rows []entities.TopBook) []TopBookReport {
	out := make([]TopBookReport, 0, len(rows))
	for _, r := range rows {
		out = append(out, TopBookReport(r))
	}
	return out
}

func NewAuditEventList(events []entities.AuditEvent) []AuditEventPublic {
	out := make([]AuditEventPublic, 0, len(events))
	for _, e := range events {
		out = append(out, AuditEventPublic{
			ID:          e.ID,
			UserID:      e.UserID,
			EventType:   string(e.EventType),
			Action:      e.Action,
			Description: e.Description,
			EntityType:  e.EntityType,
			EntityID:    e.EntityID,
			Metadata:    e.Metadata,
			Status:      string(e.Status),
			ErrorMsg:    e.ErrorMsg,
			CreatedAt:   e.CreatedAt,
		})
	}
	return out
}
