// Package tickets stores support requests submitted through the contact form.
//
// # Usage
//
//	repo := tickets.NewRepository(db)
//	ticket, err := repo.UpdateTicketStatus(ctx, id, entities.TicketStatusResolved)
package tickets

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/readhub/library/internal/database"
	"github.com/readhub/library/internal/entities"
)

// Repository handles all support ticket database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new tickets repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateTicket stores a new Open ticket. When UserID is set the user must exist.
func (r *Repository) CreateTicket(ctx context.Context, ticket *entities.SupportTicket) error {
	db := r.db.WithContext(ctx)

	if ticket.UserID != nil {
		if err := database.RequireRow(db, &entities.User{}, *ticket.UserID); err != nil {
			return err
		}
	}

	ticket.Status = entities.TicketStatusOpen
	if err := db.Create(ticket).Error; err != nil {
		return fmt.Errorf("create ticket: %w", err)
	}
	return nil
}

// GetTicketByID retrieves a single ticket.
func (r *Repository) GetTicketByID(ctx context.Context, id uint) (*entities.SupportTicket, error) {
	var ticket entities.SupportTicket
	err := r.db.WithContext(ctx).First(&ticket, id).Error
	if err != nil {
		return nil, database.NotFound(err)
	}
	return &ticket, nil
}

// ListTickets returns every ticket, newest first.
func (r *Repository) ListTickets(ctx context.Context) ([]entities.SupportTicket, error) {
	tickets := []entities.SupportTicket{}
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&tickets).Error
	return tickets, err
}

// UpdateTicketStatus sets the status verbatim; any transition is allowed.
func (r *Repository) UpdateTicketStatus(ctx context.Context, id uint, status entities.TicketStatus) (*entities.SupportTicket, error) {
	result := r.db.WithContext(ctx).Model(&entities.SupportTicket{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return nil, fmt.Errorf("update ticket status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, entities.ErrNotFound
	}
	return r.GetTicketByID(ctx, id)
}
