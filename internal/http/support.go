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

// TicketStore defines database operations for support tickets.
type TicketStore interface {
	CreateTicket(ctx context.Context, ticket *entities.SupportTicket) error
	GetTicketByID(ctx context.Context, id uint) (*entities.SupportTicket, error)
	ListTickets(ctx context.Context) ([]entities.SupportTicket, error)
	UpdateTicketStatus(ctx context.Context, id uint, status entities.TicketStatus) (*entities.SupportTicket, error)
}

type SupportController struct {
	store  TicketStore
	audit  *audit.Service
	logger *zap.Logger
}

func NewSupportController(store TicketStore, auditSvc *audit.Service, logger *zap.Logger) *SupportController {
	return &SupportController{store: store, audit: auditSvc, logger: logger}
}

// CreateTicket opens a support ticket, optionally tied to a member.
// POST /support
func (sc *SupportController) CreateTicket(c *gin.Context) {
	var req dto.TicketCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(c, err)
		return
	}

	ticket := &entities.SupportTicket{
		UserID:  req.UserID,
		Name:    dto.Value(req.Name),
		Email:   req.Email,
		Subject: dto.Value(req.Subject),
		Message: dto.Value(req.Message),
	}
	if err := sc.store.CreateTicket(c.Request.Context(), ticket); err != nil {
		respondError(c, sc.logger, err, "user", "create ticket")
		return
	}

	sc.audit.LogCreate(ticket.UserID, "support_ticket", ticket.ID, "Opened ticket: "+ticket.Subject, nil)
	respondCreated(c, dto.NewTicketPublic(ticket))
}

// GetTicket returns a single ticket.
// GET /support/:id
func (sc *SupportController) GetTicket(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ticket, err := sc.store.GetTicketByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, sc.logger, err, "ticket", "get ticket")
		return
	}

	c.JSON(http.StatusOK, dto.NewTicketPublic(ticket))
}

// ListTickets returns all tickets, newest first.
// GET /support
func (sc *SupportController) ListTickets(c *gin.Context) {
	tickets, err := sc.store.ListTickets(c.Request.Context())
	if err != nil {
		respondInternalError(c, sc.logger, err, "list tickets")
		return
	}

	c.JSON(http.StatusOK, dto.NewTicketList(tickets))
}

// UpdateTicket sets a ticket's status. Any value is accepted.
// PATCH /support/:id
func (sc *SupportController) UpdateTicket(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.TicketUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(c, err)
		return
	}

	status := entities.TicketStatus(dto.Value(req.Status))
	ticket, err := sc.store.UpdateTicketStatus(c.Request.Context(), id, status)
	if err != nil {
		respondError(c, sc.logger, err, "ticket", "update ticket")
		return
	}

	sc.audit.LogUpdate(ticket.UserID, "support_ticket", ticket.ID, "ticket_status_change",
		"Ticket status set to "+string(status), map[string]any{"status": status})
	c.JSON(http.StatusOK, dto.NewTicketPublic(ticket))
}
