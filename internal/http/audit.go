package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/readhub/library/internal/dto"
	"github.com/readhub/library/internal/entities"
)

const maxAuditEvents = 100

// AuditStore reads the audit trail.
type AuditStore interface {
	GetRecentEvents(ctx context.Context, limit int) ([]entities.AuditEvent, error)
}

type AuditController struct {
	store  AuditStore
	logger *zap.Logger
}

func NewAuditController(store AuditStore, logger *zap.Logger) *AuditController {
	return &AuditController{store: store, logger: logger}
}

// ListEvents returns the latest audit events, newest first.
// GET /audit?limit=
func (ac *AuditController) ListEvents(c *gin.Context) {
	limit := maxAuditEvents
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= maxAuditEvents {
			limit = l
		}
	}

	events, err := ac.store.GetRecentEvents(c.Request.Context(), limit)
	if err != nil {
		respondInternalError(c, ac.logger, err, "list audit events")
		return
	}

	c.JSON(http.StatusOK, dto.NewAuditEventList(events))
}
