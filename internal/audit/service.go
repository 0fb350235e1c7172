// Package audit records who changed what.
//
// Events are written in the background so a slow or failing audit table never
// delays or fails the request that triggered them. A nil *Service is valid and
// drops every event, which is how AUDIT_ENABLED=false is implemented.
package audit

import (
	"context"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/readhub/library/internal/entities"
)

const writeTimeout = 5 * time.Second

var json = jsoniter.ConfigFastest

// EventStore persists audit events.
type EventStore interface {
	LogEvent(ctx context.Context, event *entities.AuditEvent) error
	GetRecentEvents(ctx context.Context, limit int) ([]entities.AuditEvent, error)
	DeleteOldEvents(ctx context.Context, olderThan time.Time) (int64, error)
}

// Service provides high-level audit logging functionality.
type Service struct {
	repo   EventStore
	logger *zap.Logger
	wg     sync.WaitGroup
}

// NewService creates a new audit service.
func NewService(repo EventStore, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger.Named("audit")}
}

// Log records an audit event synchronously.
func (s *Service) Log(ctx context.Context, event *entities.AuditEvent) error {
	if s == nil {
		return nil
	}
	return s.repo.LogEvent(ctx, event)
}

// LogAsync records an audit event in the background (non-blocking).
func (s *Service) LogAsync(event *entities.AuditEvent) {
	if s == nil {
		return
	}
	// creation order, not write order
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()
		if err := s.repo.LogEvent(ctx, event); err != nil {
			s.logger.Error("failed to log audit event", zap.String("action", event.Action), zap.Error(err))
		}
	}()
}

// Wait blocks until every pending background write has finished.
func (s *Service) Wait() {
	if s == nil {
		return
	}
	s.wg.Wait()
}

// LogCreate records the creation of an entity.
func (s *Service) LogCreate(userID *uint, entityType string, entityID uint, description string, metadata map[string]any) {
	s.LogAsync(&entities.AuditEvent{
		UserID:      userID,
		EventType:   entities.AuditEventCreate,
		Action:      entityType + "_create",
		Description: description,
		EntityType:  entityType,
		EntityID:    &entityID,
		Metadata:    encodeMetadata(metadata),
		Status:      entities.AuditStatusSuccess,
	})
}

// LogUpdate records a change to an entity. action names the change, e.g. "loan_return".
func (s *Service) LogUpdate(userID *uint, entityType string, entityID uint, action, description string, metadata map[string]any) {
	s.LogAsync(&entities.AuditEvent{
		UserID:      userID,
		EventType:   entities.AuditEventUpdate,
		Action:      action,
		Description: description,
		EntityType:  entityType,
		EntityID:    &entityID,
		Metadata:    encodeMetadata(metadata),
		Status:      entities.AuditStatusSuccess,
	})
}

// LogDelete records a deletion event.
func (s *Service) LogDelete(userID *uint, entityType string, entityID uint, description string) {
	s.LogAsync(&entities.AuditEvent{
		UserID:      userID,
		EventType:   entities.AuditEventDelete,
		Action:      entityType + "_delete",
		Description: description,
		EntityType:  entityType,
		EntityID:    &entityID,
		Status:      entities.AuditStatusSuccess,
	})
}

// LogAuth records an authentication event. userID is nil when the email was unknown.
func (s *Service) LogAuth(userID *uint, action, email, ipAddr string, err error) {
	event := &entities.AuditEvent{
		UserID:      userID,
		EventType:   entities.AuditEventAuth,
		Action:      action,
		Description: "Login attempt for " + truncate(email, 200),
		EntityType:  "user",
		EntityID:    userID,
		IPAddress:   ipAddr,
		Status:      entities.AuditStatusSuccess,
	}

	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}

	s.LogAsync(event)
}

// GetRecentEvents returns the newest events first.
func (s *Service) GetRecentEvents(ctx context.Context, limit int) ([]entities.AuditEvent, error) {
	if s == nil {
		return []entities.AuditEvent{}, nil
	}
	return s.repo.GetRecentEvents(ctx, limit)
}

// DeleteOldEvents removes events older than the specified duration.
func (s *Service) DeleteOldEvents(ctx context.Context, retention time.Duration) (int64, error) {
	if s == nil {
		return 0, nil
	}
	cutoff := time.Now().Add(-retention)
	return s.repo.DeleteOldEvents(ctx, cutoff)
}

func encodeMetadata(metadata map[string]any) string {
	if len(metadata) == 0 {
		return ""
	}
	out, err := json.MarshalToString(metadata)
	if err != nil {
		return ""
	}
	return out
}

// truncate shortens a string to max length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
