package audit

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/readhub/library/internal/database"
	auditRepo "github.com/readhub/library/internal/database/audit"
	"github.com/readhub/library/internal/entities"
)

func setupTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	dbPath := "./test_audit_service_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"

	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
		os.Remove(dbPath)
	})

	svc := NewService(auditRepo.NewRepository(db.DB), zap.NewNop())
	return svc, db.DB
}

func uintPtr(v uint) *uint { return &v }

func TestService_Log(t *testing.T) {
	svc, db := setupTestService(t)

	event := &entities.AuditEvent{
		EventType: entities.AuditEventCreate,
		Action:    "book_create",
		Status:    entities.AuditStatusSuccess,
	}
	require.NoError(t, svc.Log(context.Background(), event))

	var saved entities.AuditEvent
	require.NoError(t, db.First(&saved, event.ID).Error)
	assert.Equal(t, "book_create", saved.Action)
}

func TestService_LogCreate(t *testing.T) {
	svc, db := setupTestService(t)

	svc.LogCreate(uintPtr(3), "loan", 11, "Loan created", map[string]any{"book_id": 7})
	svc.Wait()

	var event entities.AuditEvent
	require.NoError(t, db.Where("action = ?", "loan_create").First(&event).Error)
	assert.Equal(t, entities.AuditEventCreate, event.EventType)
	require.NotNil(t, event.UserID)
	assert.Equal(t, uint(3), *event.UserID)
	require.NotNil(t, event.EntityID)
	assert.Equal(t, uint(11), *event.EntityID)
	assert.JSONEq(t, `{"book_id":7}`, event.Metadata)
}

func TestService_LogUpdateAndDelete(t *testing.T) {
	svc, db := setupTestService(t)

	svc.LogUpdate(nil, "support_ticket", 2, "support_ticket_status", "Status set to Resolved", nil)
	svc.LogDelete(nil, "book", 9, "Deleted book: Iracema")
	svc.Wait()

	var update, del entities.AuditEvent
	require.NoError(t, db.Where("action = ?", "support_ticket_status").First(&update).Error)
	assert.Equal(t, entities.AuditEventUpdate, update.EventType)
	assert.Empty(t, update.Metadata)

	require.NoError(t, db.Where("action = ?", "book_delete").First(&del).Error)
	assert.Equal(t, entities.AuditEventDelete, del.EventType)
	assert.Equal(t, "Deleted book: Iracema", del.Description)
}

func TestService_LogAuth(t *testing.T) {
	svc, db := setupTestService(t)

	svc.LogAuth(nil, "login_failed", "ana@x.com", "10.0.0.1", errors.New("invalid email or password"))
	svc.Wait()

	var event entities.AuditEvent
	require.NoError(t, db.Where("action = ?", "login_failed").First(&event).Error)
	assert.Equal(t, entities.AuditStatusFailed, event.Status)
	assert.Equal(t, "10.0.0.1", event.IPAddress)
	assert.Contains(t, event.ErrorMsg, "invalid email")
	assert.Nil(t, event.UserID)
}

func TestService_DeleteOldEvents(t *testing.T) {
	svc, db := setupTestService(t)
	ctx := context.Background()

	require.NoError(t, db.Create(&entities.AuditEvent{Action: "old", CreatedAt: time.Now().AddDate(0, 0, -40)}).Error)
	require.NoError(t, db.Create(&entities.AuditEvent{Action: "new", CreatedAt: time.Now()}).Error)

	deleted, err := svc.DeleteOldEvents(ctx, 30*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	events, err := svc.GetRecentEvents(ctx, 0)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "new", events[0].Action)
}

func TestService_NilIsDisabled(t *testing.T) {
	var svc *Service

	assert.NotPanics(t, func() {
		svc.LogCreate(nil, "book", 1, "x", nil)
		svc.LogAuth(nil, "login", "a", "b", nil)
		svc.Wait()
	})
	assert.NoError(t, svc.Log(context.Background(), &entities.AuditEvent{}))

	events, err := svc.GetRecentEvents(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}
