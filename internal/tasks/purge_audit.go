package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/mikestefanello/backlite"
	"go.uber.org/zap"
)

const DefaultAuditRetentionDays = 30

// AuditEventCleaner provides the ability to delete old audit events.
type AuditEventCleaner interface {
	DeleteOldEvents(ctx context.Context, retention time.Duration) (int64, error)
}

// PurgeAuditEventsTask removes audit events older than the retention period.
type PurgeAuditEventsTask struct {
	RetentionDays int `json:"retention_days"`
}

// Config returns the queue configuration for audit purge tasks.
func (t PurgeAuditEventsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "purge_audit_events",
		MaxAttempts: 3,
		Backoff:     5 * time.Minute,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// PurgeAuditEvents deletes events older than retentionDays (30 when not positive).
func PurgeAuditEvents(ctx context.Context, cleaner AuditEventCleaner, retentionDays int) (int64, error) {
	if cleaner == nil {
		return 0, fmt.Errorf("audit event cleaner not configured")
	}
	if retentionDays <= 0 {
		retentionDays = DefaultAuditRetentionDays
	}

	deleted, err := cleaner.DeleteOldEvents(ctx, time.Duration(retentionDays)*24*time.Hour)
	if err != nil {
		return 0, fmt.Errorf("purge audit events: %w", err)
	}
	return deleted, nil
}

// PurgeAuditEventsProcessor creates a processor function for PurgeAuditEventsTask.
func PurgeAuditEventsProcessor(cleaner AuditEventCleaner, logger *zap.Logger) backlite.QueueProcessor[PurgeAuditEventsTask] {
	return func(ctx context.Context, task PurgeAuditEventsTask) error {
		deleted, err := PurgeAuditEvents(ctx, cleaner, task.RetentionDays)
		if err != nil {
			return err
		}
		logger.Info("purged audit events",
			zap.Int64("deleted", deleted),
			zap.Int("retention_days", task.RetentionDays))
		return nil
	}
}

// NewPurgeAuditEventsQueue creates a backlite queue for audit purge tasks.
func NewPurgeAuditEventsQueue(cleaner AuditEventCleaner, logger *zap.Logger) backlite.Queue {
	return backlite.NewQueue(PurgeAuditEventsProcessor(cleaner, logger))
}

// InlinePurger runs the purge immediately instead of queueing it; used when
// the task queue is disabled.
type InlinePurger struct {
	Cleaner AuditEventCleaner
	Logger  *zap.Logger
}

func (p InlinePurger) EnqueuePurgeAuditEvents(ctx context.Context, retentionDays int) (string, error) {
	deleted, err := PurgeAuditEvents(ctx, p.Cleaner, retentionDays)
	if err != nil {
		return "", err
	}
	p.Logger.Info("purged audit events inline", zap.Int64("deleted", deleted))
	return "", nil
}
