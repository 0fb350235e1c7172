package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const enqueueTimeout = 30 * time.Second

// PurgeEnqueuer hands an audit purge to whoever executes it: the task queue,
// or an inline purger when the queue is disabled.
type PurgeEnqueuer interface {
	EnqueuePurgeAuditEvents(ctx context.Context, retentionDays int) (string, error)
}

// AuditRetentionScheduler periodically purges audit events past their retention.
type AuditRetentionScheduler struct {
	enqueuer      PurgeEnqueuer
	schedule      string
	retentionDays int
	logger        *zap.Logger

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.RWMutex
	isRunning bool
}

func NewAuditRetentionScheduler(enqueuer PurgeEnqueuer, schedule string, retentionDays int, logger *zap.Logger) *AuditRetentionScheduler {
	return &AuditRetentionScheduler{
		enqueuer:      enqueuer,
		schedule:      schedule,
		retentionDays: retentionDays,
		logger:        logger.Named("audit_retention"),
		cron:          cron.New(cron.WithParser(parser)),
	}
}

// Start registers the purge job and starts the cron loop. The scheduler stops
// itself when ctx is cancelled.
func (s *AuditRetentionScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if err := ValidateCronSchedule(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.schedule, s.RunNow)
	if err != nil {
		return fmt.Errorf("failed to schedule audit purge: %w", err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true

	next, _ := NextRunTime(s.schedule, time.Now())
	s.logger.Info("audit retention scheduler started",
		zap.String("schedule", s.schedule),
		zap.Int("retention_days", s.retentionDays),
		zap.Time("next_run", next))

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Stop stops accepting new runs and waits for a running one to finish.
func (s *AuditRetentionScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	<-s.cron.Stop().Done()
	s.cron.Remove(s.entryID)
	s.isRunning = false

	s.logger.Info("audit retention scheduler stopped")
}

// RunNow enqueues a purge immediately.
func (s *AuditRetentionScheduler) RunNow() {
	ctx, cancel := context.WithTimeout(context.Background(), enqueueTimeout)
	defer cancel()

	id, err := s.enqueuer.EnqueuePurgeAuditEvents(ctx, s.retentionDays)
	if err != nil {
		s.logger.Error("failed to enqueue audit purge", zap.Error(err))
		return
	}
	s.logger.Debug("audit purge enqueued", zap.String("task_id", id))
}

// IsRunning returns whether the scheduler is active
func (s *AuditRetentionScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRunTime returns when the next purge will occur
func (s *AuditRetentionScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	entry := s.cron.Entry(s.entryID)
	if !entry.Valid() {
		return nil
	}
	t := entry.Next
	return &t
}
