package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"
	"go.uber.org/zap"
)

// PurgeEnqueuer hands an audit purge to the task queue, or runs it inline.
type PurgeEnqueuer interface {
	EnqueuePurgeAuditEvents(ctx context.Context, retentionDays int) (string, error)
}

// TaskStatusReader looks up background task state.
type TaskStatusReader interface {
	Status(ctx context.Context, taskID string) (backlite.TaskStatus, error)
}

// TasksController handles task queue management endpoints.
type TasksController struct {
	purger        PurgeEnqueuer
	statuses      TaskStatusReader
	retentionDays int
	logger        *zap.Logger
}

// NewTasksController creates a new TasksController. statuses may be nil when
// the task queue is disabled.
func NewTasksController(purger PurgeEnqueuer, statuses TaskStatusReader, retentionDays int, logger *zap.Logger) *TasksController {
	return &TasksController{purger: purger, statuses: statuses, retentionDays: retentionDays, logger: logger}
}

// PurgeAudit triggers an immediate audit retention purge.
// POST /audit/purge
func (tc *TasksController) PurgeAudit(c *gin.Context) {
	taskID, err := tc.purger.EnqueuePurgeAuditEvents(c.Request.Context(), tc.retentionDays)
	if err != nil {
		respondInternalError(c, tc.logger, err, "purge audit events")
		return
	}

	if taskID == "" {
		c.JSON(http.StatusOK, gin.H{"message": "audit events purged"})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{
		"task_id": taskID,
		"message": "task enqueued",
	})
}

// GetTaskStatus handles GET /tasks/:id
func (tc *TasksController) GetTaskStatus(c *gin.Context) {
	if tc.statuses == nil {
		respondNotFound(c, "task")
		return
	}

	taskID := c.Param("id")
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status, err := tc.statuses.Status(ctx, taskID)
	if err != nil {
		respondInternalError(c, tc.logger, err, "task status")
		return
	}
	if status == backlite.TaskStatusNotFound {
		respondNotFound(c, "task")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     taskID,
		"status": taskStatusToString(status),
	})
}

func taskStatusToString(status backlite.TaskStatus) string {
	switch status {
	case backlite.TaskStatusPending:
		return "pending"
	case backlite.TaskStatusRunning:
		return "running"
	case backlite.TaskStatusSuccess:
		return "success"
	case backlite.TaskStatusFailure:
		return "failure"
	case backlite.TaskStatusNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}
