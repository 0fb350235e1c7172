package http

import (
	"go.uber.org/zap"

	"github.com/readhub/library/internal/audit"
	"github.com/readhub/library/internal/database"
	"github.com/readhub/library/internal/readonly"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Stores
	Users     UserStore
	Books     BookStore
	Loans     LoanStore
	Favorites FavoriteStore
	Tickets   TicketStore
	Reports   ReportStore

	Accounts AccountService

	// Auditor records mutations and serves GET /audit. nil disables both.
	Auditor *audit.Service

	// Database and Redis are only used by the health check. Redis is nil
	// when login throttling is in memory.
	Database *database.Database
	Redis    *database.Redis

	// Maintenance
	Purger             PurgeEnqueuer
	TaskStatuses       TaskStatusReader // nil when the task queue is disabled
	AuditRetentionDays int

	ReadOnly *readonly.Middleware

	Logger  *zap.Logger
	Version string
}
