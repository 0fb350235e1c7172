package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/readhub/library/internal/audit"
	"github.com/readhub/library/internal/auth"
	"github.com/readhub/library/internal/database"
	auditrepo "github.com/readhub/library/internal/database/audit"
	"github.com/readhub/library/internal/database/books"
	"github.com/readhub/library/internal/database/favorites"
	"github.com/readhub/library/internal/database/loans"
	"github.com/readhub/library/internal/database/reports"
	"github.com/readhub/library/internal/database/tickets"
	"github.com/readhub/library/internal/database/users"
	"github.com/readhub/library/internal/http"
	"github.com/readhub/library/internal/scheduler"
	"github.com/readhub/library/internal/services"
	"github.com/readhub/library/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

var _ http.UserStore = (*users.Repository)(nil)
var _ services.UserRepository = (*users.Repository)(nil)
var _ http.BookStore = (*books.Repository)(nil)
var _ http.LoanStore = (*loans.Repository)(nil)
var _ http.FavoriteStore = (*favorites.Repository)(nil)
var _ http.TicketStore = (*tickets.Repository)(nil)
var _ http.ReportStore = (*reports.Repository)(nil)
var _ audit.EventStore = (*auditrepo.Repository)(nil)

// =============================================================================
// Accounts
// =============================================================================

var _ http.AccountService = (*services.AccountService)(nil)

var _ auth.PasswordHasher = auth.PlainHasher{}
var _ auth.PasswordHasher = auth.BcryptHasher{}

var _ auth.LoginLimiter = (*auth.RateLimiter)(nil)
var _ auth.LoginLimiter = (*auth.RedisRateLimiter)(nil)
var _ auth.LoginLimiter = auth.NoopLimiter{}

// =============================================================================
// Audit Trail and Background Work
// =============================================================================

var _ http.AuditStore = (*audit.Service)(nil)
var _ tasks.AuditEventCleaner = (*audit.Service)(nil)

var _ scheduler.PurgeEnqueuer = (*tasks.Client)(nil)
var _ scheduler.PurgeEnqueuer = tasks.InlinePurger{}
var _ http.PurgeEnqueuer = (*tasks.Client)(nil)
var _ http.PurgeEnqueuer = tasks.InlinePurger{}
var _ http.TaskStatusReader = (*tasks.Client)(nil)

// =============================================================================
// Health
// =============================================================================

var _ http.Pinger = (*database.Database)(nil)
var _ http.Pinger = (*database.Redis)(nil)
