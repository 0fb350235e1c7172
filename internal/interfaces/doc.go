// Package interfaces documents the core abstractions used throughout the application.
//
// It holds no runtime code. checks.go pins every concrete type to the
// interfaces it is wired through, so a missing method fails the build here
// rather than in entrypoint.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
// Each HTTP controller declares the narrow store it needs next to its handlers:
//
//   - UserStore, AccountService: internal/http/users.go
//   - BookStore: internal/http/books.go
//   - LoanStore: internal/http/loans.go
//   - FavoriteStore: internal/http/favorites.go
//   - TicketStore: internal/http/support.go
//   - ReportStore: internal/http/reports.go
//   - AuditStore: internal/http/audit.go
//
// The GORM repositories under internal/database/* satisfy them.
//
// ## Accounts
//
//   - UserRepository: what AccountService needs from storage (internal/services/account.go)
//   - PasswordHasher: plain or bcrypt password storage (internal/auth/password.go)
//   - LoginLimiter: in-memory, Redis or no-op login throttling (internal/auth/ratelimit.go)
//
// ## Audit and Background Work
//
//   - EventStore: audit persistence behind audit.Service (internal/audit/service.go)
//   - AuditEventCleaner: retention purge target (internal/tasks/purge_audit.go)
//   - PurgeEnqueuer: queue or inline purge, used by the scheduler and the
//     POST /audit/purge handler (internal/scheduler, internal/http/tasks.go)
//   - TaskStatusReader: task lookup for GET /tasks/:id (internal/http/tasks.go)
//
// ## Health
//
//   - Pinger: database and Redis checks for GET /health (internal/http/health.go)
package interfaces
