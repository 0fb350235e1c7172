// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, driver selection, migrations
//	├── errors.go        # Translation of storage errors to entity sentinels
//	├── users/           # Members, credentials, cascading delete
//	├── books/           # Catalogue and title search
//	├── loans/           # Loan lifecycle (Borrowed -> Returned)
//	├── favorites/       # Per-user favorite books
//	├── tickets/         # Support tickets
//	├── audit/           # Audit trail
//	└── reports/         # Aggregate queries (goqu + sqlx)
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	// Initialize database connection
//	db, err := database.Open(cfg.Database, logger)
//
//	// Create domain-specific repositories
//	booksRepo := books.NewRepository(db.DB)
//	loansRepo := loans.NewRepository(db.DB)
//
//	// Use repositories
//	book, err := booksRepo.GetBookByID(ctx, 123)
//	history, err := loansRepo.ListLoans(ctx, &userID)
//
// # Interface Implementations
//
// Each sub-package implements a store interface of the HTTP layer:
//
//   - users.Repository: implements http.UserStore
//   - books.Repository: implements http.BookStore
//   - loans.Repository: implements http.LoanStore
//   - favorites.Repository: implements http.FavoriteStore
//   - tickets.Repository: implements http.TicketStore
//   - audit.Repository: implements http.AuditStore and audit.EventLogger
//   - reports.Repository: implements http.ReportStore
//
// # Referential Integrity
//
// Every foreign key is declared ON DELETE CASCADE. SQLite only honours that
// with foreign_keys enabled, which Open always does through the DSN.
package database
