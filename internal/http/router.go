package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/readhub/library/internal/auth"
	"github.com/readhub/library/internal/observability"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(observability.RequestID())
	router.Use(observability.RequestLogger(logger.Named("http")))

	// Apply security headers to all responses
	router.Use(auth.SecurityHeadersMiddleware())
	router.Use(auth.StrictTransportSecurityMiddleware())

	if cfg.ReadOnly != nil && cfg.ReadOnly.IsEnabled() {
		router.Use(cfg.ReadOnly.InjectContext())
		router.Use(cfg.ReadOnly.Handler())
	}

	health := NewHealthController(cfg.Database, cfg.Version)
	if cfg.Redis != nil {
		health.WithRedis(cfg.Redis)
	}
	router.GET("/", health.Root)
	router.GET("/health", health.Status)
	router.GET("/ping", health.Ping)

	users := NewUsersController(cfg.Users, cfg.Accounts, cfg.Auditor, logger)
	router.POST("/users", users.CreateUser)
	router.POST("/users/login", users.Login)
	router.GET("/users/:id", users.GetUser)
	router.PUT("/users/:id/password", users.UpdatePassword)
	router.DELETE("/users/:id", users.DeleteUser)

	books := NewBooksController(cfg.Books, cfg.Auditor, logger)
	router.GET("/books", books.ListBooks)
	router.POST("/books", books.CreateBook)
	router.GET("/books/:id", books.GetBook)
	router.DELETE("/books/:id", books.DeleteBook)

	loans := NewLoansController(cfg.Loans, cfg.Auditor, logger)
	router.POST("/loans", loans.CreateLoan)
	router.GET("/loans", loans.ListLoans)
	router.GET("/loans/:id", loans.GetLoan)
	router.PUT("/loans/:id/return", loans.ReturnLoan)

	favorites := NewFavoritesController(cfg.Favorites, cfg.Auditor, logger)
	router.POST("/favorites", favorites.AddFavorite)
	router.GET("/favorites", favorites.ListFavorites)
	router.DELETE("/favorites/:book_id", favorites.RemoveFavorite)

	support := NewSupportController(cfg.Tickets, cfg.Auditor, logger)
	router.POST("/support", support.CreateTicket)
	router.GET("/support", support.ListTickets)
	router.GET("/support/:id", support.GetTicket)
	router.PATCH("/support/:id", support.UpdateTicket)

	if cfg.Reports != nil {
		reports := NewReportsController(cfg.Reports, logger)
		router.GET("/reports/overdue", reports.Overdue)
		router.GET("/reports/top-books", reports.TopBooks)
	}

	auditLog := NewAuditController(cfg.Auditor, logger)
	router.GET("/audit", auditLog.ListEvents)

	if cfg.Purger != nil {
		tasks := NewTasksController(cfg.Purger, cfg.TaskStatuses, cfg.AuditRetentionDays, logger)
		router.POST("/audit/purge", tasks.PurgeAudit)
		router.GET("/tasks/:id", tasks.GetTaskStatus)
	}

	return router
}
