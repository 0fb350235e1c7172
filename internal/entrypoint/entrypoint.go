package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/readhub/library/internal/audit"
	"github.com/readhub/library/internal/auth"
	"github.com/readhub/library/internal/config"
	"github.com/readhub/library/internal/database"
	auditrepo "github.com/readhub/library/internal/database/audit"
	"github.com/readhub/library/internal/database/books"
	"github.com/readhub/library/internal/database/favorites"
	"github.com/readhub/library/internal/database/loans"
	"github.com/readhub/library/internal/database/reports"
	"github.com/readhub/library/internal/database/tickets"
	"github.com/readhub/library/internal/database/users"
	http_controllers "github.com/readhub/library/internal/http"
	"github.com/readhub/library/internal/observability"
	"github.com/readhub/library/internal/readonly"
	"github.com/readhub/library/internal/scheduler"
	"github.com/readhub/library/internal/services"
	"github.com/readhub/library/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// App holds every long-lived component so they can be torn down in order.
type App struct {
	Router *gin.Engine

	logger    *zap.Logger
	db        *database.Database
	redis     *database.Redis
	limiter   auth.LoginLimiter
	audit     *audit.Service
	tasks     *tasks.Client
	scheduler *scheduler.AuditRetentionScheduler
	cancel    context.CancelFunc
}

// Build opens storage, starts the background workers and assembles the router.
// Call Shutdown to release everything, also after a failed Serve.
func Build(cfg *config.Config, version string, logger *zap.Logger) (*App, error) {
	db, err := database.Open(cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	app := &App{logger: logger, db: db, cancel: cancel}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" && cfg.Auth.MaxLoginAttempts > 0 {
		app.redis = database.NewRedis(cfg.Redis, logger)
		redisClient = app.redis.Client
	}
	app.limiter = auth.NewLoginLimiter(cfg.Auth, redisClient)

	hasher := auth.NewPasswordHasher(cfg.Auth)
	if cfg.Auth.PasswordStorage != config.PasswordStorageBcrypt {
		logger.Warn("passwords are stored in plain text; set AUTH_PASSWORD_STORAGE=bcrypt to hash them")
	}

	if cfg.Audit.Enabled {
		app.audit = audit.NewService(auditrepo.NewRepository(db.DB), logger)
	} else {
		logger.Info("audit trail disabled")
	}

	var purger http_controllers.PurgeEnqueuer
	var taskStatuses http_controllers.TaskStatusReader
	if app.audit != nil {
		purger = tasks.InlinePurger{Cleaner: app.audit, Logger: logger}
		if cfg.Tasks.Enabled {
			app.tasks, err = tasks.NewClient(cfg.Tasks.DatabasePath, tasks.ConfigFrom(cfg.Tasks), logger)
			if err != nil {
				app.Shutdown(context.Background())
				return nil, fmt.Errorf("failed to initialize task queue: %w", err)
			}
			app.tasks.Register(tasks.NewPurgeAuditEventsQueue(app.audit, logger))
			app.tasks.Start(ctx)
			purger = app.tasks
			taskStatuses = app.tasks
		}

		if cfg.Audit.CleanupSchedule != "" {
			app.scheduler = scheduler.NewAuditRetentionScheduler(purger, cfg.Audit.CleanupSchedule, cfg.Audit.RetentionDays, logger)
			if err := app.scheduler.Start(ctx); err != nil {
				app.Shutdown(context.Background())
				return nil, err
			}
		}
	}

	reportRepo, err := reports.NewRepository(db)
	if err != nil {
		app.Shutdown(context.Background())
		return nil, err
	}

	userRepo := users.NewRepository(db.DB)
	readOnly := readonly.NewMiddleware(cfg.Global.ReadOnly)
	if readOnly.IsEnabled() {
		logger.Warn("read-only mode enabled - write operations will be blocked")
	}

	app.Router = http_controllers.NewRouter(http_controllers.RouterConfig{
		Users:              userRepo,
		Books:              books.NewRepository(db.DB),
		Loans:              loans.NewRepository(db.DB),
		Favorites:          favorites.NewRepository(db.DB),
		Tickets:            tickets.NewRepository(db.DB),
		Reports:            reportRepo,
		Accounts:           services.NewAccountService(userRepo, hasher, app.limiter, app.audit, logger),
		Auditor:            app.audit,
		Database:           db,
		Redis:              app.redis,
		Purger:             purger,
		TaskStatuses:       taskStatuses,
		AuditRetentionDays: cfg.Audit.RetentionDays,
		ReadOnly:           readOnly,
		Logger:             logger,
		Version:            version,
	})

	return app, nil
}

// Shutdown stops background work first, then closes storage.
func (a *App) Shutdown(ctx context.Context) {
	if a.scheduler != nil {
		a.scheduler.Stop()
	}
	if a.tasks != nil {
		a.tasks.Stop(ctx)
	}
	a.cancel()
	if a.tasks != nil {
		if err := a.tasks.Close(); err != nil {
			a.logger.Warn("error closing task client", zap.Error(err))
		}
	}
	if a.limiter != nil {
		a.limiter.Stop()
	}
	a.audit.Wait()
	a.redis.Close()
	if err := a.db.Close(); err != nil {
		a.logger.Warn("error closing database", zap.Error(err))
	}
}

// Serve runs the HTTP server until SIGINT or SIGTERM, then shuts down gracefully.
func Serve(router *gin.Engine, cfg *config.Config, logger *zap.Logger, onShutdown ShutdownFunc) error {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var serveErr error
	select {
	case <-quit:
	case serveErr = <-errCh:
		logger.Error("listen failed", zap.Error(serveErr))
	}
	logger.Info("shutting down server", zap.Duration("timeout", timeout))

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}

	// Background work stops after in-flight requests have drained
	if onShutdown != nil {
		onShutdown(ctx)
	}

	logger.Info("server exiting")
	return serveErr
}

// Run builds the application from cfg and serves it.
func Run(cfg *config.Config, version string) error {
	logger, err := observability.NewLogger(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting library", zap.String("version", version))

	app, err := Build(cfg, version, logger)
	if err != nil {
		logger.Error("startup failed", zap.Error(err))
		return err
	}

	return Serve(app.Router, cfg, logger, app.Shutdown)
}

// Migrate creates any missing tables and exits.
func Migrate(cfg *config.Config) error {
	logger, err := observability.NewLogger(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := database.Open(cfg.Database, logger)
	if err != nil {
		return err
	}
	logger.Info("schema is up to date", zap.String("driver", string(cfg.Database.Driver)))
	return db.Close()
}
