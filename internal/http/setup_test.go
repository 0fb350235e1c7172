package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
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
	"github.com/readhub/library/internal/readonly"
	"github.com/readhub/library/internal/services"
	"github.com/readhub/library/internal/tasks"
)

type testServer struct {
	db     *database.Database
	router *gin.Engine
	audit  *audit.Service
}

// setupTestServer wires the full router against a throwaway SQLite file.
func setupTestServer(t *testing.T, opts ...func(*RouterConfig)) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_http_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	logger := zap.NewNop()
	auditSvc := audit.NewService(auditrepo.NewRepository(db.DB), logger)
	limiter := auth.NewLoginLimiter(config.Auth{
		MaxLoginAttempts: 3,
		RateLimitWindow:  time.Minute,
		LockoutDuration:  time.Minute,
	}, nil)
	userRepo := users.NewRepository(db.DB)
	reportRepo, err := reports.NewRepository(db)
	require.NoError(t, err)

	cfg := RouterConfig{
		Users:     userRepo,
		Books:     books.NewRepository(db.DB),
		Loans:     loans.NewRepository(db.DB),
		Favorites: favorites.NewRepository(db.DB),
		Tickets:   tickets.NewRepository(db.DB),
		Reports:   reportRepo,
		Accounts: services.NewAccountService(userRepo,
			auth.NewPasswordHasher(config.Auth{PasswordStorage: config.PasswordStoragePlain}),
			limiter, auditSvc, logger),
		Auditor:            auditSvc,
		Database:           db,
		Purger:             tasks.InlinePurger{Cleaner: auditSvc, Logger: logger},
		AuditRetentionDays: 30,
		ReadOnly:           readonly.NewMiddleware(false),
		Logger:             logger,
		Version:            "test",
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	t.Cleanup(func() {
		auditSvc.Wait()
		limiter.Stop()
		db.Close()
		os.Remove(dbPath)
	})

	return &testServer{db: db, router: NewRouter(cfg), audit: auditSvc}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func (s *testServer) createUser(t *testing.T, email string) map[string]any {
	t.Helper()
	w := s.do(t, "POST", "/users", gin.H{"name": "Ana", "email": email, "password": "secret"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[map[string]any](t, w)
}

func (s *testServer) createBook(t *testing.T, title string) map[string]any {
	t.Helper()
	w := s.do(t, "POST", "/books", gin.H{"title": title, "author": "Machado de Assis"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[map[string]any](t, w)
}

func (s *testServer) createLoan(t *testing.T, userID, bookID any, loanDate, due string) map[string]any {
	t.Helper()
	w := s.do(t, "POST", "/loans", gin.H{
		"user_id":              userID,
		"book_id":              bookID,
		"loan_date":            loanDate,
		"expected_return_date": due,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[map[string]any](t, w)
}

func idOf(t *testing.T, m map[string]any) uint {
	t.Helper()
	id, ok := m["id"].(float64)
	require.True(t, ok, "missing id in %v", m)
	return uint(id)
}
