package database

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/readhub/library/internal/config"
	"github.com/readhub/library/internal/entities"
)

func setupTestDB(t *testing.T) (*Database, func()) {
	t.Helper()
	dbPath := "./test_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"

	db, err := NewDatabase(dbPath)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}

	return db, cleanup
}

func TestDatabaseInitialization(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	for _, table := range []string{"users", "books", "loans", "favorites", "support_tickets", "audit_events"} {
		assert.True(t, db.DB.Migrator().HasTable(table), "missing table %s", table)
	}
	assert.True(t, db.DB.Migrator().HasIndex(&entities.Favorite{}, "idx_favorites_user_book"))
	assert.NoError(t, db.Ping(context.Background()))
	assert.Equal(t, "sqlite3", db.SQLDriverName())
}

func TestOpen_IsIdempotent(t *testing.T) {
	dbPath := "./test_open_twice.db"
	defer os.Remove(dbPath)

	cfg := config.Database{Driver: config.DatabaseDriverSQLite, Path: dbPath, LogLevel: "silent"}
	first, err := Open(cfg, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, first.DB.Create(&entities.Book{Title: "Kept", Author: "A"}).Error)
	require.NoError(t, first.Close())

	second, err := Open(cfg, zap.NewNop())
	require.NoError(t, err)
	defer second.Close()

	var count int64
	second.DB.Model(&entities.Book{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestOpen_Errors(t *testing.T) {
	_, err := Open(config.Database{Driver: config.DatabaseDriverPostgres}, zap.NewNop())
	assert.ErrorContains(t, err, "DATABASE_DSN")

	_, err = Open(config.Database{Driver: "oracle"}, zap.NewNop())
	assert.ErrorContains(t, err, "unsupported")
}

func TestForeignKeysEnforced(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	err := db.DB.Create(&entities.Favorite{UserID: 41, BookID: 42}).Error
	assert.Error(t, err, "orphan rows must be rejected")
}

func TestUniqueViolationIsDuplicateKey(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, db.DB.Create(&entities.User{Name: "A", Email: "a@x.com"}).Error)
	err := db.DB.Create(&entities.User{Name: "B", Email: "a@x.com"}).Error
	assert.True(t, IsDuplicateKey(err))
	assert.False(t, IsDuplicateKey(nil))
}

func TestNotFound(t *testing.T) {
	assert.ErrorIs(t, NotFound(gorm.ErrRecordNotFound), entities.ErrNotFound)
	assert.NoError(t, NotFound(nil))
	assert.ErrorIs(t, NotFound(gorm.ErrInvalidData), gorm.ErrInvalidData)
}

func TestRequireRow(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	book := &entities.Book{Title: "T", Author: "A"}
	require.NoError(t, db.DB.Create(book).Error)

	assert.NoError(t, RequireRow(db.DB, &entities.Book{}, book.ID))
	assert.ErrorIs(t, RequireRow(db.DB, &entities.Book{}, book.ID+1), entities.ErrNotFound)
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "a.db?_foreign_keys=on&_busy_timeout=5000", sqliteDSN("a.db"))
	assert.Equal(t, "a.db?cache=shared&_foreign_keys=on&_busy_timeout=5000", sqliteDSN("a.db?cache=shared"))
}

func TestGormLogLevel(t *testing.T) {
	assert.Equal(t, logger.Silent, gormLogLevel("SILENT"))
	assert.Equal(t, logger.Info, gormLogLevel("info"))
	assert.Equal(t, logger.Warn, gormLogLevel(""))
}
