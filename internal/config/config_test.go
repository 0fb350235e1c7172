package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, int32(DefaultPort), cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, DatabaseDriverSQLite, cfg.Database.Driver)
	assert.Equal(t, DefaultDatabasePath, cfg.Database.Path)
	assert.Equal(t, PasswordStoragePlain, cfg.Auth.PasswordStorage)
	assert.Equal(t, 0, cfg.Auth.MaxLoginAttempts)
	assert.Equal(t, 15*time.Minute, cfg.Auth.RateLimitWindow)
	assert.Equal(t, 30*time.Minute, cfg.Auth.LockoutDuration)
	assert.Empty(t, cfg.Redis.Addr)
	assert.True(t, cfg.Audit.Enabled)
	assert.Equal(t, "0 3 * * *", cfg.Audit.CleanupSchedule)
	assert.False(t, cfg.Global.ReadOnly)
}

func TestNewConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_DRIVER", "postgres")
	t.Setenv("DATABASE_DSN", "postgres://library@localhost/library")
	t.Setenv("AUTH_PASSWORD_STORAGE", "bcrypt")
	t.Setenv("AUTH_LOCKOUT_DURATION", "5m")
	t.Setenv("READ_ONLY", "true")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg := NewConfig()

	assert.Equal(t, int32(9090), cfg.HTTP.Port)
	assert.Equal(t, DatabaseDriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "postgres://library@localhost/library", cfg.Database.DSN)
	assert.Equal(t, PasswordStorageBcrypt, cfg.Auth.PasswordStorage)
	assert.Equal(t, 5*time.Minute, cfg.Auth.LockoutDuration)
	assert.True(t, cfg.Global.ReadOnly)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
}
