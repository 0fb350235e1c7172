package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/readhub/library/internal/config"
)

func TestRedis_NilIsNotConfigured(t *testing.T) {
	var r *Redis

	assert.EqualError(t, r.Ping(context.Background()), "redis client not configured")
	r.Close()
}

func TestNewRedis_UnreachableIsNotFatal(t *testing.T) {
	// nothing listens on port 1
	r := NewRedis(config.Redis{Addr: "127.0.0.1:1"}, zap.NewNop())
	defer r.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.Error(t, r.Ping(ctx))
}
