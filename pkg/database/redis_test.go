package database

import (
	"context"
	"testing"
	"training_portal_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionPattern(t *testing.T) {
	assert.Equal(t, "session:*:logged_in", SessionPattern("session"))
	assert.Equal(t, "portal:*:logged_in", SessionPattern("portal"))
}

func TestInitRedisUnreachable(t *testing.T) {
	cfg := &config.Config{}
	cfg.Redis.Host = "127.0.0.1"
	cfg.Redis.Port = 1
	cfg.Session.Prefix = "session"

	rdb, err := InitRedis(context.Background(), cfg)
	require.Error(t, err)
	assert.Nil(t, rdb)
	assert.Contains(t, err.Error(), "ping redis 127.0.0.1:1")
}
