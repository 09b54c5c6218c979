package database

import (
	"context"
	"fmt"
	"time"
	"training_portal_backend/internal/config"
	"training_portal_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const redisPingTimeout = 3 * time.Second

// InitRedis 打开会话存储所用的 redis 连接，启动时记录仍处于登录状态的会话数
func InitRedis(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	addr := fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     20,
		MinIdleConns: 2,
	})

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}

	active, err := CountSessions(pingCtx, rdb, cfg.Session.Prefix)
	if err != nil {
		logger.Log.Warn("count redis sessions failed", zap.Error(err))
	}
	logger.Log.Info("redis session store ready",
		zap.String("addr", addr),
		zap.Int("db", cfg.Redis.DB),
		zap.Int("activeSessions", active),
	)
	return rdb, nil
}

// SessionPattern 匹配 <prefix>:<uid>:logged_in 键
func SessionPattern(prefix string) string {
	return prefix + ":*:logged_in"
}

// CountSessions 统计已登录且未注销的会话；注销会删除对应的键
func CountSessions(ctx context.Context, rdb *redis.Client, prefix string) (int, error) {
	n := 0
	iter := rdb.Scan(ctx, 0, SessionPattern(prefix), 100).Iterator()
	for iter.Next(ctx) {
		n++
	}
	return n, iter.Err()
}
