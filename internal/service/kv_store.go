package service

import (
	"context"
	"training_portal_backend/internal/config"
	"training_portal_backend/internal/repository"
	"training_portal_backend/internal/util"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// KeyValueStore 会话标记、当前用户和自定义日程等字符串值的存储
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// NewKeyValueStore 按 session.backend 选择后端，redis 不可用时使用数据库
func NewKeyValueStore(cfg *config.Config, db *gorm.DB, rdb *redis.Client) KeyValueStore {
	if cfg.Session.Backend == util.SessionBackendRedis && rdb != nil {
		return repository.NewRedisKVRepository(rdb)
	}
	return repository.NewKVRepository(db)
}
