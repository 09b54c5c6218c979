package repository

import (
	"context"
	"errors"
	"time"
	"training_portal_backend/internal/model"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVRepository 基于数据库表 kv_entries 的键值存储
type KVRepository struct {
	DB *gorm.DB
}

func NewKVRepository(db *gorm.DB) *KVRepository {
	return &KVRepository{DB: db}
}

func (r *KVRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var entry model.KVEntry
	err := r.DB.WithContext(ctx).Where("`key` = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return entry.Value, true, nil
}

func (r *KVRepository) Set(ctx context.Context, key, value string) error {
	entry := model.KVEntry{Key: key, Value: value, UpdatedAt: time.Now()}
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

func (r *KVRepository) Delete(ctx context.Context, key string) error {
	return r.DB.WithContext(ctx).Where("`key` = ?", key).Delete(&model.KVEntry{}).Error
}

// RedisKVRepository redis 后端，键不过期
type RedisKVRepository struct {
	Client *redis.Client
}

func NewRedisKVRepository(client *redis.Client) *RedisKVRepository {
	return &RedisKVRepository{Client: client}
}

func (r *RedisKVRepository) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := r.Client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (r *RedisKVRepository) Set(ctx context.Context, key, value string) error {
	return r.Client.Set(ctx, key, value, 0).Err()
}

func (r *RedisKVRepository) Delete(ctx context.Context, key string) error {
	return r.Client.Del(ctx, key).Err()
}
