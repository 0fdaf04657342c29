// Package cache опциональный Redis-кеш агрегатов. Промах, протухание и
// любая ошибка Redis равнозначны: сервис пересчитает агрегат из хранилища.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Ключи кешируемых агрегатов
const KeyOverview = "stats:overview"

// KeyStudentSummary ключ сводки одного ученика
func KeyStudentSummary(studentID int64) string {
	return fmt.Sprintf("stats:student:%d", studentID)
}

type StatsCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// New подключается к Redis и проверяет соединение
func New(ctx context.Context, addr string, ttl time.Duration, logger *zap.Logger) (*StatsCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &StatsCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}, nil
}

// Get читает значение в dest; false при промахе или ошибке
func (c *StatsCache) Get(ctx context.Context, key string, dest any) bool {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("Cache get failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		c.logger.Warn("Cache entry is corrupt, dropping", zap.String("key", key), zap.Error(err))
		c.client.Del(ctx, key)
		return false
	}

	return true
}

// Set пишет значение с TTL; ошибка только логируется
func (c *StatsCache) Set(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("Cache marshal failed", zap.String("key", key), zap.Error(err))
		return
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("Cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate удаляет ключи после мутации данных
func (c *StatsCache) Invalidate(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("Cache invalidate failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

// Close закрывает соединение с Redis
func (c *StatsCache) Close() error {
	return c.client.Close()
}
