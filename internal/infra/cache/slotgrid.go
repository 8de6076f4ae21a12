// Package cache хранит рассчитанные сетки слотов в Redis с коротким
// TTL. Кэш строго опционален: любая ошибка Redis деградирует до
// пересчёта сетки, а не до ошибки запроса.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// SlotGridCache кэш рассчитанных сеток слотов
type SlotGridCache struct {
	client *redis.Client
	ttl    time.Duration
	log    Logger
}

// NewSlotGridCache создает кэш и проверяет соединение с Redis
func NewSlotGridCache(ctx context.Context, addr, password string, db int, ttl time.Duration, log Logger) (*SlotGridCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("cache: redis ping: %w", err)
	}

	return &SlotGridCache{
		client: client,
		ttl:    ttl,
		log:    log,
	}, nil
}

// Close закрывает соединение с Redis
func (c *SlotGridCache) Close() error {
	return c.client.Close()
}

// key строит ключ вида slotgrid:{pointID}:{date}:{category|all}
func (c *SlotGridCache) key(pointID int64, date string, categoryID *int64) string {
	category := "all"
	if categoryID != nil {
		category = fmt.Sprintf("%d", *categoryID)
	}
	return fmt.Sprintf("slotgrid:%d:%s:%s", pointID, date, category)
}

// Get возвращает закэшированную сетку или (nil, false) при промахе
func (c *SlotGridCache) Get(ctx context.Context, pointID int64, date string, categoryID *int64) ([]byte, bool) {
	payload, err := c.client.Get(ctx, c.key(pointID, date, categoryID)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.log.Warn("SlotGridCache: get failed for point=%d date=%s: %v", pointID, date, err)
		return nil, false
	}
	return payload, true
}

// Set сохраняет сетку с настроенным TTL
func (c *SlotGridCache) Set(ctx context.Context, pointID int64, date string, categoryID *int64, payload []byte) {
	if err := c.client.Set(ctx, c.key(pointID, date, categoryID), payload, c.ttl).Err(); err != nil {
		c.log.Warn("SlotGridCache: set failed for point=%d date=%s: %v", pointID, date, err)
	}
}

// InvalidatePoint удаляет все закэшированные сетки точки. Вызывается,
// когда становится известно об изменении расписания точки
func (c *SlotGridCache) InvalidatePoint(ctx context.Context, pointID int64) error {
	pattern := fmt.Sprintf("slotgrid:%d:*", pointID)

	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("cache: scan %s: %w", pattern, err)
	}

	if len(keys) == 0 {
		return nil
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("cache: del %d keys: %w", len(keys), err)
	}

	c.log.Info("SlotGridCache: invalidated %d entries for point=%d", len(keys), pointID)
	return nil
}
