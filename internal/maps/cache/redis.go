package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"map-editor/internal/maps/models"
)

// ============================================================
// Map cache
// ============================================================

// Cache хранит готовые ответы поиска карты.
type Cache interface {
	Get(ctx context.Context, key string) (*models.Map, bool)
	Set(ctx context.Context, key string, m *models.Map)
}

func BeaconKey(id string) string { return "map:beacon:" + id }

type RedisCache struct {
	client *redis.Client
	expiry time.Duration
}

func NewRedis(client *redis.Client, expiry time.Duration) *RedisCache {
	return &RedisCache{client: client, expiry: expiry}
}

// Get возвращает промах при любой ошибке: недоступный redis не должен ломать поиск.
func (c *RedisCache) Get(ctx context.Context, key string) (*models.Map, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("[CACHE] Get %s failed: %v", key, err)
		}
		return nil, false
	}

	var m models.Map
	if err := json.Unmarshal(data, &m); err != nil {
		log.Printf("[CACHE] Corrupt entry %s: %v", key, err)
		return nil, false
	}
	return &m, true
}

func (c *RedisCache) Set(ctx context.Context, key string, m *models.Map) {
	data, err := json.Marshal(m)
	if err != nil {
		log.Printf("[CACHE] Marshal %s failed: %v", key, err)
		return
	}
	if err := c.client.Set(ctx, key, data, c.expiry).Err(); err != nil {
		log.Printf("[CACHE] Failed to cache map in redis: %v", err)
	}
}

// Noop используется, когда redis не настроен.
type Noop struct{}

func (Noop) Get(context.Context, string) (*models.Map, bool) { return nil, false }
func (Noop) Set(context.Context, string, *models.Map)        {}
