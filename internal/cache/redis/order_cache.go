package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Gunvolt24/orders_api/internal/domain"
	"github.com/Gunvolt24/orders_api/internal/ports"
	"github.com/Gunvolt24/orders_api/pkg/metrics"
	"github.com/redis/go-redis/v9"
)

// Проверка, что OrderCache удовлетворяет интерфейсу ports.OrderCache.
var _ ports.OrderCache = (*OrderCache)(nil)

// keyPrefix — пространство ключей сервиса в Redis.
const keyPrefix = "orders:"

// OrderCache — side-кэш списков заказов на Redis.
// Значение — JSON-срез заказов; промах — redis.Nil или битый payload.
type OrderCache struct {
	client *redis.Client
	log    ports.Logger
}

// NewOrderCache — конструктор OrderCache.
func NewOrderCache(client *redis.Client, log ports.Logger) *OrderCache {
	return &OrderCache{client: client, log: log}
}

// NewClient — клиент Redis с проверкой соединения (fail-fast).
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// Get — список по ключу; (nil, false) при промахе, истечении TTL
// или любой ошибке Redis (кэш вторичен, ошибку чтения считаем промахом).
func (c *OrderCache) Get(ctx context.Context, key string) ([]*domain.Order, bool) {
	data, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warnf(ctx, "redis get failed key=%s err=%v", key, err)
		}
		metrics.CacheOps.WithLabelValues("miss").Inc()
		return nil, false
	}

	var orders []*domain.Order
	if err := json.Unmarshal(data, &orders); err != nil {
		c.log.Warnf(ctx, "redis payload corrupted key=%s err=%v", key, err)
		metrics.CacheOps.WithLabelValues("miss").Inc()
		return nil, false
	}

	metrics.CacheOps.WithLabelValues("hit").Inc()
	return orders, true
}

// Set — сохранить список по ключу с TTL.
func (c *OrderCache) Set(ctx context.Context, key string, orders []*domain.Order, ttl time.Duration) error {
	data, err := json.Marshal(orders)
	if err != nil {
		return fmt.Errorf("marshal orders: %w", err)
	}
	if err := c.client.Set(ctx, keyPrefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Delete — явная инвалидация ключа.
func (c *OrderCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
