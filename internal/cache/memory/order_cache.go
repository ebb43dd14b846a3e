package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Gunvolt24/orders_api/internal/domain"
	"github.com/Gunvolt24/orders_api/internal/ports"
	"github.com/Gunvolt24/orders_api/pkg/metrics"
)

// Проверка, что CacheTTL удовлетворяет интерфейсу ports.OrderCache.
var _ ports.OrderCache = (*CacheTTL)(nil)

type entry struct {
	orders    []*domain.Order
	expiresAt time.Time
}

// CacheTTL — in-process кэш списков заказов по ключу с TTL на запись.
// Запасной вариант, когда Redis не сконфигурирован; ключей единицы,
// поэтому без вытеснения — только TTL.
type CacheTTL struct {
	index map[string]entry
	mu    sync.Mutex
}

// NewCacheTTL — конструктор CacheTTL.
func NewCacheTTL() *CacheTTL {
	return &CacheTTL{index: make(map[string]entry)}
}

// Get — список по ключу; (nil, false) при промахе/истечении.
func (c *CacheTTL) Get(_ context.Context, key string) ([]*domain.Order, bool) {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	ent, ok := c.index[key]
	if !ok {
		metrics.CacheOps.WithLabelValues("miss").Inc()
		return nil, false
	}
	if isExpired(ent, now) {
		metrics.CacheOps.WithLabelValues("expired").Inc()
		delete(c.index, key)
		metrics.CacheSize.Set(float64(len(c.index)))
		return nil, false
	}

	metrics.CacheOps.WithLabelValues("hit").Inc()
	return cloneOrders(ent.orders), true
}

// Set — сохранить список по ключу; ttl <= 0 означает запись без истечения.
func (c *CacheTTL) Set(_ context.Context, key string, orders []*domain.Order, ttl time.Duration) error {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.index[key] = entry{
		orders:    cloneOrders(orders),
		expiresAt: expiryFrom(now, ttl),
	}
	metrics.CacheSize.Set(float64(len(c.index)))
	return nil
}

// Delete — явная инвалидация ключа.
func (c *CacheTTL) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.index, key)
	metrics.CacheSize.Set(float64(len(c.index)))
	return nil
}
