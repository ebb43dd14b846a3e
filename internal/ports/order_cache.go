package ports

import (
	"context"
	"time"

	"github.com/Gunvolt24/orders_api/internal/domain"
)

// OrderCache — side-кэш списков заказов по логическому ключу.
// Требования к реализации: потокобезопасность; возврат копий данных.
// Кэш вторичен относительно БД и вправе терять записи в любой момент.
type OrderCache interface {
	// Get — список по ключу; (list, true) при попадании,
	// (nil, false) при промахе или истечении TTL.
	Get(ctx context.Context, key string) ([]*domain.Order, bool)

	// Set — сохранить список по ключу с указанным TTL.
	Set(ctx context.Context, key string, orders []*domain.Order, ttl time.Duration) error

	// Delete — явная инвалидация ключа.
	Delete(ctx context.Context, key string) error
}
