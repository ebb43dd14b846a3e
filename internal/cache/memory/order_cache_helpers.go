package memory

import (
	"time"

	"github.com/Gunvolt24/orders_api/internal/domain"
)

// isExpired — проверяет истечение TTL записи.
func isExpired(ent entry, now time.Time) bool {
	if ent.expiresAt.IsZero() {
		return false
	}
	return now.After(ent.expiresAt)
}

// expiryFrom — вычисляет момент истечения для текущего времени.
func expiryFrom(now time.Time, ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return now.Add(ttl)
}

// cloneOrders — возвращает копию списка, чтобы внешние изменения
// не отражались на данных внутри кэша.
func cloneOrders(orders []*domain.Order) []*domain.Order {
	if orders == nil {
		return nil
	}
	cloned := make([]*domain.Order, 0, len(orders))
	for _, order := range orders {
		if order == nil {
			cloned = append(cloned, nil)
			continue
		}
		orderCopy := *order
		if order.Items != nil {
			orderCopy.Items = append([]domain.OrderItem(nil), order.Items...)
		}
		cloned = append(cloned, &orderCopy)
	}
	return cloned
}
