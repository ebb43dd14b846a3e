package ports

import (
	"context"

	"github.com/Gunvolt24/orders_api/internal/domain"
)

// OrderValidator — доменная валидация входных данных заказа
// до открытия какой-либо транзакции.
type OrderValidator interface {
	ValidateCreate(ctx context.Context, clientName string, items []domain.NewOrderItem) error
}
