package ports

import (
	"context"

	"github.com/Gunvolt24/orders_api/internal/domain"
)

// OrderService — прикладные операции над заказами, как их видит транспорт.
type OrderService interface {
	// Create — создать заказ с позициями (в одной транзакции).
	Create(ctx context.Context, clientName string, items []domain.NewOrderItem) (*domain.Order, error)

	// GetOrder — заказ по id с позициями; (nil, nil), если записи нет.
	GetOrder(ctx context.Context, id int64) (*domain.Order, error)

	// ListActive — активные заказы (через кэш).
	ListActive(ctx context.Context) ([]*domain.Order, error)

	// AdvanceState — перевести заказ в следующее состояние жизненного цикла.
	AdvanceState(ctx context.Context, id int64) (*domain.AdvanceResult, error)
}
