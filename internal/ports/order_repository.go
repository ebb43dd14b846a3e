package ports

import (
	"context"

	"github.com/Gunvolt24/orders_api/internal/domain"
)

// OrderRepository — хранилище заказов.
// Многошаговые мутации выполняются через WithinTx: движок жизненного цикла
// компонует операции в одной транзакции и сам решает, что делать
// с прочитанным состоянием.
type OrderRepository interface {
	// FindByID — заказ по id; (nil, nil), если записи нет.
	FindByID(ctx context.Context, id int64, includeItems bool) (*domain.Order, error)

	// FindAllActive — заказы со статусом != delivered, по дате создания DESC.
	FindAllActive(ctx context.Context) ([]*domain.Order, error)

	// WithinTx — выполняет fn в одной транзакции.
	// Ошибка fn откатывает транзакцию целиком; nil — коммит.
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx OrderTx) error) error
}

// OrderTx — транзакционная область: операции видят незакоммиченное
// состояние друг друга и завершаются атомарно.
type OrderTx interface {
	// InsertOrder — вставка заказа со статусом initiated;
	// возвращает запись с назначенными БД id и таймстемпами.
	InsertOrder(ctx context.Context, clientName string) (*domain.Order, error)

	// InsertItems — массовая вставка позиций заказа.
	InsertItems(ctx context.Context, orderID int64, items []domain.NewOrderItem) error

	// FindByIDForUpdate — заказ по id под row-level блокировкой
	// (SELECT ... FOR UPDATE); (nil, nil), если записи нет.
	FindByIDForUpdate(ctx context.Context, id int64) (*domain.Order, error)

	// UpdateStatus — смена статуса; возвращает обновлённую запись.
	UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error)

	// Delete — удаление заказа; позиции удаляются каскадно (FK).
	Delete(ctx context.Context, id int64) error
}
