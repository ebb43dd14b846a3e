package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gunvolt24/orders_api/internal/domain"
	"github.com/Gunvolt24/orders_api/internal/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Проверка, что OrderRepository удовлетворяет интерфейсу ports.OrderRepository.
var _ ports.OrderRepository = (*OrderRepository)(nil)

// OrderRepository — реализация репозитория заказов на Postgres (pgxpool).
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository — конструктор OrderRepository.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository { return &OrderRepository{pool: pool} }

// querier — общее подмножество pgxpool.Pool и pgx.Tx, чтобы читающие
// помощники работали и в транзакции, и вне её.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const orderColumns = `id, client_name, status, creation_date, updated_on`

// FindByID — заказ по id; (nil, nil), если записи нет.
func (r *OrderRepository) FindByID(ctx context.Context, id int64, includeItems bool) (*domain.Order, error) {
	order, err := scanOrderRow(r.pool.QueryRow(ctx, `
		SELECT `+orderColumns+`
		FROM orders WHERE id = $1
	`, id))
	if err != nil || order == nil {
		return nil, err
	}

	if includeItems {
		items, err := loadItems(ctx, r.pool, []int64{id})
		if err != nil {
			return nil, err
		}
		order.Items = items[id]
	}
	return order, nil
}

// FindAllActive — заказы со статусом != delivered, по дате создания DESC.
// Позиции дочитываются одним запросом для всех id страницы и склеиваются
// в памяти, порядок базового SELECT сохраняется.
func (r *OrderRepository) FindAllActive(ctx context.Context) ([]*domain.Order, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE status <> $1
		ORDER BY creation_date DESC, id DESC
	`, domain.StatusDelivered)
	if err != nil {
		return nil, fmt.Errorf("select active orders: %w", err)
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0, 16)
	ids := make([]int64, 0, 16)
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(&order.ID, &order.ClientName, &order.Status, &order.CreationDate, &order.UpdatedOn); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, &order)
		ids = append(ids, order.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("orders rows: %w", err)
	}
	if len(orders) == 0 {
		return orders, nil // пустой список
	}

	itemsByID, err := loadItems(ctx, r.pool, ids)
	if err != nil {
		return nil, err
	}
	for _, order := range orders {
		order.Items = itemsByID[order.ID]
	}
	return orders, nil
}

// WithinTx — выполняет fn в одной транзакции.
func (r *OrderRepository) WithinTx(ctx context.Context, fn func(ctx context.Context, tx ports.OrderTx) error) error {
	transaction, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		// При уже завершённой транзакции Rollback вернёт ErrTxClosed — игнорируем.
		if rbErr := transaction.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			_ = rbErr
		}
	}()

	if err := fn(ctx, &orderTx{tx: transaction}); err != nil {
		return err
	}

	if err := transaction.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// orderTx — транзакционная область поверх pgx.Tx.
type orderTx struct {
	tx pgx.Tx
}

var _ ports.OrderTx = (*orderTx)(nil)

// InsertOrder — вставка заказа со статусом initiated; id и таймстемпы назначает БД.
func (t *orderTx) InsertOrder(ctx context.Context, clientName string) (*domain.Order, error) {
	order, err := scanOrderRow(t.tx.QueryRow(ctx, `
		INSERT INTO orders (client_name, status)
		VALUES ($1, $2)
		RETURNING `+orderColumns+`
	`, clientName, domain.StatusInitiated))
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}
	return order, nil
}

// InsertItems — вставка позиций через COPY (CopyFromRows); быстрее, чем INSERT в цикле.
func (t *orderTx) InsertItems(ctx context.Context, orderID int64, items []domain.NewOrderItem) error {
	rows := make([][]any, 0, len(items))
	for _, item := range items {
		rows = append(rows, []any{orderID, item.Description, item.Quantity, item.UnitPrice})
	}

	_, err := t.tx.CopyFrom(
		ctx,
		pgx.Identifier{"order_items"},
		[]string{"order_id", "description", "quantity", "unit_price"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("copy items: %w", err)
	}
	return nil
}

// FindByIDForUpdate — заказ по id под row-level блокировкой.
// Второй конкурентный вызов на том же id ждёт коммита первого.
func (t *orderTx) FindByIDForUpdate(ctx context.Context, id int64) (*domain.Order, error) {
	return scanOrderRow(t.tx.QueryRow(ctx, `
		SELECT `+orderColumns+`
		FROM orders WHERE id = $1
		FOR UPDATE
	`, id))
}

// UpdateStatus — смена статуса с обновлением updated_on.
func (t *orderTx) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error) {
	order, err := scanOrderRow(t.tx.QueryRow(ctx, `
		UPDATE orders SET status = $2, updated_on = now()
		WHERE id = $1
		RETURNING `+orderColumns+`
	`, id, status))
	if err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}

// Delete — удаление заказа; order_items удаляются каскадно (FK).
func (t *orderTx) Delete(ctx context.Context, id int64) error {
	tag, err := t.tx.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

// ------вспомогательные функции------

// scanOrderRow — скан одной строки заказа; pgx.ErrNoRows переводится в (nil, nil).
func scanOrderRow(row pgx.Row) (*domain.Order, error) {
	var order domain.Order
	err := row.Scan(&order.ID, &order.ClientName, &order.Status, &order.CreationDate, &order.UpdatedOn)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan order: %w", err)
	}
	return &order, nil
}

// loadItems — позиции для набора заказов одним запросом, сгруппированные по order_id.
func loadItems(ctx context.Context, q querier, orderIDs []int64) (map[int64][]domain.OrderItem, error) {
	rows, err := q.Query(ctx, `
		SELECT id, description, quantity, unit_price, order_id, creation_date, updated_on
		FROM order_items
		WHERE order_id = ANY($1::bigint[])
		ORDER BY order_id, id
	`, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("select items: %w", err)
	}
	defer rows.Close()

	itemsByID := make(map[int64][]domain.OrderItem, len(orderIDs))
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(
			&item.ID, &item.Description, &item.Quantity, &item.UnitPrice,
			&item.OrderID, &item.CreationDate, &item.UpdatedOn,
		); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		itemsByID[item.OrderID] = append(itemsByID[item.OrderID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("items rows: %w", err)
	}
	return itemsByID, nil
}
