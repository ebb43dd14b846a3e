package domain

import "time"

// OrderStatus — статус жизненного цикла заказа.
// Переходы строго однонаправленные: initiated -> sent -> (удаление строки).
type OrderStatus string

const (
	StatusInitiated OrderStatus = "initiated"
	StatusSent      OrderStatus = "sent"
	// StatusDelivered никогда не сохраняется в БД: доставка представлена
	// удалением строки. Значение оставлено как защитная ветка switch.
	StatusDelivered OrderStatus = "delivered"
)

// Valid — проверяет, что статус входит в известное множество.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusInitiated, StatusSent, StatusDelivered:
		return true
	}
	return false
}

// Order — заказ клиента с позициями.
type Order struct {
	ID           int64       `json:"id"`
	ClientName   string      `json:"clientName"`
	Status       OrderStatus `json:"status"`
	CreationDate time.Time   `json:"creationDate"`
	UpdatedOn    time.Time   `json:"updatedOn"`
	Items        []OrderItem `json:"items,omitempty"`
}

// OrderItem — позиция заказа; принадлежит ровно одному заказу
// и удаляется каскадно вместе с ним.
type OrderItem struct {
	ID           int64     `json:"id"`
	Description  string    `json:"description"`
	Quantity     int       `json:"quantity"`
	UnitPrice    float64   `json:"unitPrice"`
	OrderID      int64     `json:"orderId"`
	CreationDate time.Time `json:"creationDate"`
	UpdatedOn    time.Time `json:"updatedOn"`
}

// NewOrderItem — позиция для создания заказа (id/orderId назначит БД).
type NewOrderItem struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

// AdvanceResult — результат перехода жизненного цикла:
// либо обновлённый заказ (initiated -> sent), либо подтверждение
// с id уже удалённого заказа (sent -> delivered).
type AdvanceResult struct {
	Order     *Order `json:"order,omitempty"`
	Message   string `json:"message,omitempty"`
	ID        int64  `json:"id,omitempty"`
	Delivered bool   `json:"-"`
}

// ActiveOrdersCacheKey — единственный ключ кэша списка активных заказов.
const ActiveOrdersCacheKey = "all_active_orders"
