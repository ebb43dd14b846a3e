package validate

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Gunvolt24/orders_api/internal/domain"
	"github.com/Gunvolt24/orders_api/internal/ports"
)

// Проверка, что OrderValidator удовлетворяет интерфейсу OrderValidator.
var _ ports.OrderValidator = (*OrderValidator)(nil)

// ErrInvalidOrder — базовая (sentinel error) ошибка валидации.
var ErrInvalidOrder = errors.New("order validation failed")

// OrderValidator — структура для валидации входных данных заказа.
type OrderValidator struct{}

// NewOrderValidator — конструктор OrderValidator.
// Возвращает ErrInvalidOrder (с обёрнутой причиной) при любой проблеме.
func NewOrderValidator() *OrderValidator { return &OrderValidator{} }

// ValidateCreate — проверяет корректность данных для создания заказа.
// Выполняется до открытия транзакции; ошибка содержит указание на поле.
func (v *OrderValidator) ValidateCreate(_ context.Context, clientName string, items []domain.NewOrderItem) error {
	if strings.TrimSpace(clientName) == "" {
		return fmt.Errorf("%w: clientName обязателен", ErrInvalidOrder)
	}
	return v.validateItems(items)
}

// validateItems — валидация позиций: заказ без позиций не существует.
func (v *OrderValidator) validateItems(items []domain.NewOrderItem) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: items не должен быть пустым", ErrInvalidOrder)
	}

	for i := range items {
		item := &items[i]
		idx := strconv.Itoa(i)

		if strings.TrimSpace(item.Description) == "" {
			return fmt.Errorf("%w: items[%s].description обязателен", ErrInvalidOrder, idx)
		}
		if item.Quantity < 1 {
			return fmt.Errorf("%w: items[%s].quantity должен быть не меньше 1", ErrInvalidOrder, idx)
		}
		if item.UnitPrice <= 0 {
			return fmt.Errorf("%w: items[%s].unitPrice должен быть положительным", ErrInvalidOrder, idx)
		}
	}
	return nil
}
