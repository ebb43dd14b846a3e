package domain

import "errors"

var (
	// ErrOrderNotFound — заказ с указанным id не существует.
	ErrOrderNotFound = errors.New("order not found")

	// ErrUnknownStatus — заказ найден в статусе вне известного множества;
	// фатальная несогласованность данных.
	ErrUnknownStatus = errors.New("unknown order status")

	// ErrCreateFailed — обобщённая ошибка создания заказа:
	// детали остаются в логах, наружу не утекают.
	ErrCreateFailed = errors.New("order creation failed")

	// ErrInternal — обобщённая внутренняя ошибка для неожиданных сбоев.
	ErrInternal = errors.New("internal error")
)
