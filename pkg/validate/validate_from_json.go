package validate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/Gunvolt24/orders_api/internal/domain"
	"github.com/Gunvolt24/orders_api/internal/ports"
)

// CreateOrderRequest — тело запроса на создание заказа.
type CreateOrderRequest struct {
	ClientName string                `json:"clientName"`
	Items      []domain.NewOrderItem `json:"items"`
}

// ValidateOrderFromJSON — строгий парсинг JSON-запроса на создание заказа
// (DisallowUnknownFields + запрет хвостовых данных) с доменной валидацией.
func ValidateOrderFromJSON(ctx context.Context, validator ports.OrderValidator, raw []byte) (*CreateOrderRequest, error) {
	var req CreateOrderRequest
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}

	// Убеждаемся, что после объекта нет лишних данных.
	if err := dec.Decode(new(struct{})); err != io.EOF {
		return nil, fmt.Errorf("invalid json: trailing data")
	}

	if err := validator.ValidateCreate(ctx, req.ClientName, req.Items); err != nil {
		return nil, err
	}
	return &req, nil
}
