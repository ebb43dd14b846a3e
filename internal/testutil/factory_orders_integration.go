//go:build integration

package testutil

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/Gunvolt24/orders_api/internal/domain"
)

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func UniqSuffix() string { return randHex(6) }

// Мини-генератор валидного набора позиций
func MakeItems(n int) []domain.NewOrderItem {
	items := make([]domain.NewOrderItem, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, domain.NewOrderItem{
			Description: fmt.Sprintf("item-%d-%s", i, UniqSuffix()),
			Quantity:    i + 1,
			UnitPrice:   float64(10*(i+1)) + 0.5,
		})
	}
	return items
}

func MakeClientName() string {
	return "client-" + UniqSuffix()
}
