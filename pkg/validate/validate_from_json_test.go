package validate

import (
	"context"
	"errors"
	"testing"
)

func TestValidateOrderFromJSON_OK(t *testing.T) {
	raw := []byte(`{"clientName":"client","items":[{"description":"Widget","quantity":2,"unitPrice":9.99}]}`)

	req, err := ValidateOrderFromJSON(context.Background(), NewOrderValidator(), raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.ClientName != "client" || len(req.Items) != 1 || req.Items[0].Quantity != 2 {
		t.Fatalf("unexpected request: %+v", req)
	}
}

func TestValidateOrderFromJSON_Rejects(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"broken json", `{"clientName":`},
		{"unknown field", `{"clientName":"c","items":[{"description":"a","quantity":1,"unitPrice":1}],"extra":1}`},
		{"trailing data", `{"clientName":"c","items":[{"description":"a","quantity":1,"unitPrice":1}]} {}`},
		{"wrong type", `{"clientName":"c","items":[{"description":"a","quantity":"two","unitPrice":1}]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ValidateOrderFromJSON(context.Background(), NewOrderValidator(), []byte(tc.raw)); err == nil {
				t.Fatal("want error")
			}
		})
	}
}

func TestValidateOrderFromJSON_DomainValidation(t *testing.T) {
	raw := []byte(`{"clientName":"","items":[{"description":"a","quantity":1,"unitPrice":1}]}`)

	_, err := ValidateOrderFromJSON(context.Background(), NewOrderValidator(), raw)
	if !errors.Is(err, ErrInvalidOrder) {
		t.Fatalf("want ErrInvalidOrder, got %v", err)
	}
}
