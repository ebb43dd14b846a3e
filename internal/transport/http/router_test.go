package rest_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Gunvolt24/orders_api/internal/domain"
	"github.com/Gunvolt24/orders_api/internal/ports/mocks"
	rest "github.com/Gunvolt24/orders_api/internal/transport/http"
	"github.com/Gunvolt24/orders_api/pkg/validate"
	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
)

type noopLogger struct{}

func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

func newTestRouter(t *testing.T) (*gin.Engine, *mocks.MockOrderService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockOrderService(ctrl)
	h := rest.NewHandler(svc, noopLogger{})
	return rest.NewRouter(h, ""), svc
}

func doRequest(r *gin.Engine, method, path string, body string) *httptest.ResponseRecorder {
	var rd *bytes.Reader
	if body != "" {
		rd = bytes.NewReader([]byte(body))
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateOrder_Created(t *testing.T) {
	r, svc := newTestRouter(t)

	created := &domain.Order{ID: 1, ClientName: "Cliente de Prueba", Status: domain.StatusInitiated,
		Items: []domain.OrderItem{{ID: 1, Description: "Item E2E", Quantity: 1, UnitPrice: 10.5, OrderID: 1}}}
	svc.EXPECT().Create(gomock.Any(), "Cliente de Prueba", gomock.Any()).Return(created, nil)

	body := `{"clientName":"Cliente de Prueba","items":[{"description":"Item E2E","quantity":1,"unitPrice":10.5}]}`
	w := doRequest(r, http.MethodPost, "/orders", body)

	if w.Code != http.StatusCreated {
		t.Fatalf("want 201, got %d: %s", w.Code, w.Body.String())
	}
	var got domain.Order
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if got.Status != domain.StatusInitiated || got.ClientName != "Cliente de Prueba" {
		t.Fatalf("unexpected body: %+v", got)
	}
}

func TestCreateOrder_MalformedBody(t *testing.T) {
	r, svc := newTestRouter(t)
	svc.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := doRequest(r, http.MethodPost, "/orders", `{"clientName":`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", w.Code)
	}
}

func TestCreateOrder_ValidationError(t *testing.T) {
	r, svc := newTestRouter(t)

	svc.EXPECT().Create(gomock.Any(), "x", gomock.Any()).
		Return(nil, validate.ErrInvalidOrder)

	w := doRequest(r, http.MethodPost, "/orders", `{"clientName":"x","items":[]}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", w.Code)
	}
}

func TestCreateOrder_ServiceFailure(t *testing.T) {
	r, svc := newTestRouter(t)

	svc.EXPECT().Create(gomock.Any(), "x", gomock.Any()).Return(nil, domain.ErrCreateFailed)

	w := doRequest(r, http.MethodPost, "/orders", `{"clientName":"x","items":[{"description":"a","quantity":1,"unitPrice":1}]}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("want 500, got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "pgx") {
		t.Fatalf("internal details leaked: %s", w.Body.String())
	}
}

func TestListActiveOrders_OK(t *testing.T) {
	r, svc := newTestRouter(t)

	svc.EXPECT().ListActive(gomock.Any()).
		Return([]*domain.Order{{ID: 1, Status: domain.StatusInitiated}, {ID: 2, Status: domain.StatusSent}}, nil)

	w := doRequest(r, http.MethodGet, "/orders", "")
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}
	var got []*domain.Order
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil || len(got) != 2 {
		t.Fatalf("unexpected body %q err=%v", w.Body.String(), err)
	}
}

func TestListActiveOrders_Failure(t *testing.T) {
	r, svc := newTestRouter(t)

	svc.EXPECT().ListActive(gomock.Any()).Return(nil, errors.New("DB down"))

	w := doRequest(r, http.MethodGet, "/orders", "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("want 500, got %d", w.Code)
	}
}

func TestGetOrderByID_OK(t *testing.T) {
	r, svc := newTestRouter(t)

	svc.EXPECT().GetOrder(gomock.Any(), int64(7)).
		Return(&domain.Order{ID: 7, Status: domain.StatusInitiated}, nil)

	w := doRequest(r, http.MethodGet, "/orders/7", "")
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}
}

func TestGetOrderByID_NotFound(t *testing.T) {
	r, svc := newTestRouter(t)

	svc.EXPECT().GetOrder(gomock.Any(), int64(999)).Return(nil, nil)

	w := doRequest(r, http.MethodGet, "/orders/999", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("want 404, got %d", w.Code)
	}
}

func TestGetOrderByID_InvalidID(t *testing.T) {
	r, svc := newTestRouter(t)
	svc.EXPECT().GetOrder(gomock.Any(), gomock.Any()).Times(0)

	for _, id := range []string{"abc", "0", "-3"} {
		w := doRequest(r, http.MethodGet, "/orders/"+id, "")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("id=%q: want 400, got %d", id, w.Code)
		}
	}
}

func TestAdvanceOrderState_ReturnsUpdatedOrder(t *testing.T) {
	r, svc := newTestRouter(t)

	svc.EXPECT().AdvanceState(gomock.Any(), int64(5)).
		Return(&domain.AdvanceResult{Order: &domain.Order{ID: 5, Status: domain.StatusSent}}, nil)

	w := doRequest(r, http.MethodPost, "/orders/5/advance", "")
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}
	var got domain.Order
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil || got.Status != domain.StatusSent {
		t.Fatalf("unexpected body %q err=%v", w.Body.String(), err)
	}
}

func TestAdvanceOrderState_ReturnsDeliveryConfirmation(t *testing.T) {
	r, svc := newTestRouter(t)

	svc.EXPECT().AdvanceState(gomock.Any(), int64(5)).
		Return(&domain.AdvanceResult{Message: "order 5 marked as delivered and removed", ID: 5, Delivered: true}, nil)

	w := doRequest(r, http.MethodPost, "/orders/5/advance", "")
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}
	var got map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := got["message"]; !ok {
		t.Fatalf("want confirmation message, got %v", got)
	}
	if id, ok := got["id"].(float64); !ok || int64(id) != 5 {
		t.Fatalf("want id=5, got %v", got["id"])
	}
}

func TestAdvanceOrderState_NotFound(t *testing.T) {
	r, svc := newTestRouter(t)

	svc.EXPECT().AdvanceState(gomock.Any(), int64(5)).Return(nil, domain.ErrOrderNotFound)

	w := doRequest(r, http.MethodPost, "/orders/5/advance", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("want 404, got %d", w.Code)
	}
}

func TestAdvanceOrderState_InternalError(t *testing.T) {
	r, svc := newTestRouter(t)

	svc.EXPECT().AdvanceState(gomock.Any(), int64(5)).Return(nil, domain.ErrInternal)

	w := doRequest(r, http.MethodPost, "/orders/5/advance", "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("want 500, got %d", w.Code)
	}
}

func TestPing(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(r, http.MethodGet, "/ping", "")
	if w.Code != http.StatusOK || w.Body.String() != "pong" {
		t.Fatalf("want pong, got %d %q", w.Code, w.Body.String())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(r, http.MethodGet, "/metrics", "")
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}
}

func TestUnknownRoute(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(r, http.MethodGet, "/nope", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("want 404, got %d", w.Code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(r, http.MethodDelete, "/orders", "")
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("want 405, got %d", w.Code)
	}
}

func TestRequestIDPropagated(t *testing.T) {
	r, svc := newTestRouter(t)

	svc.EXPECT().ListActive(gomock.Any()).Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.Header.Set("X-Request-Id", "req-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-Id"); got != "req-123" {
		t.Fatalf("want X-Request-Id echoed, got %q", got)
	}
}
