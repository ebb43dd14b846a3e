package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Gunvolt24/orders_api/internal/domain"
	"github.com/Gunvolt24/orders_api/internal/ports"
	"github.com/Gunvolt24/orders_api/pkg/validate"
	"github.com/gin-gonic/gin"
)

// Handler — HTTP-обработчики поверх прикладного сервиса.
type Handler struct {
	service ports.OrderService
	log     ports.Logger
}

// NewHandler — конструктор Handler.
func NewHandler(service ports.OrderService, log ports.Logger) *Handler {
	return &Handler{service: service, log: log}
}

// createOrder — POST /orders: 201 с созданным заказом, 400 при невалидном входе.
func (h *Handler) createOrder(c *gin.Context) {
	var req validate.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	order, err := h.service.Create(c.Request.Context(), req.ClientName, req.Items)
	if err != nil {
		if errors.Is(err, validate.ErrInvalidOrder) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		// Детали уже в логах сервиса; наружу — обобщённое сообщение.
		c.JSON(http.StatusInternalServerError, gin.H{"error": "order creation failed"})
		return
	}

	c.JSON(http.StatusCreated, order)
}

// listActiveOrders — GET /orders: активные заказы (через кэш).
func (h *Handler) listActiveOrders(c *gin.Context) {
	orders, err := h.service.ListActive(c.Request.Context())
	if err != nil {
		h.log.Errorf(c.Request.Context(), "ListActive failed err=%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// getOrderByID — GET /orders/:id: заказ с позициями или 404.
func (h *Handler) getOrderByID(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		return
	}

	order, err := h.service.GetOrder(c.Request.Context(), id)
	if err != nil {
		h.log.Errorf(c.Request.Context(), "GetOrder failed id=%d err=%v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if order == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	c.JSON(http.StatusOK, order)
}

// advanceOrderState — POST /orders/:id/advance: следующий переход цикла.
// Ответ — обновлённый заказ (initiated -> sent) либо подтверждение удаления.
func (h *Handler) advanceOrderState(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		return
	}

	result, err := h.service.AdvanceState(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	if result.Order != nil {
		c.JSON(http.StatusOK, result.Order)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": result.Message, "id": result.ID})
}

// parseOrderID — id из path-параметра; при ошибке отвечает 400 и возвращает false.
func parseOrderID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return 0, false
	}
	return id, true
}
