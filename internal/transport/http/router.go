package rest

import (
	"net/http"

	"github.com/Gunvolt24/orders_api/pkg/httpx"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// NewRouter — сборка роутера: middleware, маршруты API, служебные эндпоинты.
// otelServiceName пустой — трейсинг-middleware не подключается.
func NewRouter(h *Handler, otelServiceName string) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	if otelServiceName != "" {
		r.Use(otelgin.Middleware(otelServiceName))
	}
	r.Use(httpx.RequestIDMiddleware())
	r.Use(httpx.RequestLogger(h.log))

	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/orders", h.createOrder)
	r.GET("/orders", h.listActiveOrders)
	r.GET("/orders/:id", h.getOrderByID)
	r.POST("/orders/:id/advance", h.advanceOrderState)

	return r
}
