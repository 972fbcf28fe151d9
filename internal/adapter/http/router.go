package http

import (
	"github.com/Tarankalsi/backend-triumphllights/internal/adapter/http/middleware"
	"github.com/Tarankalsi/backend-triumphllights/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(oh *OrderHandler, qh *QuoteHandler, wh *WebhookHandler, auth *middleware.UserAuth) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Metrics())

	l := logging.New("http")
	r.Use(middleware.Logging(l))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	// Prometheus endpoint (scraped by Prometheus)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Carrier callbacks are authenticated upstream (IP allowlist at the
	// edge), not with user tokens.
	r.POST("/webhook/status", wh.Status)

	v1 := r.Group("/v1", auth.Require())
	{
		v1.POST("/quote", qh.Quote)
		v1.POST("/orders", oh.CreateOrder)
		v1.GET("/orders", oh.ListOrders)
		v1.GET("/orders/:order_id", oh.GetOrderByID)
		v1.DELETE("/orders/:order_id", oh.CancelOrder)
	}

	return r
}
