package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Tarankalsi/backend-triumphllights/internal/adapter/http/middleware"
	"github.com/Tarankalsi/backend-triumphllights/internal/adapter/observ"
	domain "github.com/Tarankalsi/backend-triumphllights/internal/entity"
	"github.com/Tarankalsi/backend-triumphllights/internal/usecase"
	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	create        *usecase.CreateOrder
	cancel        *usecase.CancelOrder
	orders        usecase.OrderStore
	defaultPickup string
}

func NewOrderHandler(create *usecase.CreateOrder, cancel *usecase.CancelOrder, orders usecase.OrderStore, defaultPickup string) *OrderHandler {
	return &OrderHandler{create: create, cancel: cancel, orders: orders, defaultPickup: defaultPickup}
}

type createOrderReq struct {
	AddressID          string `json:"address_id"`
	PaymentMethod      string `json:"payment_method"`
	PickupLocationName string `json:"pickup_location_name"`
}

// validate returns per-field reasons so the client gets something better
// than a bare 400.
func (r createOrderReq) validate() map[string]string {
	problems := map[string]string{}
	if r.AddressID == "" {
		problems["address_id"] = "required"
	}
	if r.PaymentMethod == "" {
		problems["payment_method"] = "required"
	}
	return problems
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req createOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid data format")
		return
	}
	if problems := req.validate(); len(problems) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid data format", "errors": problems})
		return
	}
	if req.PickupLocationName == "" {
		req.PickupLocationName = h.defaultPickup
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 45*time.Second)
	defer cancel()

	out, err := h.create.Execute(ctx, usecase.CreateOrderInput{
		UserID:             c.GetString(middleware.ContextUserID),
		CartToken:          c.GetHeader("Cart-Token"),
		IdempotencyKey:     c.GetHeader("X-Idempotency-Key"),
		AddressID:          req.AddressID,
		PaymentMethod:      domain.PaymentMethod(req.PaymentMethod),
		PickupLocationName: req.PickupLocationName,
	})
	if err != nil {
		observ.OrdersFailed.WithLabelValues(failureStage(err)).Inc()
		respondError(c, err)
		return
	}

	observ.OrdersCreated.Inc()
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Order created successfully",
		"order":   orderView(out.Order),
	})
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	orders, err := h.orders.ListByUser(ctx, c.GetString(middleware.ContextUserID))
	if err != nil {
		respondError(c, err)
		return
	}

	views := make([]gin.H, 0, len(orders))
	for i := range orders {
		views = append(views, orderView(&orders[i]))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "orders": views})
}

func (h *OrderHandler) GetOrderByID(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	o, err := h.orders.GetByID(ctx, c.Param("order_id"))
	if err != nil || o == nil {
		respondError(c, usecase.ErrOrderNotFound)
		return
	}
	if o.UserID != c.GetString(middleware.ContextUserID) {
		respondError(c, usecase.ErrOrderNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "order": orderView(o)})
}

func (h *OrderHandler) CancelOrder(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	err := h.cancel.Execute(ctx, c.GetString(middleware.ContextUserID), c.Param("order_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	observ.OrdersCancelled.Inc()
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order Canceled Successfully"})
}

func failureStage(err error) string {
	var (
		oos *usecase.OutOfStockError
		cse *usecase.CarrierServiceError
	)
	switch {
	case errors.As(err, &oos):
		return "stock"
	case errors.As(err, &cse):
		return "carrier"
	default:
		return "validation"
	}
}

func orderView(o *domain.Order) gin.H {
	items := make([]gin.H, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, gin.H{
			"order_item_id": it.ID,
			"product_id":    it.ProductID,
			"quantity":      it.Quantity,
			"unit_price":    it.UnitPrice.StringFixed(2),
			"sub_total":     it.SubTotal.StringFixed(2),
			"discount":      it.Discount.StringFixed(2),
			"color":         it.Color,
		})
	}
	return gin.H{
		"order_id":            o.ID,
		"status":              string(o.Status),
		"payment_method":      string(o.PaymentMethod),
		"shipping_address_id": o.ShippingAddressID,
		"sub_total":           o.SubTotal.StringFixed(2),
		"discount":            o.Discount.StringFixed(2),
		"tax_amount":          o.TaxAmount.StringFixed(2),
		"shipping_charges":    o.ShippingCharges.StringFixed(2),
		"total_amount":        o.TotalAmount.StringFixed(2),
		"carrier_order_id":    o.CarrierOrderID,
		"carrier_awb_code":    o.CarrierAWBCode,
		"order_items":         items,
		"created_at":          o.CreatedAt,
	}
}
