package http

import (
	"context"
	"net/http"
	"time"

	"github.com/Tarankalsi/backend-triumphllights/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// QuoteHandler prices a cart without committing anything: same bill the
// order commit would compute, returned to the client pre-order.
type QuoteHandler struct {
	tokens    usecase.CartTokenDecoder
	carts     usecase.CartRepo
	addresses usecase.AddressRepo
	billing   *usecase.Billing

	taxRatePercent decimal.Decimal
	defaultPickup  string
}

func NewQuoteHandler(tokens usecase.CartTokenDecoder, carts usecase.CartRepo, addresses usecase.AddressRepo, billing *usecase.Billing, taxRatePercent decimal.Decimal, defaultPickup string) *QuoteHandler {
	return &QuoteHandler{tokens: tokens, carts: carts, addresses: addresses, billing: billing, taxRatePercent: taxRatePercent, defaultPickup: defaultPickup}
}

type quoteReq struct {
	AddressID          string `json:"address_id"`
	PickupLocationName string `json:"pickup_location_name"`
}

func (h *QuoteHandler) Quote(c *gin.Context) {
	var req quoteReq
	if err := c.ShouldBindJSON(&req); err != nil || req.AddressID == "" {
		fail(c, http.StatusBadRequest, "Invalid data format")
		return
	}
	if req.PickupLocationName == "" {
		req.PickupLocationName = h.defaultPickup
	}

	token := c.GetHeader("Cart-Token")
	if token == "" {
		respondError(c, usecase.ErrCartTokenMissing)
		return
	}
	cartID, err := h.tokens.DecodeCartToken(token)
	if err != nil {
		respondError(c, usecase.ErrCartTokenInvalid)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	cart, err := h.carts.GetWithItems(ctx, cartID)
	if err != nil || cart == nil || len(cart.Items) == 0 {
		respondError(c, usecase.ErrCartNotFound)
		return
	}
	address, err := h.addresses.GetByID(ctx, req.AddressID)
	if err != nil || address == nil {
		respondError(c, usecase.ErrAddressNotFound)
		return
	}

	bill, courier, err := h.billing.ComputeBill(ctx, cart.Items, address, h.taxRatePercent, req.PickupLocationName)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"bill": gin.H{
			"sub_total":    bill.SubTotal.StringFixed(2),
			"discount":     bill.Discount.StringFixed(2),
			"tax":          bill.Tax.StringFixed(2),
			"delivery_fee": bill.DeliveryFee.StringFixed(2),
			"total":        bill.Total.StringFixed(2),
		},
		"courier": gin.H{
			"courier_id":              courier.CourierID,
			"courier_name":            courier.CourierName,
			"estimated_delivery_days": courier.EstimatedDeliveryDays,
		},
	})
}
