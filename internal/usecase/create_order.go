package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/Tarankalsi/backend-triumphllights/internal/adapter/observ"
	domain "github.com/Tarankalsi/backend-triumphllights/internal/entity"
	"github.com/Tarankalsi/backend-triumphllights/internal/logging"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateOrderInput struct {
	UserID             string
	CartToken          string
	IdempotencyKey     string
	AddressID          string
	PaymentMethod      domain.PaymentMethod
	PickupLocationName string
}

type CreateOrderOutput struct {
	Order *domain.Order
}

// CreateOrder drives one order-creation request through validation, stock
// reservation, persistence, shipment creation and confirmation. Stock
// reservation and the order insert share one transaction; the carrier call
// happens after commit, with a compensating delete-and-restock on failure.
type CreateOrder struct {
	tokens    CartTokenDecoder
	users     UserRepo
	addresses AddressRepo
	carts     CartRepo
	orders    OrderStore
	billing   *Billing
	gw        CarrierGateway
	mailer    Mailer
	events    EventPublisher
	idem      IdempotencyStore
	cache     OrderCache

	taxRatePercent decimal.Decimal
}

func NewCreateOrder(tokens CartTokenDecoder, users UserRepo, addresses AddressRepo, carts CartRepo, orders OrderStore, billing *Billing, gw CarrierGateway, mailer Mailer, events EventPublisher, idem IdempotencyStore, cache OrderCache, taxRatePercent decimal.Decimal) *CreateOrder {
	return &CreateOrder{
		tokens:         tokens,
		users:          users,
		addresses:      addresses,
		carts:          carts,
		orders:         orders,
		billing:        billing,
		gw:             gw,
		mailer:         mailer,
		events:         events,
		idem:           idem,
		cache:          cache,
		taxRatePercent: taxRatePercent,
	}
}

func (uc *CreateOrder) Execute(ctx context.Context, in CreateOrderInput) (CreateOrderOutput, error) {
	if in.IdempotencyKey == "" {
		return uc.execute(ctx, in)
	}

	// Fast path: a repeated request returns the order created the first
	// time around.
	if id, ok, _ := uc.idem.Recall(ctx, in.UserID, in.IdempotencyKey); ok {
		o, err := uc.orders.GetByID(ctx, id)
		if err != nil {
			return CreateOrderOutput{}, err
		}
		return CreateOrderOutput{Order: o}, nil
	}
	ok, err := uc.idem.TryLock(ctx, in.UserID, in.IdempotencyKey)
	if err != nil {
		return CreateOrderOutput{}, err
	}
	if !ok {
		return CreateOrderOutput{}, ErrDuplicate
	}

	out, err := uc.execute(ctx, in)
	if err != nil {
		// A failed attempt must not burn the key; the client's retry with
		// the same key is the whole point.
		_ = uc.idem.Release(context.WithoutCancel(ctx), in.UserID, in.IdempotencyKey)
		return CreateOrderOutput{}, err
	}
	_ = uc.idem.Remember(ctx, in.UserID, in.IdempotencyKey, out.Order.ID)
	return out, nil
}

func (uc *CreateOrder) execute(ctx context.Context, in CreateOrderInput) (CreateOrderOutput, error) {
	log := logging.FromCtx(ctx)

	// ValidatingInput: all checks run before any mutation.
	if in.CartToken == "" {
		return CreateOrderOutput{}, ErrCartTokenMissing
	}
	cartID, err := uc.tokens.DecodeCartToken(in.CartToken)
	if err != nil {
		return CreateOrderOutput{}, ErrCartTokenInvalid
	}
	if in.PaymentMethod != domain.PaymentCashOnDelivery {
		return CreateOrderOutput{}, ErrUnsupportedPayment
	}

	user, err := uc.users.GetByID(ctx, in.UserID)
	if err != nil || user == nil {
		return CreateOrderOutput{}, ErrUserNotFound
	}
	address, err := uc.addresses.GetByID(ctx, in.AddressID)
	if err != nil || address == nil {
		return CreateOrderOutput{}, ErrAddressNotFound
	}
	cart, err := uc.carts.GetWithItems(ctx, cartID)
	if err != nil || cart == nil || len(cart.Items) == 0 {
		return CreateOrderOutput{}, ErrCartNotFound
	}

	// CartResolved: recompute the bill server-side. Client amounts are
	// never trusted.
	weight, err := CartWeightKg(cart.Items)
	if err != nil {
		return CreateOrderOutput{}, err
	}
	bill, _, err := uc.billing.ComputeBill(ctx, cart.Items, address, uc.taxRatePercent, in.PickupLocationName)
	if err != nil {
		return CreateOrderOutput{}, err
	}

	order := buildOrder(in, cart, bill)

	// StockReserved -> OrderPersisted: one transaction.
	if err := uc.orders.CreateWithReservation(ctx, order); err != nil {
		return CreateOrderOutput{}, err
	}

	// ShipmentRequested: network call outside the transaction. Package
	// dimensions come from the first line item.
	first := cart.Items[0].Product
	shipment, err := uc.gw.CreateShipment(ctx, ShipmentRequest{
		Order:    order,
		User:     user,
		Address:  address,
		Items:    cart.Items,
		WeightKg: weight,
		LengthCM: first.LengthCM,
		WidthCM:  first.WidthCM,
		HeightCM: first.HeightCM,
	})
	if err != nil {
		return CreateOrderOutput{}, uc.compensate(ctx, order.ID, &CarrierServiceError{Op: "create shipment", Err: err})
	}
	if shipment.StatusCode != 1 {
		return CreateOrderOutput{}, uc.compensate(ctx, order.ID, &CarrierServiceError{Op: "create shipment", Err: fmt.Errorf("carrier status code %d", shipment.StatusCode)})
	}

	tracking, err := uc.gw.Track(ctx, shipment.OrderID, shipment.ChannelID)
	if err != nil {
		return CreateOrderOutput{}, uc.compensate(ctx, order.ID, &CarrierServiceError{Op: "tracking", Err: err})
	}

	refs := CarrierRefs{
		OrderID:        shipment.OrderID,
		ShipmentID:     shipment.ShipmentID,
		ChannelOrderID: shipment.ChannelOrderID,
		AWBCode:        tracking.AWBCode,
		Status:         shipment.Status,
	}
	if err := uc.orders.SetCarrierRefs(ctx, order.ID, refs); err != nil {
		return CreateOrderOutput{}, uc.compensate(ctx, order.ID, err)
	}
	order.CarrierOrderID = refs.OrderID
	order.CarrierShipmentID = refs.ShipmentID
	order.CarrierChannelOrderID = refs.ChannelOrderID
	order.CarrierAWBCode = refs.AWBCode
	order.CarrierStatus = refs.Status

	if err := uc.carts.ClearItems(ctx, cart.ID); err != nil {
		return CreateOrderOutput{}, uc.compensate(ctx, order.ID, err)
	}

	// Confirmed. Email and event are best-effort; neither is re-attempted.
	if err := uc.mailer.SendOrderConfirmation(user.Email, user.FullName, order); err != nil {
		log.Error("order confirmation email failed", "order_id", order.ID, "err", err)
	}
	if uc.events != nil {
		_ = uc.events.PublishOrderCreated(ctx, OrderCreatedMsg{
			Type:        "OrderCreatedV1",
			OrderID:     order.ID,
			UserID:      order.UserID,
			TotalAmount: order.TotalAmount.StringFixed(2),
		})
	}
	if uc.cache != nil {
		_ = uc.cache.SetStatus(ctx, order.ID, string(order.Status))
	}
	return CreateOrderOutput{Order: order}, nil
}

// compensate deletes the just-created order and restores the stock the
// reservation decremented, then hands the original cause back to the caller.
// The request context may already be cancelled or past its deadline (that is
// often what caused the failure), so the delete runs detached from it with
// its own bound.
func (uc *CreateOrder) compensate(ctx context.Context, orderID string, cause error) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	if err := uc.orders.DeleteRestoringStock(ctx, orderID); err != nil {
		logging.FromCtx(ctx).Error("compensating delete failed", "order_id", orderID, "err", err)
		return fmt.Errorf("compensating delete failed after %w: %v", cause, err)
	}
	observ.OrdersCompensated.Inc()
	return cause
}

func buildOrder(in CreateOrderInput, cart *domain.Cart, bill domain.Bill) *domain.Order {
	now := time.Now().UTC()
	order := &domain.Order{
		ID:                uuid.NewString(),
		UserID:            in.UserID,
		CartID:            cart.ID,
		Status:            domain.StatusProcessing,
		PaymentMethod:     in.PaymentMethod,
		ShippingAddressID: in.AddressID,
		SubTotal:          bill.SubTotal,
		Discount:          bill.Discount,
		TaxAmount:         bill.Tax,
		ShippingCharges:   bill.DeliveryFee,
		TotalAmount:       bill.Total,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	hundred := decimal.NewFromInt(100)
	for _, item := range cart.Items {
		qty := decimal.NewFromInt(int64(item.Quantity))
		order.Items = append(order.Items, domain.OrderItem{
			ID:        uuid.NewString(),
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.Product.Price,
			SubTotal:  item.Product.Price.Mul(qty),
			Discount:  item.Product.Price.Mul(item.Product.DiscountPercent).Div(hundred),
			Color:     item.Color,
		})
	}
	return order
}
