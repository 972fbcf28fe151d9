package usecase

import (
	"context"
	"time"

	domain "github.com/Tarankalsi/backend-triumphllights/internal/entity"
)

// CancelOrder handles user-initiated cancellation. The carrier must confirm
// its side first; only then are the order row and its items deleted and the
// reserved stock restored. A carrier failure aborts with nothing removed.
type CancelOrder struct {
	orders OrderStore
	gw     CarrierGateway
	events EventPublisher
}

func NewCancelOrder(orders OrderStore, gw CarrierGateway, events EventPublisher) *CancelOrder {
	return &CancelOrder{orders: orders, gw: gw, events: events}
}

func (uc *CancelOrder) Execute(ctx context.Context, userID, orderID string) error {
	order, err := uc.orders.GetByID(ctx, orderID)
	if err != nil || order == nil {
		return ErrOrderNotFound
	}
	if userID != "" && order.UserID != userID {
		return ErrOrderNotFound
	}
	if !order.Cancellable() {
		return ErrOrderNotCancellable
	}
	if order.CarrierOrderID == "" {
		return ErrNoCarrierOrder
	}

	if err := uc.gw.CancelShipments(ctx, []string{order.CarrierOrderID}); err != nil {
		return &CarrierServiceError{Op: "cancel", Err: err}
	}

	// The carrier side is already cancelled; the local delete must land
	// even if the request context died during the carrier call.
	dctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	if err := uc.orders.DeleteRestoringStock(dctx, orderID); err != nil {
		return err
	}

	if uc.events != nil {
		_ = uc.events.PublishStatusChanged(dctx, StatusChangedMsg{
			Type:    "OrderStatusChangedV1",
			OrderID: orderID,
			Status:  string(domain.StatusCancelled),
		})
	}
	return nil
}
