package usecase

import (
	"context"
	"time"

	"github.com/Tarankalsi/backend-triumphllights/internal/logging"
)

type StatusEvent struct {
	AWB           string `json:"awb"`
	CurrentStatus string `json:"current_status"`
}

// ApplyCarrierStatus ingests a carrier webhook event. The update is a plain
// overwrite keyed by AWB code, so applying the same event twice lands in the
// same final state. Zero matching orders is fine: the event may predate
// order linkage and the carrier will not usefully retry on an error.
type ApplyCarrierStatus struct {
	orders OrderStore
	cache  OrderCache
	events EventPublisher
}

func NewApplyCarrierStatus(orders OrderStore, cache OrderCache, events EventPublisher) *ApplyCarrierStatus {
	return &ApplyCarrierStatus{orders: orders, cache: cache, events: events}
}

func (uc *ApplyCarrierStatus) Execute(ctx context.Context, ev StatusEvent) error {
	ids, err := uc.orders.UpdateStatusByAWB(ctx, ev.AWB, ev.CurrentStatus, time.Now().UTC())
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		logging.FromCtx(ctx).Info("webhook matched no orders", "awb", ev.AWB)
		return nil
	}

	for _, id := range ids {
		if uc.cache != nil {
			_ = uc.cache.SetStatus(ctx, id, ev.CurrentStatus)
		}
		if uc.events != nil {
			_ = uc.events.PublishStatusChanged(ctx, StatusChangedMsg{
				Type:    "OrderStatusChangedV1",
				OrderID: id,
				AWBCode: ev.AWB,
				Status:  ev.CurrentStatus,
			})
		}
	}
	return nil
}
