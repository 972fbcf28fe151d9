package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "github.com/Tarankalsi/backend-triumphllights/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededOrder(store *memOrderStore, status domain.Status) *domain.Order {
	o := &domain.Order{
		ID:             "o1",
		UserID:         "u1",
		Status:         status,
		CarrierOrderID: "sr-100",
		CarrierAWBCode: "AWB123",
		Items: []domain.OrderItem{
			{ID: "oi-1", OrderID: "o1", ProductID: "p1", Quantity: 2, UnitPrice: dec("150"), SubTotal: dec("300")},
		},
		CreatedAt: time.Now(),
	}
	store.orders[o.ID] = o
	return o
}

func TestCancelOrderHappyPath(t *testing.T) {
	store := newMemOrderStore(map[string]int{"p1": 3})
	gw := &fakeCarrier{}
	events := &fakeEvents{}
	seededOrder(store, domain.StatusProcessing)

	err := NewCancelOrder(store, gw, events).Execute(context.Background(), "u1", "o1")
	require.NoError(t, err)

	assert.Empty(t, store.orders, "order and items deleted")
	assert.Equal(t, 5, store.stock["p1"], "stock restored on cancel")
	require.Len(t, gw.cancelCalls, 1)
	assert.Equal(t, []string{"sr-100"}, gw.cancelCalls[0])
	require.Len(t, events.status, 1)
	assert.Equal(t, string(domain.StatusCancelled), events.status[0].Status)
}

func TestCancelOrderDeliveredConflict(t *testing.T) {
	for _, status := range []domain.Status{domain.StatusDelivered, domain.StatusInTransit, domain.StatusOutForDelivery} {
		t.Run(string(status), func(t *testing.T) {
			store := newMemOrderStore(map[string]int{"p1": 3})
			gw := &fakeCarrier{}
			seededOrder(store, status)

			err := NewCancelOrder(store, gw, nil).Execute(context.Background(), "u1", "o1")
			require.ErrorIs(t, err, ErrOrderNotCancellable)

			assert.Len(t, store.orders, 1, "nothing deleted")
			assert.Empty(t, gw.cancelCalls, "carrier not called")
			assert.Equal(t, 3, store.stock["p1"])
		})
	}
}

func TestCancelOrderCompletesWhenRequestContextDies(t *testing.T) {
	store := newMemOrderStore(map[string]int{"p1": 3})
	seededOrder(store, domain.StatusProcessing)

	// The carrier confirmed the cancel; the local delete must land even if
	// the client went away during the carrier call.
	ctx, cancel := context.WithCancel(context.Background())
	gw := &fakeCarrier{CancelFn: func(ctx context.Context, ids []string) error {
		cancel()
		return nil
	}}

	err := NewCancelOrder(store, gw, nil).Execute(ctx, "u1", "o1")
	require.NoError(t, err)
	assert.Empty(t, store.orders)
	assert.Equal(t, 5, store.stock["p1"])
}

func TestCancelOrderCarrierFailureAborts(t *testing.T) {
	store := newMemOrderStore(map[string]int{"p1": 3})
	gw := &fakeCarrier{CancelFn: func(ctx context.Context, ids []string) error {
		return errors.New("carrier rejected cancellation")
	}}
	seededOrder(store, domain.StatusProcessing)

	err := NewCancelOrder(store, gw, nil).Execute(context.Background(), "u1", "o1")
	var cse *CarrierServiceError
	require.ErrorAs(t, err, &cse)

	assert.Len(t, store.orders, 1, "carrier failure must not delete anything")
	assert.Equal(t, 3, store.stock["p1"])
}

func TestCancelOrderWrongUser(t *testing.T) {
	store := newMemOrderStore(map[string]int{"p1": 3})
	seededOrder(store, domain.StatusProcessing)

	err := NewCancelOrder(store, &fakeCarrier{}, nil).Execute(context.Background(), "someone-else", "o1")
	require.ErrorIs(t, err, ErrOrderNotFound)
	assert.Len(t, store.orders, 1)
}

func TestCancelOrderWithoutCarrierRef(t *testing.T) {
	store := newMemOrderStore(map[string]int{"p1": 3})
	o := seededOrder(store, domain.StatusProcessing)
	o.CarrierOrderID = ""

	err := NewCancelOrder(store, &fakeCarrier{}, nil).Execute(context.Background(), "u1", "o1")
	require.ErrorIs(t, err, ErrNoCarrierOrder)
}
