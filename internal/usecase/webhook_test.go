package usecase

import (
	"context"
	"testing"

	domain "github.com/Tarankalsi/backend-triumphllights/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyCarrierStatusUpdatesMatchingOrders(t *testing.T) {
	store := newMemOrderStore(nil)
	seededOrder(store, domain.StatusProcessing)
	cache := newFakeCache()
	events := &fakeEvents{}

	uc := NewApplyCarrierStatus(store, cache, events)
	err := uc.Execute(context.Background(), StatusEvent{AWB: "AWB123", CurrentStatus: "Delivered"})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusDelivered, store.orders["o1"].Status)
	assert.Equal(t, "Delivered", store.orders["o1"].CarrierStatus)
	assert.False(t, store.orders["o1"].CarrierUpdatedAt.IsZero())

	v, ok, _ := cache.GetStatus(context.Background(), "o1")
	assert.True(t, ok)
	assert.Equal(t, "Delivered", v)

	require.Len(t, events.status, 1)
	assert.Equal(t, "o1", events.status[0].OrderID)
	assert.Equal(t, "AWB123", events.status[0].AWBCode)
}

func TestApplyCarrierStatusIsIdempotent(t *testing.T) {
	store := newMemOrderStore(nil)
	seededOrder(store, domain.StatusProcessing)
	uc := NewApplyCarrierStatus(store, nil, nil)

	ev := StatusEvent{AWB: "AWB123", CurrentStatus: "Delivered"}
	require.NoError(t, uc.Execute(context.Background(), ev))
	first := *store.orders["o1"]

	require.NoError(t, uc.Execute(context.Background(), ev))
	assert.Equal(t, first.Status, store.orders["o1"].Status)
	assert.Equal(t, first.CarrierStatus, store.orders["o1"].CarrierStatus)
}

func TestApplyCarrierStatusUnknownAWB(t *testing.T) {
	store := newMemOrderStore(nil)
	events := &fakeEvents{}

	err := NewApplyCarrierStatus(store, nil, events).Execute(context.Background(),
		StatusEvent{AWB: "no-such-awb", CurrentStatus: "Delivered"})
	require.NoError(t, err, "zero matches is acknowledged, not an error")
	assert.Empty(t, events.status)
}
