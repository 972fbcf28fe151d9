package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	domain "github.com/Tarankalsi/backend-triumphllights/internal/entity"
	"github.com/shopspring/decimal"
)

// Test doubles for the ports. Function fields override behavior per test;
// the zero value fails loudly where a test forgot to set one.

type fakeCarrier struct {
	PickupLocationsFn func(ctx context.Context) ([]domain.PickupLocation, error)
	ServiceabilityFn  func(ctx context.Context, q ServiceabilityQuery) ([]domain.CourierQuote, error)
	CreateShipmentFn  func(ctx context.Context, req ShipmentRequest) (*ShipmentResult, error)
	TrackFn           func(ctx context.Context, carrierOrderID, channelID string) (*Tracking, error)
	CancelFn          func(ctx context.Context, ids []string) error

	mu                   sync.Mutex
	serviceabilityCalls  []ServiceabilityQuery
	createShipmentCalls  int
	cancelCalls          [][]string
}

func (f *fakeCarrier) PickupLocations(ctx context.Context) ([]domain.PickupLocation, error) {
	if f.PickupLocationsFn != nil {
		return f.PickupLocationsFn(ctx)
	}
	return []domain.PickupLocation{{Name: "Primary", PostalCode: "110001"}}, nil
}

func (f *fakeCarrier) Serviceability(ctx context.Context, q ServiceabilityQuery) ([]domain.CourierQuote, error) {
	f.mu.Lock()
	f.serviceabilityCalls = append(f.serviceabilityCalls, q)
	f.mu.Unlock()
	if f.ServiceabilityFn != nil {
		return f.ServiceabilityFn(ctx, q)
	}
	return []domain.CourierQuote{{
		CourierID:             7,
		CourierName:           "test-courier",
		FreightCharge:         decimal.NewFromInt(90),
		EstimatedDeliveryDays: 3,
		AWBAssignStatus:       1,
	}}, nil
}

func (f *fakeCarrier) CreateShipment(ctx context.Context, req ShipmentRequest) (*ShipmentResult, error) {
	f.mu.Lock()
	f.createShipmentCalls++
	f.mu.Unlock()
	if f.CreateShipmentFn != nil {
		return f.CreateShipmentFn(ctx, req)
	}
	return &ShipmentResult{
		StatusCode:     1,
		OrderID:        "sr-100",
		ShipmentID:     "sh-200",
		ChannelID:      "ch-1",
		ChannelOrderID: "co-300",
		Status:         "NEW",
	}, nil
}

func (f *fakeCarrier) Track(ctx context.Context, carrierOrderID, channelID string) (*Tracking, error) {
	if f.TrackFn != nil {
		return f.TrackFn(ctx, carrierOrderID, channelID)
	}
	return &Tracking{AWBCode: "AWB123", CurrentStatus: "NEW"}, nil
}

func (f *fakeCarrier) CancelShipments(ctx context.Context, ids []string) error {
	f.mu.Lock()
	f.cancelCalls = append(f.cancelCalls, ids)
	f.mu.Unlock()
	if f.CancelFn != nil {
		return f.CancelFn(ctx, ids)
	}
	return nil
}

// memOrderStore keeps orders and a stock table in memory, mimicking the
// transactional all-or-nothing behavior of the MySQL store.
type memOrderStore struct {
	mu     sync.Mutex
	stock  map[string]int
	orders map[string]*domain.Order

	createErr   error
	refsErr     error
	deleteCalls int
}

func newMemOrderStore(stock map[string]int) *memOrderStore {
	return &memOrderStore{stock: stock, orders: map[string]*domain.Order{}}
}

func (s *memOrderStore) CreateWithReservation(ctx context.Context, o *domain.Order) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range o.Items {
		if s.stock[it.ProductID] < it.Quantity {
			return &OutOfStockError{ProductID: it.ProductID}
		}
	}
	for _, it := range o.Items {
		s.stock[it.ProductID] -= it.Quantity
	}
	cp := *o
	s.orders[o.ID] = &cp
	return nil
}

func (s *memOrderStore) DeleteRestoringStock(ctx context.Context, orderID string) error {
	// ExecContext refuses work on a dead context; so does this.
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteCalls++
	o, ok := s.orders[orderID]
	if !ok {
		return errors.New("not found")
	}
	for _, it := range o.Items {
		s.stock[it.ProductID] += it.Quantity
	}
	delete(s.orders, orderID)
	return nil
}

func (s *memOrderStore) SetCarrierRefs(ctx context.Context, orderID string, refs CarrierRefs) error {
	if s.refsErr != nil {
		return s.refsErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[orderID]
	if !ok {
		return errors.New("not found")
	}
	o.CarrierOrderID = refs.OrderID
	o.CarrierShipmentID = refs.ShipmentID
	o.CarrierChannelOrderID = refs.ChannelOrderID
	o.CarrierAWBCode = refs.AWBCode
	o.CarrierStatus = refs.Status
	return nil
}

func (s *memOrderStore) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, errors.New("not found")
	}
	cp := *o
	return &cp, nil
}

func (s *memOrderStore) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Order
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (s *memOrderStore) UpdateStatusByAWB(ctx context.Context, awb, status string, at time.Time) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []string
	for id, o := range s.orders {
		if o.CarrierAWBCode == awb {
			o.Status = domain.Status(status)
			o.CarrierStatus = status
			o.CarrierUpdatedAt = at
			ids = append(ids, id)
		}
	}
	return ids, nil
}

type fakeCartRepo struct {
	cart       *domain.Cart
	clearCalls int
	clearErr   error
}

func (f *fakeCartRepo) GetWithItems(ctx context.Context, cartID string) (*domain.Cart, error) {
	if f.cart == nil || f.cart.ID != cartID {
		return nil, errors.New("not found")
	}
	return f.cart, nil
}

func (f *fakeCartRepo) ClearItems(ctx context.Context, cartID string) error {
	f.clearCalls++
	return f.clearErr
}

type fakeAddressRepo struct{ addr *domain.Address }

func (f *fakeAddressRepo) GetByID(ctx context.Context, id string) (*domain.Address, error) {
	if f.addr == nil || f.addr.ID != id {
		return nil, errors.New("not found")
	}
	return f.addr, nil
}

type fakeUserRepo struct{ user *domain.User }

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if f.user == nil || f.user.ID != id {
		return nil, errors.New("not found")
	}
	return f.user, nil
}

type fakeMailer struct {
	mu    sync.Mutex
	sent  []string
	fail  error
}

func (f *fakeMailer) SendOrderConfirmation(to, fullName string, o *domain.Order) error {
	f.mu.Lock()
	f.sent = append(f.sent, to)
	f.mu.Unlock()
	return f.fail
}

type fakeIdem struct {
	mu     sync.Mutex
	locked map[string]bool
	values map[string]string
}

func newFakeIdem() *fakeIdem {
	return &fakeIdem{locked: map[string]bool{}, values: map[string]string{}}
}

func (f *fakeIdem) TryLock(ctx context.Context, scope, key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := scope + ":" + key
	if f.locked[k] {
		return false, nil
	}
	f.locked[k] = true
	return true, nil
}

func (f *fakeIdem) Release(ctx context.Context, scope, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.locked, scope+":"+key)
	return nil
}

func (f *fakeIdem) Remember(ctx context.Context, scope, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[scope+":"+key] = value
	return nil
}

func (f *fakeIdem) Recall(ctx context.Context, scope, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[scope+":"+key]
	return v, ok, nil
}

type fakeCache struct {
	mu     sync.Mutex
	status map[string]string
}

func newFakeCache() *fakeCache { return &fakeCache{status: map[string]string{}} }

func (f *fakeCache) SetStatus(ctx context.Context, orderID, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status[orderID] = status
	return nil
}

func (f *fakeCache) GetStatus(ctx context.Context, orderID string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.status[orderID]
	return v, ok, nil
}

type fakeEvents struct {
	mu      sync.Mutex
	created []OrderCreatedMsg
	status  []StatusChangedMsg
}

func (f *fakeEvents) PublishOrderCreated(ctx context.Context, msg OrderCreatedMsg) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, msg)
	return nil
}

func (f *fakeEvents) PublishStatusChanged(ctx context.Context, msg StatusChangedMsg) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = append(f.status, msg)
	return nil
}

type staticTokens struct{ cartID string }

func (s staticTokens) DecodeCartToken(token string) (string, error) {
	if token == "bad" {
		return "", errors.New("invalid")
	}
	return s.cartID, nil
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func testProduct(id string, price string, weightGrams int64, qtyAvail int) domain.Product {
	return domain.Product{
		ID:           id,
		Name:         "product-" + id,
		SKU:          "SKU-" + id,
		Price:        dec(price),
		Availability: qtyAvail,
		WeightGrams:  decimal.NewFromInt(weightGrams),
		LengthCM:     decimal.NewFromInt(10),
		WidthCM:      decimal.NewFromInt(8),
		HeightCM:     decimal.NewFromInt(4),
	}
}
