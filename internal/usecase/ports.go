package usecase

import (
	"context"
	"time"

	domain "github.com/Tarankalsi/backend-triumphllights/internal/entity"
	"github.com/shopspring/decimal"
)

type CartRepo interface {
	// GetWithItems loads the cart and its items, each with the current
	// product snapshot joined in.
	GetWithItems(ctx context.Context, cartID string) (*domain.Cart, error)
	ClearItems(ctx context.Context, cartID string) error
}

type AddressRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Address, error)
}

type UserRepo interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// CarrierRefs is the set of identifiers persisted onto an order once the
// carrier accepts the shipment.
type CarrierRefs struct {
	OrderID        string
	ShipmentID     string
	ChannelOrderID string
	AWBCode        string
	Status         string
}

type OrderStore interface {
	// CreateWithReservation checks and decrements availability for every
	// line item and inserts the order plus its frozen items inside one
	// transaction. A shortfall returns *OutOfStockError and leaves no
	// partial decrements behind.
	CreateWithReservation(ctx context.Context, o *domain.Order) error
	// DeleteRestoringStock removes the order and its items and restores the
	// decremented availability, all in one transaction. Used both as the
	// compensating action after a failed shipment and on confirmed cancels.
	DeleteRestoringStock(ctx context.Context, orderID string) error
	SetCarrierRefs(ctx context.Context, orderID string, refs CarrierRefs) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	// UpdateStatusByAWB overwrites status, mirrored carrier status and the
	// carrier update timestamp on every order matching the AWB code, and
	// returns the ids of the orders touched. Zero matches is not an error.
	UpdateStatusByAWB(ctx context.Context, awb, status string, at time.Time) ([]string, error)
}

type ServiceabilityQuery struct {
	PickupPostalCode   string
	DeliveryPostalCode string
	WeightKg           decimal.Decimal
	COD                bool
	DeclaredValue      decimal.Decimal
}

type ShipmentRequest struct {
	Order      *domain.Order
	User       *domain.User
	Address    *domain.Address
	Items      []domain.CartItem
	WeightKg   decimal.Decimal
	LengthCM   decimal.Decimal
	WidthCM    decimal.Decimal
	HeightCM   decimal.Decimal
}

type ShipmentResult struct {
	StatusCode     int
	OrderID        string
	ShipmentID     string
	ChannelID      string
	ChannelOrderID string
	AWBCode        string
	Status         string
}

type Tracking struct {
	AWBCode       string
	CurrentStatus string
}

// CarrierGateway is the boundary to the shipment provider. Implementations
// return plain errors; the use cases wrap them into the error taxonomy.
type CarrierGateway interface {
	PickupLocations(ctx context.Context) ([]domain.PickupLocation, error)
	Serviceability(ctx context.Context, q ServiceabilityQuery) ([]domain.CourierQuote, error)
	CreateShipment(ctx context.Context, req ShipmentRequest) (*ShipmentResult, error)
	Track(ctx context.Context, carrierOrderID, channelID string) (*Tracking, error)
	CancelShipments(ctx context.Context, carrierOrderIDs []string) error
}

// Mailer sends are best-effort: a failed confirmation never rolls an order
// back, it only gets logged.
type Mailer interface {
	SendOrderConfirmation(to, fullName string, o *domain.Order) error
}

type IdempotencyStore interface {
	TryLock(ctx context.Context, scope, key string) (bool, error)
	// Release frees a lock taken by TryLock so a retry of a failed attempt
	// is not mistaken for a duplicate.
	Release(ctx context.Context, scope, key string) error
	Remember(ctx context.Context, scope, key, value string) error
	Recall(ctx context.Context, scope, key string) (string, bool, error)
}

type OrderCache interface {
	SetStatus(ctx context.Context, orderID string, status string) error
	GetStatus(ctx context.Context, orderID string) (string, bool, error)
}

type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, msg OrderCreatedMsg) error
	PublishStatusChanged(ctx context.Context, msg StatusChangedMsg) error
}

type CartTokenDecoder interface {
	DecodeCartToken(token string) (cartID string, err error)
}
