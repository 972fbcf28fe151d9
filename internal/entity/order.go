package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusProcessing     Status = "processing"
	StatusShipped        Status = "shipped"
	StatusInTransit      Status = "In Transit"
	StatusOutForDelivery Status = "Out for Delivery"
	StatusDelivered      Status = "Delivered"
	StatusCancelled      Status = "cancelled"
	StatusReturned       Status = "returned"
)

type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "CashOnDelivery"
	PaymentCreditCard     PaymentMethod = "CreditCard"
	PaymentDebitCard      PaymentMethod = "DebitCard"
	PaymentBankTransfer   PaymentMethod = "BankTransfer"
	PaymentNetBanking     PaymentMethod = "NetBanking"
	PaymentUPI            PaymentMethod = "UPI"
)

// Order is the persisted aggregate. Line items are frozen copies taken at
// commit time, so later product price changes never touch them.
type Order struct {
	ID                string
	UserID            string
	CartID            string
	Items             []OrderItem
	Status            Status
	PaymentMethod     PaymentMethod
	ShippingAddressID string

	SubTotal        decimal.Decimal
	Discount        decimal.Decimal
	TaxAmount       decimal.Decimal
	ShippingCharges decimal.Decimal
	TotalAmount     decimal.Decimal

	// Carrier identifiers, empty until a shipment exists.
	CarrierOrderID        string
	CarrierShipmentID     string
	CarrierChannelOrderID string
	CarrierAWBCode        string
	CarrierStatus         string
	CarrierUpdatedAt      time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal
	SubTotal  decimal.Decimal
	Discount  decimal.Decimal
	Color     string
}

// Cancellable reports whether a user may still cancel the order. Once the
// carrier has it moving, self-service cancellation is off the table.
func (o *Order) Cancellable() bool {
	switch o.Status {
	case StatusDelivered, StatusInTransit, StatusOutForDelivery:
		return false
	}
	return true
}
