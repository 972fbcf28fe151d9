package usecase

import (
	"errors"
	"fmt"
)

var (
	ErrCartTokenMissing   = errors.New("cart token is not provided")
	ErrCartTokenInvalid   = errors.New("invalid cart token")
	ErrCartNotFound       = errors.New("cart not found or empty")
	ErrAddressNotFound    = errors.New("address not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrDuplicate          = errors.New("duplicate idempotency key")
	ErrUnsupportedPayment = errors.New("only cash on delivery is currently available")

	ErrInvalidProductData     = errors.New("product is missing shipping weight")
	ErrPickupLocationNotFound = errors.New("pickup pincode not found for the specified pickup location")
	ErrNoServiceableCourier   = errors.New("no available courier companies for the selected route")
	ErrNoCourierWithinSLA     = errors.New("no suitable courier found with delivery within the SLA")

	ErrOrderNotCancellable = errors.New("order cannot be cancelled as it is already in transit or delivered")
	ErrNoCarrierOrder      = errors.New("order has no carrier order id")
)

// OutOfStockError names the product whose availability check failed. The
// whole reservation rolls back when it is returned.
type OutOfStockError struct {
	ProductID string
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("product %s is out of stock", e.ProductID)
}

// AWBAssignmentError carries the carrier's reported reason for refusing to
// auto-assign an airway bill to the selected courier.
type AWBAssignmentError struct {
	Reason string
}

func (e *AWBAssignmentError) Error() string {
	return fmt.Sprintf("awb assign error: %s", e.Reason)
}

// CarrierServiceError wraps any transport, decoding or non-2xx failure from
// the carrier API. No retries happen at this layer; retry policy belongs to
// the caller.
type CarrierServiceError struct {
	Op  string
	Err error
}

func (e *CarrierServiceError) Error() string {
	return fmt.Sprintf("carrier %s: %v", e.Op, e.Err)
}

func (e *CarrierServiceError) Unwrap() error { return e.Err }
