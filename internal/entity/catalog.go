package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID              string
	Name            string
	SKU             string
	Price           decimal.Decimal
	DiscountPercent decimal.Decimal
	Availability    int
	// Per-unit shipping weight in grams. Zero means the variant record is
	// incomplete and the product cannot be billed.
	WeightGrams decimal.Decimal
	LengthCM    decimal.Decimal
	WidthCM     decimal.Decimal
	HeightCM    decimal.Decimal
}

// CartItem carries a denormalized product snapshot read alongside the row.
// It never outlives the cart it belongs to.
type CartItem struct {
	ID        string
	CartID    string
	ProductID string
	Quantity  int
	Color     string
	Product   Product
}

type Cart struct {
	ID        string
	UserID    string // empty for anonymous carts
	Items     []CartItem
	CreatedAt time.Time
}

type Address struct {
	ID         string
	Street     string
	City       string
	State      string
	Country    string
	PostalCode string
}

type User struct {
	ID          string
	Email       string
	FullName    string
	PhoneNumber string
}
