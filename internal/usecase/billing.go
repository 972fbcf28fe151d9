package usecase

import (
	"context"

	domain "github.com/Tarankalsi/backend-triumphllights/internal/entity"
	"github.com/shopspring/decimal"
)

var gramsPerKg = decimal.NewFromInt(1000)

// CartWeightKg sums the shippable weight of the cart in kilograms. Every
// line item must carry a resolvable per-unit weight; a missing weight aborts
// the whole billing call instead of silently counting as zero.
func CartWeightKg(items []domain.CartItem) (decimal.Decimal, error) {
	weight := decimal.Zero
	for _, item := range items {
		if !item.Product.WeightGrams.IsPositive() {
			return decimal.Zero, ErrInvalidProductData
		}
		qty := decimal.NewFromInt(int64(item.Quantity))
		weight = weight.Add(item.Product.WeightGrams.Div(gramsPerKg).Mul(qty))
	}
	return weight, nil
}

// Billing composes cart weight, courier freight and tax policy into a Bill.
// Deterministic given identical cart contents and carrier responses.
type Billing struct {
	selector *CourierSelector
}

func NewBilling(selector *CourierSelector) *Billing {
	return &Billing{selector: selector}
}

// ComputeBill prices the cart. Subtotal and discount are accumulated before
// the courier call so the serviceability request carries the real declared
// value rather than a zero placeholder.
func (b *Billing) ComputeBill(ctx context.Context, items []domain.CartItem, address *domain.Address, taxRatePercent decimal.Decimal, pickupLocationName string) (domain.Bill, *domain.CourierQuote, error) {
	weight, err := CartWeightKg(items)
	if err != nil {
		return domain.Bill{}, nil, err
	}

	subTotal := decimal.Zero
	discount := decimal.Zero
	hundred := decimal.NewFromInt(100)
	for _, item := range items {
		qty := decimal.NewFromInt(int64(item.Quantity))
		subTotal = subTotal.Add(item.Product.Price.Mul(qty))
		if item.Product.DiscountPercent.IsPositive() {
			discount = discount.Add(item.Product.Price.Mul(item.Product.DiscountPercent).Div(hundred).Mul(qty))
		}
	}

	courier, err := b.selector.SelectBest(ctx, SelectCourierInput{
		DeliveryPostalCode: address.PostalCode,
		WeightKg:           weight,
		COD:                true,
		DeclaredValue:      subTotal.Sub(discount),
		PickupLocationName: pickupLocationName,
	})
	if err != nil {
		return domain.Bill{}, nil, err
	}

	bill := domain.Bill{
		SubTotal:    subTotal,
		Discount:    discount,
		DeliveryFee: courier.FreightCharge,
	}
	bill.Tax = subTotal.Mul(taxRatePercent).Div(hundred)
	bill.Total = subTotal.Add(bill.DeliveryFee).Add(bill.Tax).Sub(discount)
	return bill.Round2(), courier, nil
}
