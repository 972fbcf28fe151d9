package domain

import "github.com/shopspring/decimal"

// Bill is a computed value, never persisted on its own. It is recomputed on
// every quote and again at order commit; client-supplied amounts are ignored.
type Bill struct {
	SubTotal    decimal.Decimal
	Discount    decimal.Decimal
	Tax         decimal.Decimal
	DeliveryFee decimal.Decimal
	Total       decimal.Decimal
}

// Round2 returns the bill rounded to two decimal places. Accumulation stays
// at full precision; rounding happens at the boundary. Total is recomputed
// from the rounded components rather than rounded independently, so
// total = sub_total + delivery_fee + tax - discount holds on the values a
// client actually sees.
func (b Bill) Round2() Bill {
	r := Bill{
		SubTotal:    b.SubTotal.Round(2),
		Discount:    b.Discount.Round(2),
		Tax:         b.Tax.Round(2),
		DeliveryFee: b.DeliveryFee.Round(2),
	}
	r.Total = r.SubTotal.Add(r.DeliveryFee).Add(r.Tax).Sub(r.Discount)
	return r
}

// CourierQuote is transient: fetched per billing or order request and
// discarded afterwards.
type CourierQuote struct {
	CourierID             int64
	CourierName           string
	FreightCharge         decimal.Decimal
	EstimatedDeliveryDays int
	AWBAssignStatus       int
	AWBAssignError        string
}

type PickupLocation struct {
	Name       string
	PostalCode string
}
