package usecase

import (
	"context"

	domain "github.com/Tarankalsi/backend-triumphllights/internal/entity"
	"github.com/shopspring/decimal"
)

// CourierSelector picks the cheapest courier that can deliver within the
// SLA bound, working off the carrier's serviceability listing.
type CourierSelector struct {
	gw CarrierGateway
	// maxDeliveryDays is the SLA bound; couriers slower than this are
	// never considered regardless of price.
	maxDeliveryDays int
}

func NewCourierSelector(gw CarrierGateway, maxDeliveryDays int) *CourierSelector {
	if maxDeliveryDays <= 0 {
		maxDeliveryDays = 4
	}
	return &CourierSelector{gw: gw, maxDeliveryDays: maxDeliveryDays}
}

type SelectCourierInput struct {
	DeliveryPostalCode string
	WeightKg           decimal.Decimal
	COD                bool
	DeclaredValue      decimal.Decimal
	PickupLocationName string
}

// SelectBest resolves the pickup postal code from the named pickup location,
// queries serviceability and returns the cheapest courier meeting the SLA.
// Ties go to the first courier encountered in the carrier's own ordering.
func (s *CourierSelector) SelectBest(ctx context.Context, in SelectCourierInput) (*domain.CourierQuote, error) {
	locations, err := s.gw.PickupLocations(ctx)
	if err != nil {
		return nil, &CarrierServiceError{Op: "pickup locations", Err: err}
	}

	pickupPostal := ""
	for _, loc := range locations {
		if loc.Name == in.PickupLocationName {
			pickupPostal = loc.PostalCode
			break
		}
	}
	if pickupPostal == "" {
		return nil, ErrPickupLocationNotFound
	}

	quotes, err := s.gw.Serviceability(ctx, ServiceabilityQuery{
		PickupPostalCode:   pickupPostal,
		DeliveryPostalCode: in.DeliveryPostalCode,
		WeightKg:           in.WeightKg,
		COD:                in.COD,
		DeclaredValue:      in.DeclaredValue,
	})
	if err != nil {
		return nil, &CarrierServiceError{Op: "serviceability", Err: err}
	}
	if len(quotes) == 0 {
		return nil, ErrNoServiceableCourier
	}

	var best *domain.CourierQuote
	for i := range quotes {
		q := &quotes[i]
		if q.EstimatedDeliveryDays > s.maxDeliveryDays {
			continue
		}
		if best == nil || q.FreightCharge.LessThan(best.FreightCharge) {
			best = q
		}
	}
	if best == nil {
		return nil, ErrNoCourierWithinSLA
	}

	if best.AWBAssignStatus == 0 {
		return nil, &AWBAssignmentError{Reason: best.AWBAssignError}
	}
	return best, nil
}
