package carrier

import "encoding/json"

// Wire shapes for the carrier's external API. Numeric fields arrive
// inconsistently typed (quoted and bare), hence json.Number.

type pickupLocationsResp struct {
	Data struct {
		ShippingAddress []struct {
			PickupLocation string `json:"pickup_location"`
			PinCode        string `json:"pin_code"`
		} `json:"shipping_address"`
	} `json:"data"`
}

type serviceabilityResp struct {
	Data struct {
		AvailableCourierCompanies []courierCompany `json:"available_courier_companies"`
	} `json:"data"`
}

type courierCompany struct {
	CourierCompanyID      int64       `json:"courier_company_id"`
	CourierName           string      `json:"courier_name"`
	FreightCharge         json.Number `json:"freight_charge"`
	EstimatedDeliveryDays json.Number `json:"estimated_delivery_days"`
	AWBAssignStatus       int         `json:"awb_assign_status"`
	AWBAssignError        string      `json:"awb_assign_error"`
}

type createShipmentReq struct {
	OrderID             string            `json:"order_id"`
	OrderDate           string            `json:"order_date"`
	BillingCustomerName string            `json:"billing_customer_name"`
	BillingLastName     string            `json:"billing_last_name"`
	BillingAddress      string            `json:"billing_address"`
	BillingCity         string            `json:"billing_city"`
	BillingPincode      string            `json:"billing_pincode"`
	BillingState        string            `json:"billing_state"`
	BillingCountry      string            `json:"billing_country"`
	BillingEmail        string            `json:"billing_email"`
	BillingPhone        string            `json:"billing_phone"`
	ShippingIsBilling   bool              `json:"shipping_is_billing"`
	OrderItems          []shipmentItemReq `json:"order_items"`
	PaymentMethod       string            `json:"payment_method"`
	SubTotal            string            `json:"sub_total"`
	Weight              string            `json:"weight"`
	Length              string            `json:"length"`
	Breadth             string            `json:"breadth"`
	Height              string            `json:"height"`
}

type shipmentItemReq struct {
	Name         string `json:"name"`
	SKU          string `json:"sku"`
	Units        int    `json:"units"`
	SellingPrice string `json:"selling_price"`
	Discount     string `json:"discount"`
}

type createShipmentResp struct {
	StatusCode     int         `json:"status_code"`
	OrderID        json.Number `json:"order_id"`
	ShipmentID     json.Number `json:"shipment_id"`
	ChannelID      json.Number `json:"channel_id"`
	ChannelOrderID string      `json:"channel_order_id"`
	Status         string      `json:"status"`
	AWBCode        string      `json:"awb_code"`
}

type trackResp struct {
	TrackingData struct {
		ShipmentTrack []struct {
			AWBCode       string `json:"awb_code"`
			CurrentStatus string `json:"current_status"`
		} `json:"shipment_track"`
	} `json:"tracking_data"`
}

type cancelReq struct {
	IDs []string `json:"ids"`
}

type cancelResp struct {
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResp struct {
	Token string `json:"token"`
}
