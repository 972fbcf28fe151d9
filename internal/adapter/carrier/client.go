package carrier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync/atomic"
	"time"

	domain "github.com/Tarankalsi/backend-triumphllights/internal/entity"
	"github.com/Tarankalsi/backend-triumphllights/internal/logging"
	"github.com/Tarankalsi/backend-triumphllights/internal/usecase"
	"github.com/shopspring/decimal"
)

// Client talks to the carrier's external REST API. It does not retry; the
// use cases decide what a failure means. The auth token is swapped
// atomically by the scheduled refresh so in-flight calls keep a consistent
// header.
type Client struct {
	httpc   *http.Client
	baseURL string
	token   atomic.Value // string

	email    string
	password string
}

func NewClient(baseURL, token, email, password string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	c := &Client{
		httpc:    &http.Client{Timeout: timeout},
		baseURL:  baseURL,
		email:    email,
		password: password,
	}
	c.token.Store(token)
	return c
}

var _ usecase.CarrierGateway = (*Client)(nil)

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		rd = bytes.NewReader(raw)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok, _ := c.token.Load().(string); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, apiMessage(raw))
	}
	if out != nil {
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		if err := dec.Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// apiMessage pulls the carrier's human-readable message out of an error
// body, falling back to the raw payload.
func apiMessage(raw []byte) string {
	var m struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &m); err == nil && m.Message != "" {
		return m.Message
	}
	if len(raw) > 256 {
		raw = raw[:256]
	}
	return string(raw)
}

func (c *Client) PickupLocations(ctx context.Context) ([]domain.PickupLocation, error) {
	var resp pickupLocationsResp
	if err := c.do(ctx, http.MethodGet, "/v1/external/settings/company/pickup", nil, nil, &resp); err != nil {
		return nil, err
	}
	out := make([]domain.PickupLocation, 0, len(resp.Data.ShippingAddress))
	for _, a := range resp.Data.ShippingAddress {
		out = append(out, domain.PickupLocation{Name: a.PickupLocation, PostalCode: a.PinCode})
	}
	return out, nil
}

func (c *Client) Serviceability(ctx context.Context, q usecase.ServiceabilityQuery) ([]domain.CourierQuote, error) {
	cod := "0"
	if q.COD {
		cod = "1"
	}
	params := url.Values{
		"pickup_postcode":   {q.PickupPostalCode},
		"delivery_postcode": {q.DeliveryPostalCode},
		"cod":               {cod},
		"weight":            {q.WeightKg.String()},
		"declared_value":    {q.DeclaredValue.StringFixed(2)},
	}
	var resp serviceabilityResp
	if err := c.do(ctx, http.MethodGet, "/v1/external/courier/serviceability/", params, nil, &resp); err != nil {
		return nil, err
	}

	quotes := make([]domain.CourierQuote, 0, len(resp.Data.AvailableCourierCompanies))
	for _, cc := range resp.Data.AvailableCourierCompanies {
		fee, err := decimal.NewFromString(cc.FreightCharge.String())
		if err != nil {
			return nil, fmt.Errorf("freight charge %q: %w", cc.FreightCharge, err)
		}
		days, err := cc.EstimatedDeliveryDays.Int64()
		if err != nil {
			return nil, fmt.Errorf("estimated delivery days %q: %w", cc.EstimatedDeliveryDays, err)
		}
		quotes = append(quotes, domain.CourierQuote{
			CourierID:             cc.CourierCompanyID,
			CourierName:           cc.CourierName,
			FreightCharge:         fee,
			EstimatedDeliveryDays: int(days),
			AWBAssignStatus:       cc.AWBAssignStatus,
			AWBAssignError:        cc.AWBAssignError,
		})
	}
	return quotes, nil
}

// wirePaymentMethod maps the domain payment method onto the two values the
// carrier understands.
func wirePaymentMethod(pm domain.PaymentMethod) string {
	if pm == domain.PaymentCashOnDelivery {
		return "COD"
	}
	return "Prepaid"
}

func (c *Client) CreateShipment(ctx context.Context, req usecase.ShipmentRequest) (*usecase.ShipmentResult, error) {
	body := createShipmentReq{
		OrderID:             req.Order.ID,
		OrderDate:           req.Order.CreatedAt.Format(time.RFC3339),
		BillingCustomerName: req.User.FullName,
		BillingAddress:      req.Address.Street,
		BillingCity:         req.Address.City,
		BillingPincode:      req.Address.PostalCode,
		BillingState:        req.Address.State,
		BillingCountry:      req.Address.Country,
		BillingEmail:        req.User.Email,
		BillingPhone:        req.User.PhoneNumber,
		ShippingIsBilling:   true,
		PaymentMethod:       wirePaymentMethod(req.Order.PaymentMethod),
		SubTotal:            req.Order.SubTotal.StringFixed(2),
		Weight:              req.WeightKg.String(),
		Length:              req.LengthCM.String(),
		Breadth:             req.WidthCM.String(),
		Height:              req.HeightCM.String(),
	}
	hundred := decimal.NewFromInt(100)
	for _, item := range req.Items {
		body.OrderItems = append(body.OrderItems, shipmentItemReq{
			Name:         item.Product.Name,
			SKU:          item.Product.SKU,
			Units:        item.Quantity,
			SellingPrice: item.Product.Price.StringFixed(2),
			Discount:     item.Product.Price.Mul(item.Product.DiscountPercent).Div(hundred).StringFixed(2),
		})
	}

	var resp createShipmentResp
	if err := c.do(ctx, http.MethodPost, "/v1/external/orders/create/adhoc", nil, body, &resp); err != nil {
		return nil, err
	}
	return &usecase.ShipmentResult{
		StatusCode:     resp.StatusCode,
		OrderID:        resp.OrderID.String(),
		ShipmentID:     resp.ShipmentID.String(),
		ChannelID:      resp.ChannelID.String(),
		ChannelOrderID: resp.ChannelOrderID,
		AWBCode:        resp.AWBCode,
		Status:         resp.Status,
	}, nil
}

func (c *Client) Track(ctx context.Context, carrierOrderID, channelID string) (*usecase.Tracking, error) {
	params := url.Values{
		"order_id":   {carrierOrderID},
		"channel_id": {channelID},
	}
	var resp trackResp
	if err := c.do(ctx, http.MethodGet, "/v1/external/courier/track", params, nil, &resp); err != nil {
		return nil, err
	}
	if len(resp.TrackingData.ShipmentTrack) == 0 {
		return nil, fmt.Errorf("no tracking data for carrier order %s", carrierOrderID)
	}
	t := resp.TrackingData.ShipmentTrack[0]
	return &usecase.Tracking{AWBCode: t.AWBCode, CurrentStatus: t.CurrentStatus}, nil
}

func (c *Client) CancelShipments(ctx context.Context, carrierOrderIDs []string) error {
	var resp cancelResp
	if err := c.do(ctx, http.MethodPost, "/v1/external/orders/cancel", nil, cancelReq{IDs: carrierOrderIDs}, &resp); err != nil {
		return err
	}
	if resp.StatusCode != 200 {
		return fmt.Errorf("cancel rejected: status code %d: %s", resp.StatusCode, resp.Message)
	}
	return nil
}

// RefreshToken logs in with the configured credentials and swaps the auth
// token in place. Scheduled every few days; failures keep the old token.
func (c *Client) RefreshToken(ctx context.Context) error {
	var resp loginResp
	if err := c.do(ctx, http.MethodPost, "/v1/external/auth/login", nil, loginReq{Email: c.email, Password: c.password}, &resp); err != nil {
		return err
	}
	if resp.Token == "" {
		return fmt.Errorf("login returned empty token")
	}
	c.token.Store(resp.Token)
	logging.FromCtx(ctx).Info("carrier token refreshed")
	return nil
}
