package payments

import (
	"fmt"

	"github.com/cWebCo/tensile-payment-2/internal/domain/entities"
)

// minorUnits is a monetary amount in minor units (cents) that marshals as
// a JSON number with exactly two fractional digits, e.g. 1000 -> 10.00.
// The provider's v2 API rejects amounts with any other precision.
type minorUnits int64

func (m minorUnits) MarshalJSON() ([]byte, error) {
	v := int64(m)
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Appendf(nil, "%s%d.%02d", sign, v/100, v%100), nil
}

// paymentRequest is the POST /payments body. subtotal, tax and total are
// independent fields on the wire; the provider does not cross-check them.
type paymentRequest struct {
	Subtotal           minorUnits       `json:"subtotal"`
	Tax                minorUnits       `json:"tax"`
	Total              minorUnits       `json:"total"`
	Items              []paymentItem    `json:"items"`
	ShippingRequired   bool             `json:"shipping_required"`
	RedirectURISuccess string           `json:"redirect_uri_success"`
	RedirectURICancel  string           `json:"redirect_uri_cancel"`
	PaymentType        string           `json:"payment_type"`
	PlatformName       string           `json:"platform_name"`
	PlatformOrderID    string           `json:"platform_order_id"`
	ShippingAddress    *shippingAddress `json:"shipping_address,omitempty"`
	UserInfo           userInfo         `json:"user_info"`
}

// paymentItem price is the line total, not the unit price.
type paymentItem struct {
	Name     string     `json:"name"`
	Quantity int        `json:"quantity"`
	Price    minorUnits `json:"price"`
}

type shippingAddress struct {
	AddressLine1 string `json:"address_line_1"`
	City         string `json:"city"`
	State        string `json:"state"`
	Country      string `json:"country"`
	Zip          string `json:"zip"`
}

type userInfo struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
}

type paymentResponse struct {
	PaymentID string `json:"payment_id"`
}

type refundRequest struct {
	PaymentID       string     `json:"payment_id"`
	Amount          minorUnits `json:"amount"`
	Reason          string     `json:"reason"`
	PlatformName    string     `json:"platform_name"`
	PlatformOrderID string     `json:"platform_order_id"`
}

type refundResponse struct {
	Status string `json:"status"`
}

func toPaymentRequest(order entities.OrderSnapshot, redirects entities.RedirectURLs, platformName string) paymentRequest {
	items := make([]paymentItem, 0, len(order.LineItems))
	for _, li := range order.LineItems {
		items = append(items, paymentItem{
			Name:     li.Name,
			Quantity: li.Quantity,
			Price:    minorUnits(li.LineTotalMinor),
		})
	}

	req := paymentRequest{
		Subtotal:           minorUnits(order.SubtotalMinor),
		Tax:                minorUnits(order.TaxMinor),
		Total:              minorUnits(order.TotalMinor),
		Items:              items,
		ShippingRequired:   order.ShippingRequired(),
		RedirectURISuccess: redirects.Success,
		RedirectURICancel:  redirects.Cancel,
		PaymentType:        "one-off",
		PlatformName:       platformName,
		PlatformOrderID:    order.ID,
		UserInfo: userInfo{
			FirstName:   order.Billing.FirstName,
			LastName:    order.Billing.LastName,
			Email:       order.Billing.Email,
			PhoneNumber: order.Billing.Phone,
		},
	}

	// shipping_address is conditional: omitted entirely when the order has
	// no shipping line, never sent as nulls.
	if req.ShippingRequired {
		req.ShippingAddress = &shippingAddress{
			AddressLine1: order.Shipping.Line1,
			City:         order.Shipping.City,
			State:        order.Shipping.State,
			Country:      order.Shipping.Country,
			Zip:          order.Shipping.Postcode,
		}
	}
	return req
}
