package entities

import "strings"

// OrderSnapshot is the read view of a host order at checkout time. Amounts
// are in minor units (cents). The adapter only reads it; order state
// transitions (stock, cart, status) stay on the host side.

type OrderSnapshot struct {
	ID            string         `json:"id"`
	SubtotalMinor int64          `json:"subtotal_minor"`
	TotalMinor    int64          `json:"total_minor"`
	TaxMinor      int64          `json:"tax_minor"`
	Currency      string         `json:"currency"`
	LineItems     []OrderLine    `json:"line_items"`
	Shipping      *OrderShipping `json:"shipping,omitempty"`
	Billing       OrderBilling   `json:"billing"`
}

// OrderLine is one order item. LineTotalMinor is the line total, not the
// unit price; the provider wants the line total.
type OrderLine struct {
	Name           string `json:"name"`
	Quantity       int    `json:"quantity"`
	LineTotalMinor int64  `json:"line_total_minor"`
}

type OrderShipping struct {
	Line1    string `json:"line1"`
	City     string `json:"city"`
	State    string `json:"state"`
	Country  string `json:"country"`
	Postcode string `json:"postcode"`
}

type OrderBilling struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// ShippingRequired is true iff the order has a non-empty shipping address
// line. Orders without one get no shipping_address block on the wire.
func (o OrderSnapshot) ShippingRequired() bool {
	return o.Shipping != nil && strings.TrimSpace(o.Shipping.Line1) != ""
}
