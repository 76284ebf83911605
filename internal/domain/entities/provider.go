package entities

// RedirectURLs are the host checkout return legs attached to a payment
// request. Supplied by the host per call, not configuration.
type RedirectURLs struct {
	Success string
	Cancel  string
}

// ProviderPayment is the provider's answer to a created payment: the
// correlation id to persist and the hosted checkout URL to send the buyer
// to.
type ProviderPayment struct {
	PaymentID   string
	CheckoutURL string
}

// RefundInstruction is everything the provider needs to refund a payment.
type RefundInstruction struct {
	PaymentID       string
	AmountMinor     int64
	Reason          string
	PlatformOrderID string
}
