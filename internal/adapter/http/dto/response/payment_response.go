package response

import (
	"time"

	"github.com/cWebCo/tensile-payment-2/internal/domain/entities"
)

// PaymentResponse is the host-facing result of a created (or looked-up)
// payment transaction. Result mirrors the gateway contract the host
// expects: "success" plus a redirect URL to send the buyer to.

type PaymentResponse struct {
	Result        string    `json:"result"`
	OrderID       string    `json:"order_id"`
	PaymentID     string    `json:"payment_id"`
	RedirectURL   string    `json:"redirect_url,omitempty"`
	AmountMinor   int64     `json:"amount_minor"`
	Currency      string    `json:"currency"`
	Environment   string    `json:"environment"`
	Status        string    `json:"status"`
	RefundedMinor int64     `json:"refunded_minor,omitempty"`
	RefundReason  string    `json:"refund_reason,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func FromPaymentTransaction(t entities.PaymentTransaction) PaymentResponse {
	return PaymentResponse{
		Result:        "success",
		OrderID:       t.OrderID,
		PaymentID:     t.PaymentID,
		RedirectURL:   t.CheckoutURL,
		AmountMinor:   t.AmountMinor,
		Currency:      t.Currency,
		Environment:   t.Environment,
		Status:        string(t.Status),
		RefundedMinor: t.RefundedMinor,
		RefundReason:  t.RefundReason,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}
