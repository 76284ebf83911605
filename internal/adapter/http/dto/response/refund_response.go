package response

import "github.com/cWebCo/tensile-payment-2/internal/domain/entities"

type RefundResponse struct {
	Refunded      bool   `json:"refunded"`
	OrderID       string `json:"order_id"`
	PaymentID     string `json:"payment_id"`
	RefundedMinor int64  `json:"refunded_minor"`
	RefundReason  string `json:"refund_reason,omitempty"`
}

func FromRefundedTransaction(t entities.PaymentTransaction) RefundResponse {
	return RefundResponse{
		Refunded:      t.Status == entities.TransactionStatusRefunded,
		OrderID:       t.OrderID,
		PaymentID:     t.PaymentID,
		RefundedMinor: t.RefundedMinor,
		RefundReason:  t.RefundReason,
	}
}
