package entities

import "time"

// TransactionStatus is the lifecycle of a persisted payment transaction.
//
// The adapter only ever records "created" (checkout started at the
// provider) and "refunded". Completion is observed by the host on the
// return leg and is out of scope here.

type TransactionStatus string

const (
	TransactionStatusCreated  TransactionStatus = "created"
	TransactionStatusRefunded TransactionStatus = "refunded"
)

// PaymentTransaction is the one piece of state this service persists per
// order: the provider payment id (the refund join key), plus enough
// context to audit the attempt.
//
// Storage model (DynamoDB):
//   - PK: order_id

type PaymentTransaction struct {
	OrderID        string            `json:"order_id"`
	PaymentID      string            `json:"payment_id"`
	CheckoutURL    string            `json:"checkout_url"`
	AmountMinor    int64             `json:"amount_minor"`
	Currency       string            `json:"currency"`
	Environment    string            `json:"environment"`
	IdempotencyKey string            `json:"idempotency_key"`
	Status         TransactionStatus `json:"status"`
	RefundedMinor  int64             `json:"refunded_minor,omitempty"`
	RefundReason   string            `json:"refund_reason,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}
