package interfaces

import (
	"context"

	"github.com/cWebCo/tensile-payment-2/internal/domain/entities"
)

// ITransactionRepository persists the order_id -> provider payment_id
// join key plus audit context.
//
// Create must be conditional on the order id not existing yet so a second
// completed attempt never silently overwrites the first.

type ITransactionRepository interface {
	Create(ctx context.Context, t entities.PaymentTransaction) (entities.PaymentTransaction, error)
	GetByOrderID(ctx context.Context, orderID string) (entities.PaymentTransaction, error)
	MarkRefunded(ctx context.Context, orderID string, amountMinor int64, reason string) (entities.PaymentTransaction, error)
}
