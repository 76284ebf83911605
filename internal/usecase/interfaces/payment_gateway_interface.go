package interfaces

import (
	"context"

	"github.com/cWebCo/tensile-payment-2/internal/domain/entities"
)

// IPaymentGateway abstracts the external payments provider (Tensile).
//
// Both calls are synchronous, single-shot and retry-free; callers decide
// retry policy. The resolved environment is passed per call so a settings
// change (sandbox/live flip, rotated credentials) applies immediately.
type IPaymentGateway interface {
	CreatePayment(ctx context.Context, env entities.ResolvedEnvironment, order entities.OrderSnapshot, redirects entities.RedirectURLs, idempotencyKey string) (entities.ProviderPayment, error)
	RefundPayment(ctx context.Context, env entities.ResolvedEnvironment, refund entities.RefundInstruction) error
}
