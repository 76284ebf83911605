package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/cWebCo/tensile-payment-2/internal/domain/entities"
	"github.com/cWebCo/tensile-payment-2/internal/usecase/interfaces"
)

var (
	ErrInvalidRefundAmount = errors.New("invalid refund amount")
	ErrAlreadyRefunded     = errors.New("transaction already refunded")
)

// IRefundUseCase refunds a previously created payment by order id, using
// the persisted provider payment id as the join key.

type IRefundUseCase interface {
	RefundByOrderID(ctx context.Context, orderID string, amountMinor int64, reason string) (entities.PaymentTransaction, error)
}

type RefundUseCase struct {
	settings     interfaces.IGatewaySettingsStore
	transactions interfaces.ITransactionRepository
	gateway      interfaces.IPaymentGateway
}

var _ IRefundUseCase = (*RefundUseCase)(nil)

func NewRefundUseCase(settings interfaces.IGatewaySettingsStore, transactions interfaces.ITransactionRepository, gateway interfaces.IPaymentGateway) *RefundUseCase {
	return &RefundUseCase{settings: settings, transactions: transactions, gateway: gateway}
}

// RefundByOrderID issues a single refund call; failure is reported to the
// operator, never retried automatically or assumed successful.
func (u *RefundUseCase) RefundByOrderID(ctx context.Context, orderID string, amountMinor int64, reason string) (entities.PaymentTransaction, error) {
	orderID = strings.TrimSpace(orderID)
	log.Printf("[refund][usecase] refund start order_id=%q amount_minor=%d", orderID, amountMinor)
	if orderID == "" {
		return entities.PaymentTransaction{}, ErrInvalidOrderID
	}
	if amountMinor <= 0 {
		return entities.PaymentTransaction{}, ErrInvalidRefundAmount
	}
	if u.settings == nil {
		return entities.PaymentTransaction{}, errors.New("settings store not configured")
	}
	if u.gateway == nil {
		return entities.PaymentTransaction{}, errors.New("payment gateway not configured")
	}

	settings, err := u.settings.Load(ctx)
	if err != nil {
		log.Printf("[refund][usecase] settings load failed order_id=%s err=%v", orderID, err)
		return entities.PaymentTransaction{}, err
	}

	env, err := entities.ResolveEnvironment(settings)
	if err != nil {
		log.Printf("[refund][usecase] environment resolution failed order_id=%s err=%v", orderID, err)
		return entities.PaymentTransaction{}, err
	}

	txn, err := u.transactions.GetByOrderID(ctx, orderID)
	if err != nil {
		log.Printf("[refund][usecase] transaction load failed order_id=%s err=%v", orderID, err)
		return entities.PaymentTransaction{}, err
	}
	if txn.OrderID == "" || txn.PaymentID == "" {
		log.Printf("[refund][usecase] transaction not found order_id=%s", orderID)
		return entities.PaymentTransaction{}, ErrTransactionNotFound
	}
	if txn.Status == entities.TransactionStatusRefunded {
		log.Printf("[refund][usecase] already refunded order_id=%s payment_id=%s", orderID, txn.PaymentID)
		return entities.PaymentTransaction{}, ErrAlreadyRefunded
	}

	err = u.gateway.RefundPayment(ctx, env, entities.RefundInstruction{
		PaymentID:       txn.PaymentID,
		AmountMinor:     amountMinor,
		Reason:          reason,
		PlatformOrderID: orderID,
	})
	if err != nil {
		log.Printf("[refund][usecase] gateway refund failed order_id=%s payment_id=%s err=%v", orderID, txn.PaymentID, err)
		return entities.PaymentTransaction{}, err
	}

	updated, err := u.transactions.MarkRefunded(ctx, orderID, amountMinor, reason)
	if err != nil {
		// The provider accepted the refund; surface the bookkeeping failure
		// instead of pretending nothing happened.
		log.Printf("[refund][usecase] refund recorded at provider but persist failed order_id=%s err=%v", orderID, err)
		return entities.PaymentTransaction{}, err
	}
	log.Printf("[refund][usecase] refund success order_id=%s payment_id=%s amount_minor=%d", orderID, txn.PaymentID, amountMinor)
	return updated, nil
}
