package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/cWebCo/tensile-payment-2/internal/domain/entities"
	"github.com/cWebCo/tensile-payment-2/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrInvalidOrderID        = errors.New("invalid order id")
	ErrInvalidRedirectURLs   = errors.New("invalid redirect urls")
	ErrGatewayDisabled       = errors.New("payment gateway disabled")
	ErrOrderNotFound         = errors.New("order not found")
	ErrOrderHasNoTotal       = errors.New("order has no payable total")
	ErrTransactionNotFound   = errors.New("payment transaction not found")
	ErrOrderAlreadySubmitted = errors.New("order already has a payment transaction")
)

// ICheckoutUseCase starts a provider checkout session for a host order and
// exposes the persisted transaction afterwards.

type ICheckoutUseCase interface {
	CreatePayment(ctx context.Context, orderID string, redirects entities.RedirectURLs) (entities.PaymentTransaction, error)
	GetByOrderID(ctx context.Context, orderID string) (entities.PaymentTransaction, error)
}

type CheckoutUseCase struct {
	settings     interfaces.IGatewaySettingsStore
	orders       interfaces.IOrderRepository
	transactions interfaces.ITransactionRepository
	gateway      interfaces.IPaymentGateway
}

var _ ICheckoutUseCase = (*CheckoutUseCase)(nil)

func NewCheckoutUseCase(settings interfaces.IGatewaySettingsStore, orders interfaces.IOrderRepository, transactions interfaces.ITransactionRepository, gateway interfaces.IPaymentGateway) *CheckoutUseCase {
	return &CheckoutUseCase{settings: settings, orders: orders, transactions: transactions, gateway: gateway}
}

// CreatePayment runs the full outbound leg: settings -> environment ->
// order snapshot -> provider call -> persisted transaction. The provider
// payment id is stored before the checkout URL is handed back, so the
// refund join key exists before the buyer is redirected.
//
// No retries and no in-flight lock: at-most-one-in-flight per order is
// the host's responsibility. The conditional create only stops a second
// completed attempt from overwriting the first.
func (u *CheckoutUseCase) CreatePayment(ctx context.Context, orderID string, redirects entities.RedirectURLs) (entities.PaymentTransaction, error) {
	orderID = strings.TrimSpace(orderID)
	log.Printf("[checkout][usecase] create start order_id=%q", orderID)
	if orderID == "" {
		return entities.PaymentTransaction{}, ErrInvalidOrderID
	}
	if strings.TrimSpace(redirects.Success) == "" || strings.TrimSpace(redirects.Cancel) == "" {
		return entities.PaymentTransaction{}, ErrInvalidRedirectURLs
	}
	if u.settings == nil {
		return entities.PaymentTransaction{}, errors.New("settings store not configured")
	}
	if u.gateway == nil {
		return entities.PaymentTransaction{}, errors.New("payment gateway not configured")
	}

	settings, err := u.settings.Load(ctx)
	if err != nil {
		log.Printf("[checkout][usecase] settings load failed order_id=%s err=%v", orderID, err)
		return entities.PaymentTransaction{}, err
	}
	if !settings.Enabled {
		log.Printf("[checkout][usecase] gateway disabled order_id=%s", orderID)
		return entities.PaymentTransaction{}, ErrGatewayDisabled
	}

	env, err := entities.ResolveEnvironment(settings)
	if err != nil {
		log.Printf("[checkout][usecase] environment resolution failed order_id=%s err=%v", orderID, err)
		return entities.PaymentTransaction{}, err
	}
	log.Printf("[checkout][usecase] environment resolved order_id=%s env=%s", orderID, env.Name())

	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		log.Printf("[checkout][usecase] order load failed order_id=%s err=%v", orderID, err)
		return entities.PaymentTransaction{}, err
	}
	if order.ID == "" {
		log.Printf("[checkout][usecase] order not found order_id=%s", orderID)
		return entities.PaymentTransaction{}, ErrOrderNotFound
	}
	if order.TotalMinor <= 0 {
		log.Printf("[checkout][usecase] order has no payable total order_id=%s total_minor=%d", orderID, order.TotalMinor)
		return entities.PaymentTransaction{}, ErrOrderHasNoTotal
	}

	idempotencyKey := orderID + "-" + uuid.NewString()
	payment, err := u.gateway.CreatePayment(ctx, env, order, redirects, idempotencyKey)
	if err != nil {
		log.Printf("[checkout][usecase] gateway create failed order_id=%s err=%v", orderID, err)
		return entities.PaymentTransaction{}, err
	}

	now := time.Now().UTC()
	txn := entities.PaymentTransaction{
		OrderID:        order.ID,
		PaymentID:      payment.PaymentID,
		CheckoutURL:    payment.CheckoutURL,
		AmountMinor:    order.TotalMinor,
		Currency:       order.Currency,
		Environment:    env.Name(),
		IdempotencyKey: idempotencyKey,
		Status:         entities.TransactionStatusCreated,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	created, err := u.transactions.Create(ctx, txn)
	if err != nil {
		log.Printf("[checkout][usecase] transaction persist failed order_id=%s payment_id=%s err=%v", orderID, payment.PaymentID, err)
		return entities.PaymentTransaction{}, err
	}
	if created.OrderID == "" {
		// Conditional put lost: another attempt already completed for this order.
		log.Printf("[checkout][usecase] transaction already exists order_id=%s", orderID)
		return entities.PaymentTransaction{}, ErrOrderAlreadySubmitted
	}
	log.Printf("[checkout][usecase] create success order_id=%s payment_id=%s env=%s", orderID, created.PaymentID, created.Environment)
	return created, nil
}

func (u *CheckoutUseCase) GetByOrderID(ctx context.Context, orderID string) (entities.PaymentTransaction, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return entities.PaymentTransaction{}, ErrInvalidOrderID
	}

	txn, err := u.transactions.GetByOrderID(ctx, orderID)
	if err != nil {
		return entities.PaymentTransaction{}, err
	}
	if txn.OrderID == "" {
		return entities.PaymentTransaction{}, ErrTransactionNotFound
	}
	return txn, nil
}
