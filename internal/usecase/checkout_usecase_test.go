package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cWebCo/tensile-payment-2/internal/domain/entities"
	mock_interfaces "github.com/cWebCo/tensile-payment-2/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func enabledSettings() entities.GatewaySettings {
	return entities.GatewaySettings{
		Enabled:             true,
		TestMode:            true,
		SandboxEndpoint:     "https://sandbox-api.tensile.example",
		SandboxCheckoutURL:  "https://sandbox-pay.tensile.example/checkout",
		SandboxClientID:     "sandbox-id",
		SandboxClientSecret: "sandbox-secret",
	}
}

func payableOrder() entities.OrderSnapshot {
	return entities.OrderSnapshot{
		ID:            "order-1",
		SubtotalMinor: 1000,
		TaxMinor:      150,
		TotalMinor:    1150,
		Currency:      "USD",
		LineItems:     []entities.OrderLine{{Name: "Bottle", Quantity: 1, LineTotalMinor: 1000}},
		Billing:       entities.OrderBilling{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"},
	}
}

var testRedirects = entities.RedirectURLs{Success: "https://shop/ok", Cancel: "https://shop/cancel"}

func TestCheckoutUseCase_CreatePayment_Validations(t *testing.T) {
	t.Run("empty order id", func(t *testing.T) {
		uc := NewCheckoutUseCase(nil, nil, nil, nil)
		_, err := uc.CreatePayment(context.Background(), " ", testRedirects)
		if !errors.Is(err, ErrInvalidOrderID) {
			t.Fatalf("expected ErrInvalidOrderID, got %v", err)
		}
	})

	t.Run("missing redirect urls", func(t *testing.T) {
		uc := NewCheckoutUseCase(nil, nil, nil, nil)
		_, err := uc.CreatePayment(context.Background(), "order-1", entities.RedirectURLs{Success: "https://shop/ok"})
		if !errors.Is(err, ErrInvalidRedirectURLs) {
			t.Fatalf("expected ErrInvalidRedirectURLs, got %v", err)
		}
	})

	t.Run("settings store not configured", func(t *testing.T) {
		uc := NewCheckoutUseCase(nil, nil, nil, nil)
		_, err := uc.CreatePayment(context.Background(), "order-1", testRedirects)
		if err == nil || err.Error() != "settings store not configured" {
			t.Fatalf("expected settings store not configured, got %v", err)
		}
	})

	t.Run("gateway not configured", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		settings := mock_interfaces.NewMockIGatewaySettingsStore(ctrl)
		uc := NewCheckoutUseCase(settings, nil, nil, nil)

		_, err := uc.CreatePayment(context.Background(), "order-1", testRedirects)
		if err == nil || err.Error() != "payment gateway not configured" {
			t.Fatalf("expected payment gateway not configured, got %v", err)
		}
	})
}

func TestCheckoutUseCase_CreatePayment_SettingsChecks(t *testing.T) {
	t.Run("settings load error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		settings := mock_interfaces.NewMockIGatewaySettingsStore(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewCheckoutUseCase(settings, nil, nil, gateway)

		settings.EXPECT().Load(gomock.Any()).Return(entities.GatewaySettings{}, errors.New("db"))

		_, err := uc.CreatePayment(context.Background(), "order-1", testRedirects)
		if err == nil || err.Error() != "db" {
			t.Fatalf("expected db error, got %v", err)
		}
	})

	t.Run("gateway disabled", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		settings := mock_interfaces.NewMockIGatewaySettingsStore(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewCheckoutUseCase(settings, nil, nil, gateway)

		s := enabledSettings()
		s.Enabled = false
		settings.EXPECT().Load(gomock.Any()).Return(s, nil)

		_, err := uc.CreatePayment(context.Background(), "order-1", testRedirects)
		if !errors.Is(err, ErrGatewayDisabled) {
			t.Fatalf("expected ErrGatewayDisabled, got %v", err)
		}
	})

	t.Run("unresolvable environment stops before any network call", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		settings := mock_interfaces.NewMockIGatewaySettingsStore(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewCheckoutUseCase(settings, nil, nil, gateway)

		s := enabledSettings()
		s.SandboxClientSecret = ""
		settings.EXPECT().Load(gomock.Any()).Return(s, nil)

		_, err := uc.CreatePayment(context.Background(), "order-1", testRedirects)
		if !errors.Is(err, entities.ErrMissingCredentials) {
			t.Fatalf("expected ErrMissingCredentials, got %v", err)
		}
	})
}

func TestCheckoutUseCase_CreatePayment_OrderChecks(t *testing.T) {
	t.Run("order not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		settings := mock_interfaces.NewMockIGatewaySettingsStore(ctrl)
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewCheckoutUseCase(settings, orders, nil, gateway)

		settings.EXPECT().Load(gomock.Any()).Return(enabledSettings(), nil)
		orders.EXPECT().GetByID(gomock.Any(), "order-1").Return(entities.OrderSnapshot{}, nil)

		_, err := uc.CreatePayment(context.Background(), "order-1", testRedirects)
		if !errors.Is(err, ErrOrderNotFound) {
			t.Fatalf("expected ErrOrderNotFound, got %v", err)
		}
	})

	t.Run("zero total", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		settings := mock_interfaces.NewMockIGatewaySettingsStore(ctrl)
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewCheckoutUseCase(settings, orders, nil, gateway)

		o := payableOrder()
		o.TotalMinor = 0
		settings.EXPECT().Load(gomock.Any()).Return(enabledSettings(), nil)
		orders.EXPECT().GetByID(gomock.Any(), "order-1").Return(o, nil)

		_, err := uc.CreatePayment(context.Background(), "order-1", testRedirects)
		if !errors.Is(err, ErrOrderHasNoTotal) {
			t.Fatalf("expected ErrOrderHasNoTotal, got %v", err)
		}
	})
}

func TestCheckoutUseCase_CreatePayment_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	settings := mock_interfaces.NewMockIGatewaySettingsStore(ctrl)
	orders := mock_interfaces.NewMockIOrderRepository(ctrl)
	transactions := mock_interfaces.NewMockITransactionRepository(ctrl)
	gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
	uc := NewCheckoutUseCase(settings, orders, transactions, gateway)

	settings.EXPECT().Load(gomock.Any()).Return(enabledSettings(), nil)
	orders.EXPECT().GetByID(gomock.Any(), "order-1").Return(payableOrder(), nil)

	gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any(), gomock.Any(), testRedirects, gomock.Any()).DoAndReturn(
		func(_ context.Context, env entities.ResolvedEnvironment, order entities.OrderSnapshot, _ entities.RedirectURLs, idempotencyKey string) (entities.ProviderPayment, error) {
			if !env.Sandbox || env.ClientID != "sandbox-id" {
				t.Fatalf("expected sandbox environment, got %+v", env)
			}
			if order.ID != "order-1" {
				t.Fatalf("unexpected order: %+v", order)
			}
			if !strings.HasPrefix(idempotencyKey, "order-1-") || len(idempotencyKey) <= len("order-1-") {
				t.Fatalf("idempotency key must be order id plus nonce, got %q", idempotencyKey)
			}
			return entities.ProviderPayment{PaymentID: "pay_123", CheckoutURL: "https://sandbox-pay.tensile.example/checkout/pay_123"}, nil
		},
	)

	transactions.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.PaymentTransaction{})).DoAndReturn(
		func(_ context.Context, txn entities.PaymentTransaction) (entities.PaymentTransaction, error) {
			if txn.OrderID != "order-1" || txn.PaymentID != "pay_123" {
				t.Fatalf("unexpected transaction: %+v", txn)
			}
			if txn.Status != entities.TransactionStatusCreated || txn.Environment != "sandbox" {
				t.Fatalf("unexpected transaction state: %+v", txn)
			}
			if txn.AmountMinor != 1150 || txn.Currency != "USD" {
				t.Fatalf("unexpected amount: %+v", txn)
			}
			if txn.CreatedAt.IsZero() {
				t.Fatalf("created_at must be set")
			}
			return txn, nil
		},
	)

	res, err := uc.CreatePayment(context.Background(), " order-1 ", testRedirects)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.CheckoutURL != "https://sandbox-pay.tensile.example/checkout/pay_123" {
		t.Fatalf("unexpected checkout url: %s", res.CheckoutURL)
	}
}

func TestCheckoutUseCase_CreatePayment_Failures(t *testing.T) {
	t.Run("gateway decline propagates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		settings := mock_interfaces.NewMockIGatewaySettingsStore(ctrl)
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		transactions := mock_interfaces.NewMockITransactionRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewCheckoutUseCase(settings, orders, transactions, gateway)

		declined := errors.New("declined")
		settings.EXPECT().Load(gomock.Any()).Return(enabledSettings(), nil)
		orders.EXPECT().GetByID(gomock.Any(), "order-1").Return(payableOrder(), nil)
		gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(entities.ProviderPayment{}, declined)

		_, err := uc.CreatePayment(context.Background(), "order-1", testRedirects)
		if !errors.Is(err, declined) {
			t.Fatalf("expected gateway error, got %v", err)
		}
	})

	t.Run("duplicate completed attempt", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		settings := mock_interfaces.NewMockIGatewaySettingsStore(ctrl)
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		transactions := mock_interfaces.NewMockITransactionRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewCheckoutUseCase(settings, orders, transactions, gateway)

		settings.EXPECT().Load(gomock.Any()).Return(enabledSettings(), nil)
		orders.EXPECT().GetByID(gomock.Any(), "order-1").Return(payableOrder(), nil)
		gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(entities.ProviderPayment{PaymentID: "pay_9"}, nil)
		transactions.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.PaymentTransaction{}, nil)

		_, err := uc.CreatePayment(context.Background(), "order-1", testRedirects)
		if !errors.Is(err, ErrOrderAlreadySubmitted) {
			t.Fatalf("expected ErrOrderAlreadySubmitted, got %v", err)
		}
	})

	t.Run("persist error propagates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		settings := mock_interfaces.NewMockIGatewaySettingsStore(ctrl)
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		transactions := mock_interfaces.NewMockITransactionRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewCheckoutUseCase(settings, orders, transactions, gateway)

		settings.EXPECT().Load(gomock.Any()).Return(enabledSettings(), nil)
		orders.EXPECT().GetByID(gomock.Any(), "order-1").Return(payableOrder(), nil)
		gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(entities.ProviderPayment{PaymentID: "pay_9"}, nil)
		transactions.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.PaymentTransaction{}, errors.New("db-create"))

		_, err := uc.CreatePayment(context.Background(), "order-1", testRedirects)
		if err == nil || err.Error() != "db-create" {
			t.Fatalf("expected db-create, got %v", err)
		}
	})
}

func TestCheckoutUseCase_GetByOrderID(t *testing.T) {
	t.Run("invalid order id", func(t *testing.T) {
		uc := NewCheckoutUseCase(nil, nil, nil, nil)
		_, err := uc.GetByOrderID(context.Background(), " ")
		if !errors.Is(err, ErrInvalidOrderID) {
			t.Fatalf("expected ErrInvalidOrderID, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		transactions := mock_interfaces.NewMockITransactionRepository(ctrl)
		uc := NewCheckoutUseCase(nil, nil, transactions, nil)

		transactions.EXPECT().GetByOrderID(gomock.Any(), "order-1").Return(entities.PaymentTransaction{}, nil)

		_, err := uc.GetByOrderID(context.Background(), "order-1")
		if !errors.Is(err, ErrTransactionNotFound) {
			t.Fatalf("expected ErrTransactionNotFound, got %v", err)
		}
	})

	t.Run("success trims id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		transactions := mock_interfaces.NewMockITransactionRepository(ctrl)
		uc := NewCheckoutUseCase(nil, nil, transactions, nil)

		transactions.EXPECT().GetByOrderID(gomock.Any(), "order-1").Return(entities.PaymentTransaction{OrderID: "order-1", PaymentID: "pay_1"}, nil)

		res, err := uc.GetByOrderID(context.Background(), " order-1 ")
		if err != nil || res.PaymentID != "pay_1" {
			t.Fatalf("unexpected result err=%v res=%+v", err, res)
		}
	})
}
