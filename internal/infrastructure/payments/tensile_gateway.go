package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cWebCo/tensile-payment-2/internal/domain/entities"
	"github.com/cWebCo/tensile-payment-2/internal/usecase/interfaces"
)

var (
	// ErrProviderUnreachable covers transport failures and responses whose
	// body could not be parsed. Retryable by caller policy, never here.
	ErrProviderUnreachable = errors.New("payment provider unreachable")
	// ErrPaymentDeclined is a well-formed response without a payment_id.
	ErrPaymentDeclined = errors.New("payment provider declined the payment")
	// ErrRefundDeclined is a well-formed refund response whose status is not "ok".
	ErrRefundDeclined = errors.New("payment provider declined the refund")
)

const (
	defaultPlatformName  = "Woocommerce"
	defaultCorrelationID = "wc-tensile-gateway"
	defaultTimeout       = 30 * time.Second
)

// TensileGateway is the HTTP client for the Tensile payments API.
//
// Endpoints and credentials are not held here: they arrive per call in the
// resolved environment, so sandbox/live switches take effect immediately.
// The client timeout bounds the whole exchange; callers can cancel earlier
// through ctx.

type TensileGateway struct {
	client        *http.Client
	platformName  string
	correlationID string
}

var _ interfaces.IPaymentGateway = (*TensileGateway)(nil)

// NewTensileGatewayFromEnv builds a gateway from environment variables:
//   - TENSILE_PLATFORM_NAME (default: Woocommerce)
//   - TENSILE_CORRELATION_ID (default: wc-tensile-gateway)
//   - TENSILE_HTTP_TIMEOUT_SECONDS (default: 30)
func NewTensileGatewayFromEnv() *TensileGateway {
	timeout := defaultTimeout
	if raw := strings.TrimSpace(os.Getenv("TENSILE_HTTP_TIMEOUT_SECONDS")); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			timeout = time.Duration(secs) * time.Second
		} else {
			log.Printf("[gateway][tensile] ignoring invalid TENSILE_HTTP_TIMEOUT_SECONDS=%q", raw)
		}
	}
	return NewTensileGateway(
		getenvDefault("TENSILE_PLATFORM_NAME", defaultPlatformName),
		getenvDefault("TENSILE_CORRELATION_ID", defaultCorrelationID),
		timeout,
	)
}

func NewTensileGateway(platformName, correlationID string, timeout time.Duration) *TensileGateway {
	return &TensileGateway{
		client:        &http.Client{Timeout: timeout},
		platformName:  platformName,
		correlationID: correlationID,
	}
}

func (g *TensileGateway) CreatePayment(ctx context.Context, env entities.ResolvedEnvironment, order entities.OrderSnapshot, redirects entities.RedirectURLs, idempotencyKey string) (entities.ProviderPayment, error) {
	wire := toPaymentRequest(order, redirects, g.platformName)
	log.Printf("[gateway][tensile] create start order_id=%s env=%s items=%d shipping_required=%t", order.ID, env.Name(), len(wire.Items), wire.ShippingRequired)

	body, err := g.post(ctx, env, "/payments", wire, idempotencyKey)
	if err != nil {
		return entities.ProviderPayment{}, err
	}

	var resp paymentResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		log.Printf("[gateway][tensile] create response unparsable order_id=%s err=%v", order.ID, err)
		return entities.ProviderPayment{}, fmt.Errorf("%w: decoding payment response: %v", ErrProviderUnreachable, err)
	}
	if strings.TrimSpace(resp.PaymentID) == "" {
		log.Printf("[gateway][tensile] create declined order_id=%s", order.ID)
		return entities.ProviderPayment{}, ErrPaymentDeclined
	}

	checkoutURL := strings.TrimRight(env.CheckoutBaseURL, "/") + "/" + resp.PaymentID
	log.Printf("[gateway][tensile] create success order_id=%s payment_id=%s", order.ID, resp.PaymentID)
	return entities.ProviderPayment{PaymentID: resp.PaymentID, CheckoutURL: checkoutURL}, nil
}

func (g *TensileGateway) RefundPayment(ctx context.Context, env entities.ResolvedEnvironment, refund entities.RefundInstruction) error {
	wire := refundRequest{
		PaymentID:       refund.PaymentID,
		Amount:          minorUnits(refund.AmountMinor),
		Reason:          refund.Reason,
		PlatformName:    g.platformName,
		PlatformOrderID: refund.PlatformOrderID,
	}
	log.Printf("[gateway][tensile] refund start order_id=%s payment_id=%s env=%s", refund.PlatformOrderID, refund.PaymentID, env.Name())

	body, err := g.post(ctx, env, "/refunds", wire, "")
	if err != nil {
		return err
	}

	var resp refundResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		log.Printf("[gateway][tensile] refund response unparsable payment_id=%s err=%v", refund.PaymentID, err)
		return fmt.Errorf("%w: decoding refund response: %v", ErrProviderUnreachable, err)
	}
	if resp.Status != "ok" {
		log.Printf("[gateway][tensile] refund declined payment_id=%s status=%q", refund.PaymentID, resp.Status)
		return fmt.Errorf("%w: status=%q", ErrRefundDeclined, resp.Status)
	}
	log.Printf("[gateway][tensile] refund success payment_id=%s", refund.PaymentID)
	return nil
}

// post sends one JSON request with the provider's required header set and
// returns the raw response body. Any transport-level failure maps to
// ErrProviderUnreachable; status codes are left to the response parsers
// since the provider signals outcomes in the body.
func (g *TensileGateway) post(ctx context.Context, env entities.ResolvedEnvironment, path string, payload any, idempotencyKey string) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshaling %s request: %w", path, err)
	}

	url := strings.TrimRight(env.APIEndpoint, "/") + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building %s request: %w", path, err)
	}
	req.Header.Set("correlation-id", g.correlationID)
	req.Header.Set("client_id", env.ClientID)
	req.Header.Set("client_secret", env.ClientSecret)
	req.Header.Set("Accept", "application/json;v=2")
	req.Header.Set("Content-Type", "application/json")
	if idempotencyKey != "" {
		req.Header.Set("idempotency-key", idempotencyKey)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		log.Printf("[gateway][tensile] request failed path=%s err=%v", path, err)
		return nil, fmt.Errorf("%w: %v", ErrProviderUnreachable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrProviderUnreachable, err)
	}
	log.Printf("[gateway][tensile] response path=%s status=%d body_len=%d", path, resp.StatusCode, len(raw))
	return raw, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
