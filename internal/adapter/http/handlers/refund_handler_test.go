package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cWebCo/tensile-payment-2/internal/adapter/http/handlers/mocks"
	"github.com/cWebCo/tensile-payment-2/internal/domain/entities"
	"github.com/cWebCo/tensile-payment-2/internal/infrastructure/payments"
	"github.com/cWebCo/tensile-payment-2/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

const refundBody = `{"amount_minor":500,"reason":"customer request"}`

func TestRefundHandler_RefundByOrderID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid payload", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIRefundUseCase(ctrl)
		h := NewRefundHandler(uc)

		r := gin.New()
		r.POST("/v1/refunds/:order_id", h.RefundByOrderID)

		req := httptest.NewRequest(http.MethodPost, "/v1/refunds/order-1", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("missing amount", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIRefundUseCase(ctrl)
		h := NewRefundHandler(uc)

		r := gin.New()
		r.POST("/v1/refunds/:order_id", h.RefundByOrderID)

		req := httptest.NewRequest(http.MethodPost, "/v1/refunds/order-1", bytes.NewBufferString(`{"reason":"customer request"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("transaction not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIRefundUseCase(ctrl)
		h := NewRefundHandler(uc)

		r := gin.New()
		r.POST("/v1/refunds/:order_id", h.RefundByOrderID)

		uc.EXPECT().RefundByOrderID(gomock.Any(), "order-1", int64(500), "customer request").Return(entities.PaymentTransaction{}, usecase.ErrTransactionNotFound)

		req := httptest.NewRequest(http.MethodPost, "/v1/refunds/order-1", bytes.NewBufferString(refundBody))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("already refunded", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIRefundUseCase(ctrl)
		h := NewRefundHandler(uc)

		r := gin.New()
		r.POST("/v1/refunds/:order_id", h.RefundByOrderID)

		uc.EXPECT().RefundByOrderID(gomock.Any(), "order-1", int64(500), "customer request").Return(entities.PaymentTransaction{}, usecase.ErrAlreadyRefunded)

		req := httptest.NewRequest(http.MethodPost, "/v1/refunds/order-1", bytes.NewBufferString(refundBody))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("refund declined", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIRefundUseCase(ctrl)
		h := NewRefundHandler(uc)

		r := gin.New()
		r.POST("/v1/refunds/:order_id", h.RefundByOrderID)

		uc.EXPECT().RefundByOrderID(gomock.Any(), "order-1", int64(500), "customer request").Return(entities.PaymentTransaction{}, payments.ErrRefundDeclined)

		req := httptest.NewRequest(http.MethodPost, "/v1/refunds/order-1", bytes.NewBufferString(refundBody))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
	})

	t.Run("provider unreachable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIRefundUseCase(ctrl)
		h := NewRefundHandler(uc)

		r := gin.New()
		r.POST("/v1/refunds/:order_id", h.RefundByOrderID)

		uc.EXPECT().RefundByOrderID(gomock.Any(), "order-1", int64(500), "customer request").Return(entities.PaymentTransaction{}, payments.ErrProviderUnreachable)

		req := httptest.NewRequest(http.MethodPost, "/v1/refunds/order-1", bytes.NewBufferString(refundBody))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIRefundUseCase(ctrl)
		h := NewRefundHandler(uc)

		r := gin.New()
		r.POST("/v1/refunds/:order_id", h.RefundByOrderID)

		uc.EXPECT().RefundByOrderID(gomock.Any(), "order-1", int64(500), "customer request").Return(entities.PaymentTransaction{
			OrderID:       "order-1",
			PaymentID:     "pay-1",
			Status:        entities.TransactionStatusRefunded,
			RefundedMinor: 500,
			RefundReason:  "customer request",
		}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/refunds/order-1", bytes.NewBufferString(refundBody))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var got map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatalf("unmarshal response: %v", err)
		}
		if got["refunded"] != true {
			t.Fatalf("expected refunded true, got %v", got["refunded"])
		}
		if got["refunded_minor"] != float64(500) {
			t.Fatalf("expected refunded_minor 500, got %v", got["refunded_minor"])
		}
	})
}
