package handlers

import (
	"errors"
	"log"
	"net/http"

	request "github.com/cWebCo/tensile-payment-2/internal/adapter/http/dto/request"
	response "github.com/cWebCo/tensile-payment-2/internal/adapter/http/dto/response"
	"github.com/cWebCo/tensile-payment-2/internal/domain/entities"
	"github.com/cWebCo/tensile-payment-2/internal/infrastructure/payments"
	"github.com/cWebCo/tensile-payment-2/internal/usecase"
	"github.com/cWebCo/tensile-payment-2/pkg"

	"github.com/gin-gonic/gin"
)

// PaymentHandler handles the host-facing payment endpoints.

type PaymentHandler struct {
	usecase usecase.ICheckoutUseCase
}

func NewPaymentHandler(uc usecase.ICheckoutUseCase) *PaymentHandler {
	return &PaymentHandler{usecase: uc}
}

// CreatePaymentByOrderID starts a provider checkout session for the order
// in the path and returns the redirect URL for the buyer.
func (h *PaymentHandler) CreatePaymentByOrderID(c *gin.Context) {
	orderID := c.Param("order_id")
	log.Printf("[payment][handler] create start order_id=%s", orderID)

	var req request.CheckoutCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[payment][handler] invalid payload order_id=%s err=%v", orderID, err)
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	redirects := entities.RedirectURLs{Success: req.RedirectURISuccess, Cancel: req.RedirectURICancel}
	created, err := h.usecase.CreatePayment(c.Request.Context(), orderID, redirects)
	if err != nil {
		log.Printf("[payment][handler] create failed order_id=%s err=%v", orderID, err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[payment][handler] create success order_id=%s payment_id=%s", orderID, created.PaymentID)

	c.JSON(http.StatusOK, response.FromPaymentTransaction(created))
}

// GetPaymentByOrderID returns the persisted transaction for an order
// (the host's admin panel shows this as the Transaction Id).
func (h *PaymentHandler) GetPaymentByOrderID(c *gin.Context) {
	orderID := c.Param("order_id")
	log.Printf("[payment][handler] get start order_id=%s", orderID)

	txn, err := h.usecase.GetByOrderID(c.Request.Context(), orderID)
	if err != nil {
		log.Printf("[payment][handler] get failed order_id=%s err=%v", orderID, err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPaymentTransaction(txn))
}

func mapPaymentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidOrderID), errors.Is(err, usecase.ErrInvalidRedirectURLs), errors.Is(err, usecase.ErrOrderHasNoTotal):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrOrderNotFound):
		return pkg.NewDomainErrorSimple("ORDER_NOT_FOUND", "Order not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrTransactionNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrOrderAlreadySubmitted):
		return pkg.NewDomainErrorSimple("ORDER_ALREADY_SUBMITTED", "Order already has a payment transaction", http.StatusConflict)
	case errors.Is(err, usecase.ErrGatewayDisabled):
		return pkg.NewDomainErrorSimple("GATEWAY_DISABLED", "Payment gateway is disabled", http.StatusServiceUnavailable)
	case errors.Is(err, entities.ErrMissingCredentials), errors.Is(err, entities.ErrInvalidEndpoint):
		return pkg.NewDomainErrorSimple("GATEWAY_MISCONFIGURED", "Payment gateway is not configured", http.StatusServiceUnavailable)
	case errors.Is(err, payments.ErrPaymentDeclined):
		return pkg.NewDomainErrorSimple("PAYMENT_DECLINED", "Payment could not be started", http.StatusPaymentRequired)
	case errors.Is(err, payments.ErrProviderUnreachable):
		return pkg.NewDomainErrorSimple("PROVIDER_UNREACHABLE", "Payment provider unreachable", http.StatusBadGateway)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
