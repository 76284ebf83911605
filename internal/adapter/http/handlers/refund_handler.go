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

type RefundHandler struct {
	usecase usecase.IRefundUseCase
}

func NewRefundHandler(uc usecase.IRefundUseCase) *RefundHandler {
	return &RefundHandler{usecase: uc}
}

// RefundByOrderID sends a refund instruction to the provider for the
// payment recorded against the order.
func (h *RefundHandler) RefundByOrderID(c *gin.Context) {
	orderID := c.Param("order_id")
	log.Printf("[refund][handler] start order_id=%s", orderID)

	var req request.RefundCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[refund][handler] invalid payload order_id=%s err=%v", orderID, err)
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	refunded, err := h.usecase.RefundByOrderID(c.Request.Context(), orderID, req.AmountMinor, req.Reason)
	if err != nil {
		log.Printf("[refund][handler] failed order_id=%s err=%v", orderID, err)
		appErr := mapRefundError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[refund][handler] success order_id=%s payment_id=%s", orderID, refunded.PaymentID)

	c.JSON(http.StatusOK, response.FromRefundedTransaction(refunded))
}

func mapRefundError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidOrderID), errors.Is(err, usecase.ErrInvalidRefundAmount):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrTransactionNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrAlreadyRefunded):
		return pkg.NewDomainErrorSimple("ALREADY_REFUNDED", "Payment was already refunded", http.StatusConflict)
	case errors.Is(err, entities.ErrMissingCredentials), errors.Is(err, entities.ErrInvalidEndpoint):
		return pkg.NewDomainErrorSimple("GATEWAY_MISCONFIGURED", "Payment gateway is not configured", http.StatusServiceUnavailable)
	case errors.Is(err, payments.ErrRefundDeclined):
		return pkg.NewDomainErrorSimple("REFUND_DECLINED", "Refund was declined by the provider", http.StatusUnprocessableEntity)
	case errors.Is(err, payments.ErrProviderUnreachable):
		return pkg.NewDomainErrorSimple("PROVIDER_UNREACHABLE", "Payment provider unreachable", http.StatusBadGateway)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
