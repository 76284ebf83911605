package routes

import (
	"github.com/cWebCo/tensile-payment-2/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathPayments = "/payments"
	PathRefunds  = "/refunds"
)

func addGatewayRoutes(rg *gin.RouterGroup, paymentHandler *handlers.PaymentHandler, refundHandler *handlers.RefundHandler) {
	payments := rg.Group(PathPayments)
	{
		payments.POST("/:order_id", paymentHandler.CreatePaymentByOrderID)
		payments.GET("/:order_id", paymentHandler.GetPaymentByOrderID)
	}

	refunds := rg.Group(PathRefunds)
	{
		refunds.POST("/:order_id", refundHandler.RefundByOrderID)
	}
}
