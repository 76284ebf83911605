package routes

import (
	"log"
	"strconv"

	_ "github.com/cWebCo/tensile-payment-2/docs" // This will be auto-generated
	"github.com/cWebCo/tensile-payment-2/internal/adapter/http/handlers"
	"github.com/cWebCo/tensile-payment-2/internal/adapter/persistence/repository"
	"github.com/cWebCo/tensile-payment-2/internal/infrastructure/database"
	"github.com/cWebCo/tensile-payment-2/internal/infrastructure/payments"
	"github.com/cWebCo/tensile-payment-2/internal/usecase"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const PORT = 8080

// Run will start the server
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	err := router.Run(":" + strconv.Itoa(PORT))
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes() {
	ddb := database.ConnectDynamoDB()

	settingsRepo := repository.NewGatewaySettingsDynamoRepository(ddb)
	orderRepo := repository.NewOrderDynamoRepository(ddb)
	transactionRepo := repository.NewTransactionDynamoRepository(ddb)

	gateway := payments.NewTensileGatewayFromEnv()

	checkoutUseCase := usecase.NewCheckoutUseCase(settingsRepo, orderRepo, transactionRepo, gateway)
	refundUseCase := usecase.NewRefundUseCase(settingsRepo, transactionRepo, gateway)

	paymentHandler := handlers.NewPaymentHandler(checkoutUseCase)
	refundHandler := handlers.NewRefundHandler(refundUseCase)

	// Rotas publicas
	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addGatewayRoutes(v1, paymentHandler, refundHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
