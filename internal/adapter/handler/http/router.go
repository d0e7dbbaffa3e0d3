package http

import (
	"github.com/gin-gonic/gin"
	"github.com/mehtaam/shopstack/internal/adapter/config"
	"github.com/mehtaam/shopstack/internal/core/port"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Router struct {
	*gin.Engine
}

func NewRouter(
	conf *config.HTTP,
	tokenService port.TokenService,
	userHandler *UserHandler,
	orderHandler *OrderHandler,
	rewardHandler *RewardHandler,
	catalogueHandler *CatalogueHandler) (*Router, error) {

	router := gin.New()

	// Swagger
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	{
		user := api.Group("/user")
		{
			user.POST("/register", userHandler.RegisterUser)
			user.POST("/login", userHandler.LoginUser)

			orders := user.Group("/orders")
			{
				orders.Use(authCheck(tokenService))
				orders.POST("", orderHandler.CreateOrder)
				orders.GET("", orderHandler.ListOrdersByUser)
				orders.GET("/:order", orderHandler.GetOrder)
				orders.GET("/:order/timeline", orderHandler.OrderTimeline)
				orders.POST("/:order/reward", rewardHandler.ClaimOrderReward)
			}

			wallet := user.Group("")
			{
				wallet.Use(authCheck(tokenService))
				wallet.GET("/balance", rewardHandler.UserBalance)
				wallet.POST("/balance/spend", rewardHandler.SpendBalance)
				wallet.GET("/ledger", rewardHandler.ListLedgerEntries)
			}
		}

		checkout := api.Group("/checkout")
		{
			checkout.Use(authCheck(tokenService))
			checkout.POST("/quote", catalogueHandler.QuoteCheckout)
		}

		// Internal surface: payment gateway callbacks, courier webhooks
		// and back-office catalogue management.
		internal := api.Group("/internal")
		{
			internal.POST("/tracking", orderHandler.TrackingWebhook)
			internal.POST("/payments/:order/confirm", rewardHandler.ConfirmPayment)
			internal.POST("/orders/:order/dispatch", orderHandler.DispatchShipments)
			internal.POST("/rewards/signup-bonus", rewardHandler.GrantSignupBonus)
			internal.POST("/products", catalogueHandler.CreateProduct)
			internal.POST("/sales", catalogueHandler.CreateSale)
		}
	}

	return &Router{router}, nil
}

// Serve starts the HTTP server
func (r *Router) Serve(listenAddr string) error {
	return r.Run(listenAddr)
}
