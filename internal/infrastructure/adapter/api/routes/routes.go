package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/api/middleware"
)

// Handlers groups every HTTP handler the router mounts
type Handlers struct {
	Saldo    *handler.SaldoHandler
	Topup    *handler.TopupHandler
	Transfer *handler.TransferHandler
	Withdraw *handler.WithdrawHandler
	Health   *handler.HealthHandler
}

// SetupRoutes configures all the routes for the API. gatherer backs /metrics and may be nil.
func SetupRoutes(router *gin.Engine, h Handlers, gatherer prometheus.Gatherer) {
	if h.Health != nil {
		router.GET("/health", h.Health.Health)
	}
	if gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	api := router.Group("/api")

	saldos := api.Group("/saldos")
	{
		saldos.GET("", h.Saldo.List)
		saldos.GET("/:id", h.Saldo.Get)
		saldos.GET("/user/:id", h.Saldo.GetByUser)
		saldos.GET("/users/:id", h.Saldo.GetByUsers)
		saldos.POST("", h.Saldo.Create)
		saldos.POST("/withdraw", h.Saldo.Withdraw)
		saldos.PUT("/:id", h.Saldo.Update)
		saldos.DELETE("/:id", h.Saldo.Delete)
	}

	topups := api.Group("/topups")
	{
		topups.GET("", h.Topup.List)
		topups.GET("/:id", h.Topup.Get)
		topups.GET("/user/:id", h.Topup.GetByUser)
		topups.GET("/users/:id", h.Topup.GetByUsers)
		topups.POST("", h.Topup.Create)
		topups.PUT("/:id", h.Topup.Update)
		topups.DELETE("/:id", h.Topup.Delete)
	}

	transfers := api.Group("/transfers")
	{
		transfers.GET("", h.Transfer.List)
		transfers.GET("/:id", h.Transfer.Get)
		transfers.GET("/user/:id", h.Transfer.GetByUser)
		transfers.GET("/users/:id", h.Transfer.GetByUsers)
		transfers.POST("", h.Transfer.Create)
		transfers.PUT("/:id", h.Transfer.Update)
		transfers.DELETE("/:id", h.Transfer.Delete)
	}

	withdraws := api.Group("/withdraws")
	{
		withdraws.GET("", h.Withdraw.List)
		withdraws.GET("/:id", h.Withdraw.Get)
		withdraws.GET("/user/:id", h.Withdraw.GetByUser)
		withdraws.GET("/users/:id", h.Withdraw.GetByUsers)
		withdraws.POST("", h.Withdraw.Create)
		withdraws.PUT("/:id", h.Withdraw.Update)
		withdraws.DELETE("/:id", h.Withdraw.Delete)
	}
}

// SetupMiddlewares configures global middlewares for the API. RequestID runs first so every
// later middleware sees the id.
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger, clock coreport.TimeProvider) {
	router.Use(middleware.RequestID())
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger, clock))
	router.Use(middleware.CORS())
}
