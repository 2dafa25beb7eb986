package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/hypnotizedent/printshop-os-sub005/internal/server/http/handlers"
	"github.com/hypnotizedent/printshop-os-sub005/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.PrintShopFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	shippingHandler := handlers.NewShippingHandler(facade)
	quoteHandler := handlers.NewQuoteHandler(facade)
	productHandler := handlers.NewProductHandler(facade)
	dashboardHandler := handlers.NewDashboardHandler(facade)
	filesHandler := handlers.NewFilesHandler(facade)
	healthHandler := handlers.NewHealthHandler(facade)

	api := engine.Group("/api")
	api.GET("/health", healthHandler.Check)

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(facade))

	orders := authed.Group("/orders")
	orders.POST("", orderHandler.Create)
	orders.GET("", orderHandler.List)
	orders.GET("/:id", orderHandler.Get)
	orders.GET("/:id/timeline", orderHandler.Timeline)
	orders.PATCH("/:id/status", orderHandler.UpdateStatus)
	orders.POST("/:id/label", shippingHandler.CreateLabel)
	orders.GET("/:id/invoice", filesHandler.Invoice)
	orders.GET("/:id/artwork/:name", filesHandler.Artwork)

	quotes := authed.Group("/quotes")
	quotes.POST("/:id/approve", quoteHandler.Approve)
	quotes.POST("/:id/reject", quoteHandler.Reject)
	quotes.POST("/:id/changes", quoteHandler.RequestChanges)
	quotes.GET("/:id/approvals", quoteHandler.History)

	authed.GET("/products", productHandler.List)
	authed.GET("/products/:sku", productHandler.Get)
	authed.GET("/dashboard/stats", dashboardHandler.Stats)

	return engine
}
