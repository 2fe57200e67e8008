package routes

import (
	"time"

	"github.com/Tomm10100/el-dorado-ecommerce/analytics"
	"github.com/Tomm10100/el-dorado-ecommerce/cart"
	"github.com/Tomm10100/el-dorado-ecommerce/firebase"
	"github.com/Tomm10100/el-dorado-ecommerce/handlers"
	"github.com/Tomm10100/el-dorado-ecommerce/middleware"
	"github.com/Tomm10100/el-dorado-ecommerce/support"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, storage firebase.StorageClient, persist cart.Persistence, sink *analytics.Sink) {
	// Initialize handlers
	authHandler := &handlers.AuthHandler{DB: db}
	productHandler := &handlers.ProductHandler{DB: db, Storage: storage}
	cartHandler := &handlers.CartHandler{DB: db, Persist: persist, Sink: sink}
	checkoutHandler := &handlers.CheckoutHandler{Persist: persist, Sink: sink}
	supportHandler := &handlers.SupportHandler{DB: db, Responder: support.NewResponder(db)}
	subscriberHandler := &handlers.SubscriberHandler{DB: db}
	configHandler := &handlers.ConfigHandler{}

	chatLimiter := middleware.NewRateLimiter(20, time.Minute)
	subscribeLimiter := middleware.NewRateLimiter(5, time.Minute)

	// Public routes
	api := r.Group("/api")
	{
		api.POST("/auth/login", authHandler.Login)

		api.GET("/products", productHandler.GetProducts)
		api.GET("/products/:id", productHandler.GetProduct)

		api.GET("/config", configHandler.GetConfig)

		api.POST("/subscribers", subscribeLimiter.Middleware(), subscriberHandler.Subscribe)
	}

	// Storefront routes keyed to the visitor's cart
	storefront := api.Group("")
	storefront.Use(middleware.CartKeyMiddleware())
	{
		storefront.GET("/cart", cartHandler.GetCart)
		storefront.POST("/cart", cartHandler.AddToCart)
		storefront.PUT("/cart/:productId", cartHandler.UpdateCartItem)
		storefront.DELETE("/cart/:productId", cartHandler.RemoveFromCart)
		storefront.DELETE("/cart", cartHandler.ClearCart)

		storefront.POST("/checkout/card", checkoutHandler.CheckoutCard)
		storefront.POST("/checkout/crypto", checkoutHandler.CheckoutCrypto)

		storefront.POST("/support/chat", chatLimiter.Middleware(), supportHandler.Chat)
		storefront.GET("/support/chat", supportHandler.History)
	}

	// Protected routes (require authentication)
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.GET("/auth/profile", authHandler.GetProfile)
	}

	// Admin routes (require admin role)
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware())
	admin.Use(middleware.AdminMiddleware())
	{
		admin.POST("/products", productHandler.CreateProduct)
		admin.PUT("/products/:id", productHandler.UpdateProduct)
		admin.DELETE("/products/:id", productHandler.DeleteProduct)
		admin.POST("/products/upload", productHandler.UploadProductImage)
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
