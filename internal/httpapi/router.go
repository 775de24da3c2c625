package httpapi

import (
	"net/http"
	"time"

	"storefront-be/internal/metrics"
	"storefront-be/internal/middleware"
	"storefront-be/internal/payment/webhook"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth     *AuthHandler
	Product  *ProductHandler
	Category *CategoryHandler
	Cart     *CartHandler
	Order    *OrderHandler
	Payment  *PaymentHandler
	Review   *ReviewHandler
	Wishlist *WishlistHandler
	Address  *AddressHandler
	Admin    *AdminHandler
	Webhook  *webhook.Handler
}

type RouterConfig struct {
	JWTSecret    string
	AllowOrigins []string
}

func NewRouter(cfg RouterConfig, h Handlers, reg *metrics.Registry) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(reg))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(middleware.Authenticate(cfg.JWTSecret))
	r.Use(middleware.GuestSession())
	r.Use(middleware.NewRateLimiter().Middleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// The webhook route sits outside /api/v1 and outside auth: the gateway
	// authenticates by signature, not by token.
	r.POST("/webhooks/stripe", h.Webhook.Handle)

	api := r.Group("/api/v1")

	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/register", h.Auth.Register)
		authRoutes.POST("/login", h.Auth.Login)
		authRoutes.POST("/logout", h.Auth.Logout)
		authRoutes.GET("/me", middleware.RequireAuth(), h.Auth.Me)
	}

	api.GET("/categories", h.Category.List)
	api.GET("/categories/:slug", h.Category.GetBySlug)

	api.GET("/products", h.Product.List)
	api.GET("/products/:slug", h.Product.GetBySlug)
	api.GET("/products/:slug/reviews", h.Review.ListForProduct)

	cartRoutes := api.Group("/cart")
	{
		cartRoutes.GET("", h.Cart.Get)
		cartRoutes.POST("/items", h.Cart.AddItem)
		cartRoutes.PUT("/items/:productId", h.Cart.UpdateItem)
		cartRoutes.DELETE("/items/:productId", h.Cart.RemoveItem)
		cartRoutes.DELETE("", h.Cart.Clear)
	}

	authed := api.Group("", middleware.RequireAuth())
	{
		authed.POST("/orders", h.Order.Checkout)
		authed.GET("/orders", h.Order.List)
		authed.GET("/orders/:id", h.Order.Get)
		authed.POST("/orders/:id/cancel", h.Order.Cancel)
		authed.POST("/orders/:id/payment", h.Payment.CreateCheckoutSession)
		authed.GET("/orders/:id/payment", h.Payment.GetByOrder)

		authed.POST("/products/:slug/reviews", h.Review.Create)
		authed.PUT("/reviews/:id", h.Review.Update)
		authed.DELETE("/reviews/:id", h.Review.Delete)

		authed.GET("/wishlist", h.Wishlist.List)
		authed.GET("/wishlist/count", h.Wishlist.Count)
		authed.POST("/wishlist/:productId", h.Wishlist.Add)
		authed.DELETE("/wishlist/:productId", h.Wishlist.Remove)
		authed.DELETE("/wishlist", h.Wishlist.Clear)
		authed.POST("/wishlist/:productId/move-to-cart", h.Wishlist.MoveToCart)

		authed.GET("/addresses", h.Address.List)
		authed.POST("/addresses", h.Address.Create)
		authed.GET("/addresses/:id", h.Address.Get)
		authed.PATCH("/addresses/:id", h.Address.Update)
		authed.DELETE("/addresses/:id", h.Address.Delete)
	}

	adminRoutes := api.Group("/admin", middleware.RequireAdmin())
	{
		adminRoutes.GET("/dashboard", h.Admin.Dashboard)
		adminRoutes.GET("/metrics", h.Admin.Metrics)

		adminRoutes.GET("/users", h.Admin.ListUsers)
		adminRoutes.PATCH("/users/:id/role", h.Admin.UpdateUserRole)
		adminRoutes.PATCH("/users/:id/active", h.Admin.SetUserActive)

		adminRoutes.GET("/products", h.Product.AdminList)
		adminRoutes.POST("/products", h.Product.Create)
		adminRoutes.PATCH("/products/:id", h.Product.Update)
		adminRoutes.DELETE("/products/:id", h.Product.Delete)

		adminRoutes.POST("/categories", h.Category.Create)
		adminRoutes.PATCH("/categories/:id", h.Category.Update)
		adminRoutes.DELETE("/categories/:id", h.Category.Delete)

		adminRoutes.GET("/orders", h.Order.AdminList)
		adminRoutes.PATCH("/orders/:id/status", h.Order.UpdateStatus)

		adminRoutes.GET("/reviews/pending", h.Admin.PendingReviews)
		adminRoutes.POST("/reviews/:id/approve", h.Admin.ApproveReview)
		adminRoutes.POST("/reviews/:id/reject", h.Admin.RejectReview)
	}

	return r
}
