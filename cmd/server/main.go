package main

import (
	"log"
	"strings"

	"storefront-be/internal/address"
	"storefront-be/internal/admin"
	"storefront-be/internal/cache"
	"storefront-be/internal/cart"
	"storefront-be/internal/category"
	"storefront-be/internal/config"
	"storefront-be/internal/db"
	"storefront-be/internal/httpapi"
	"storefront-be/internal/logger"
	"storefront-be/internal/metrics"
	"storefront-be/internal/order"
	"storefront-be/internal/payment"
	"storefront-be/internal/payment/webhook"
	"storefront-be/internal/product"
	"storefront-be/internal/review"
	"storefront-be/internal/user"
	"storefront-be/internal/wishlist"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database, err := db.Connect(cfg)
	if err != nil {
		logger.L().Fatal("database unreachable", zap.Error(err))
	}
	defer database.Close()

	registry := metrics.NewRegistry()

	var productCache *cache.Cache
	if cfg.RedisAddr != "" {
		productCache = cache.New(cache.NewClient(cfg))
	}

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo, productCache)

	categoryRepo := category.NewRepository(database)
	categorySvc := category.NewService(categoryRepo)

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo, cfg.JWTSecret)

	cartRepo := cart.NewRepository(database)
	cartSvc := cart.NewService(cartRepo, productRepo)

	addressRepo := address.NewRepository(database)
	addressSvc := address.NewService(addressRepo)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo, cartRepo, productRepo, addressRepo)

	gateway := payment.NewStripeGateway(cfg.StripeSecretKey)
	paymentRepo := payment.NewRepository(database)
	paymentSvc := payment.NewService(paymentRepo, orderRepo, gateway, registry, cfg.Domain)

	reviewRepo := review.NewRepository(database)
	reviewSvc := review.NewService(reviewRepo, productRepo)

	wishlistRepo := wishlist.NewRepository(database)
	wishlistSvc := wishlist.NewService(wishlistRepo, productRepo, cartSvc)

	adminRepo := admin.NewRepository(database)
	adminSvc := admin.NewService(adminRepo, orderRepo, userRepo, reviewRepo, registry)

	verifier := webhook.NewVerifier(cfg.StripeWebhookSecret)

	handlers := httpapi.Handlers{
		Auth:     httpapi.NewAuthHandler(userSvc, cartSvc),
		Product:  httpapi.NewProductHandler(productSvc),
		Category: httpapi.NewCategoryHandler(categorySvc),
		Cart:     httpapi.NewCartHandler(cartSvc),
		Order:    httpapi.NewOrderHandler(orderSvc),
		Payment:  httpapi.NewPaymentHandler(paymentSvc),
		Review:   httpapi.NewReviewHandler(reviewSvc, productSvc),
		Wishlist: httpapi.NewWishlistHandler(wishlistSvc),
		Address:  httpapi.NewAddressHandler(addressSvc),
		Admin:    httpapi.NewAdminHandler(adminSvc, userSvc, reviewSvc),
		Webhook:  webhook.NewHandler(paymentSvc, verifier, registry),
	}

	router := httpapi.NewRouter(httpapi.RouterConfig{
		JWTSecret:    cfg.JWTSecret,
		AllowOrigins: strings.Split(cfg.Domain, ","),
	}, handlers, registry)

	logger.L().Info("server starting", zap.String("port", cfg.AppPort))
	if err := router.Run(":" + cfg.AppPort); err != nil {
		log.Fatal(err)
	}
}
