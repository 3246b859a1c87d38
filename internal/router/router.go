package router

import (
	"fmt"
	"strings"

	"github.com/royale-store/royale-api/internal/cache"
	"github.com/royale-store/royale-api/internal/config"
	adminhandlers "github.com/royale-store/royale-api/internal/http/handlers/admin"
	publichandlers "github.com/royale-store/royale-api/internal/http/handlers/public"
	"github.com/royale-store/royale-api/internal/logger"
	"github.com/royale-store/royale-api/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter builds the HTTP route tree.
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "ryl"
	}
	redisClient := cache.Client()
	submitRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:submit", redisPrefix),
		WindowSeconds: cfg.Checkout.SubmitRateLimit.WindowSeconds,
		MaxRequests:   cfg.Checkout.SubmitRateLimit.MaxRequests,
		Message:       "too many checkout attempts, please wait",
	}
	couponRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:coupon", redisPrefix),
		WindowSeconds: cfg.Checkout.SubmitRateLimit.WindowSeconds,
		MaxRequests:   cfg.Checkout.SubmitRateLimit.MaxRequests,
		Message:       "too many coupon attempts, please wait",
	}
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: 300,
		MaxRequests:   10,
		Message:       "too many login attempts, please wait",
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	api := r.Group("/api")
	{
		api.GET("/banners", publicHandler.ListBanners)
		api.GET("/categories", publicHandler.ListCategories)
		api.GET("/products", publicHandler.ListProducts)
		api.GET("/products/:slug", publicHandler.GetProduct)

		api.GET("/cart", publicHandler.ListCart)
		api.POST("/cart/items", publicHandler.AddCartItem)
		api.PUT("/cart/items", publicHandler.UpdateCartItem)
		api.DELETE("/cart/items", publicHandler.RemoveCartItem)
		api.DELETE("/cart", publicHandler.ClearCart)

		checkout := api.Group("/checkout")
		{
			checkout.POST("/quote", publicHandler.Quote)
			checkout.POST("/validate", publicHandler.ValidateStep)
			checkout.POST("/coupon", RateLimitMiddleware(redisClient, couponRule, KeyByIPAndJSONField("code")), publicHandler.ApplyCoupon)
			checkout.POST("/submit", RateLimitMiddleware(redisClient, submitRule, KeyByIP), publicHandler.SubmitOrder)
		}

		api.GET("/orders/track", publicHandler.TrackOrder)
	}

	admin := r.Group("/api/admin")
	{
		admin.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("username")), adminHandler.Login)

		authed := admin.Group("")
		authed.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo))
		{
			authed.GET("/me", adminHandler.Me)

			authed.GET("/orders", adminHandler.ListOrders)
			authed.GET("/orders/:id", adminHandler.GetOrder)
			authed.PUT("/orders/:id/status", adminHandler.UpdateOrderStatus)

			authed.GET("/coupons", adminHandler.ListCoupons)
			authed.POST("/coupons", adminHandler.CreateCoupon)
			authed.PUT("/coupons/:id", adminHandler.UpdateCoupon)
			authed.DELETE("/coupons/:id", adminHandler.DeleteCoupon)

			authed.GET("/bans", adminHandler.ListBans)
			authed.POST("/bans", adminHandler.CreateBan)
			authed.PUT("/bans/:id", adminHandler.UpdateBan)
			authed.DELETE("/bans/:id", adminHandler.DeleteBan)

			authed.GET("/restrictions/config", adminHandler.GetRestrictionConfig)
			authed.PUT("/restrictions/config", adminHandler.UpdateRestrictionConfig)
			authed.GET("/restrictions", adminHandler.ListRestrictions)
			authed.POST("/restrictions", adminHandler.CreateRestriction)
			authed.PUT("/restrictions/:id", adminHandler.UpdateRestriction)
			authed.DELETE("/restrictions/:id", adminHandler.DeleteRestriction)

			authed.GET("/products", adminHandler.ListProducts)
			authed.POST("/products", adminHandler.CreateProduct)
			authed.PUT("/products/:id", adminHandler.UpdateProduct)
			authed.DELETE("/products/:id", adminHandler.DeleteProduct)

			authed.GET("/categories", adminHandler.ListCategories)
			authed.POST("/categories", adminHandler.CreateCategory)
			authed.PUT("/categories/:id", adminHandler.UpdateCategory)
			authed.DELETE("/categories/:id", adminHandler.DeleteCategory)

			authed.GET("/banners", adminHandler.ListBanners)
			authed.POST("/banners", adminHandler.CreateBanner)
			authed.PUT("/banners/:id", adminHandler.UpdateBanner)
			authed.DELETE("/banners/:id", adminHandler.DeleteBanner)
		}
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
