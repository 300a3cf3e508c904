package router

import (
	"fmt"
	"strings"

	"github.com/yanhua-ledger/internal/cache"
	"github.com/yanhua-ledger/internal/config"
	"github.com/yanhua-ledger/internal/http/handlers"
	"github.com/yanhua-ledger/internal/logger"
	"github.com/yanhua-ledger/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	handler := handlers.NewHandler(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "yh"
	}
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		Message:       "登录尝试过于频繁，请稍后重试",
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 商品图片等静态文件
	r.Static("/uploads", "./uploads")

	apiV1 := r.Group("/api/v1")
	{
		apiV1.POST("/auth/login",
			RateLimitMiddleware(cache.Client(), loginRule, nil),
			handler.Login)

		authed := apiV1.Group("")
		authed.Use(AuthMiddleware(c.AuthService))
		{
			authed.GET("/auth/me", handler.Me)
			authed.POST("/auth/change-password", handler.ChangePassword)
			authed.GET("/users", handler.ListUsers)
			authed.POST("/users", handler.CreateUser)

			authed.GET("/categories", handler.GetCategories)
			authed.POST("/categories", handler.CreateCategory)
			authed.PUT("/categories/:id", handler.UpdateCategory)
			authed.DELETE("/categories/:id", handler.DeleteCategory)

			authed.GET("/products", handler.GetProducts)
			authed.POST("/products", handler.CreateProduct)
			authed.GET("/products/:id", handler.GetProduct)
			authed.PUT("/products/:id", handler.UpdateProduct)
			authed.DELETE("/products/:id", handler.DeleteProduct)
			authed.GET("/products/:id/price", handler.GetProductPrice)
			authed.GET("/products/:id/inventory", handler.GetInventory)
			authed.POST("/products/:id/inventory/adjust", handler.AdjustInventory)

			authed.GET("/inventory/logs", handler.GetInventoryLogs)

			authed.POST("/sales", handler.CreateSale)
			authed.GET("/sales", handler.GetSales)
			authed.GET("/sales/:id", handler.GetSale)

			authed.POST("/purchases", handler.CreatePurchase)
			authed.GET("/purchases", handler.GetPurchases)
			authed.GET("/purchases/:id", handler.GetPurchase)
			authed.POST("/purchases/:id/receive", handler.ReceivePurchase)
			authed.DELETE("/purchases/:id", handler.DeletePurchase)

			authed.GET("/config/global-multiplier", handler.GetGlobalMultiplier)
			authed.PUT("/config/global-multiplier", handler.SetGlobalMultiplier)
			authed.GET("/receipts", handler.GetDailyReceipts)
			authed.POST("/receipts/override", handler.OverrideDailyReceipt)

			authed.POST("/misc-costs", handler.CreateMiscCost)
			authed.GET("/misc-costs", handler.GetMiscCosts)
			authed.DELETE("/misc-costs/:id", handler.DeleteMiscCost)

			authed.GET("/dashboard/overview", handler.GetDashboardOverview)
			authed.GET("/dashboard/inventory-valuation", handler.GetInventoryValuation)
			authed.GET("/dashboard/daily", handler.GetDailyPerformance)
		}
	}

	return r
}
