package router

import (
	"fmt"
	"strings"

	"github.com/tokenlock/tokenlock-api/internal/cache"
	"github.com/tokenlock/tokenlock-api/internal/config"
	adminhandlers "github.com/tokenlock/tokenlock-api/internal/http/handlers/admin"
	publichandlers "github.com/tokenlock/tokenlock-api/internal/http/handlers/public"
	"github.com/tokenlock/tokenlock-api/internal/logger"
	"github.com/tokenlock/tokenlock-api/internal/metrics"
	"github.com/tokenlock/tokenlock-api/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
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
		redisPrefix = "tl"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
	}
	otpRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:send_otp", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(metrics.Middleware())
	r.Use(CORSMiddleware(cfg.CORS))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api")
	{
		// 认证接口
		api.POST("/register", publicHandler.Register)
		api.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.Login)
		api.GET("/check-auth", publicHandler.CheckAuth)
		api.POST("/logout", publicHandler.Logout)
		api.GET("/captcha/image", publicHandler.CaptchaImage)

		// 忘记密码
		forgot := api.Group("/forgot-password")
		{
			forgot.POST("/send-otp", RateLimitMiddleware(redisClient, otpRule, KeyByIPAndJSONField("email")), publicHandler.SendOTP)
			forgot.POST("/verify-otp", publicHandler.VerifyOTP)
			forgot.POST("/reset-password", publicHandler.ResetPassword)
		}

		// 控制台接口（需会话 Cookie）
		console := api.Group("")
		console.Use(CookieAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo))
		{
			console.GET("/campaigns", adminHandler.ListCampaigns)
			console.POST("/campaigns", adminHandler.CreateCampaign)
			console.GET("/campaigns/:id", adminHandler.GetCampaign)
			console.PUT("/campaigns/:id", adminHandler.UpdateCampaign)
			console.PATCH("/campaigns/:id", adminHandler.UpdateCampaignStatus)
			console.DELETE("/campaigns/:id", adminHandler.DeleteCampaign)

			console.GET("/purchase-limits", adminHandler.ListPurchaseLimits)
			console.POST("/purchase-limits", adminHandler.CreatePurchaseLimit)
			console.GET("/purchase-limit-update/:id", adminHandler.GetPurchaseLimit)
			console.PUT("/purchase-limit-update/:id", adminHandler.UpdatePurchaseLimit)
			console.DELETE("/purchase-limit-update/:id", adminHandler.DeletePurchaseLimit)

			console.GET("/settings", adminHandler.GetSettings)
			console.POST("/settings", adminHandler.SaveSettings)
		}
	}

	return r
}
