package router

import (
	"time"

	"github.com/dannyallport-cain/we-date/config"
	"github.com/dannyallport-cain/we-date/internal/cache"
	"github.com/dannyallport-cain/we-date/internal/handler"
	"github.com/dannyallport-cain/we-date/internal/middleware"
	"github.com/dannyallport-cain/we-date/internal/repository"
	"github.com/dannyallport-cain/we-date/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(cfg *config.Config, db *gorm.DB, redisCache *cache.RedisCache) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	// Skip gin.Logger() to reduce log noise; use gin.Default() if you need request logging
	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:           12 * time.Hour,
		AllowCredentials: false,
	}))
	r.Use(middleware.RateLimit(middleware.NewRedisRateLimiter(redisCache.Client, cfg.Engine.RateLimit, cfg.Engine.RateWindow)))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	swipeRepo := repository.NewSwipeRepository(db)
	matchRepo := repository.NewMatchRepository(db)
	boostRepo := repository.NewBoostRepository(db)
	discoveryRepo := repository.NewDiscoveryRepository(db)
	blockRepo := repository.NewBlockRepository(db)
	reportRepo := repository.NewReportRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	interestRepo := repository.NewInterestRepository(db)

	// Services
	authSvc := service.NewAuthService(cfg, userRepo)
	notifSvc := service.NewNotificationService(notificationRepo, cfg.Engine.NotifyTimeout)
	discoverySvc := service.NewDiscoveryService(userRepo, discoveryRepo, boostRepo, &cfg.Engine)
	swipeSvc := service.NewSwipeService(db, userRepo, notifSvc, &cfg.Engine)
	boostSvc := service.NewBoostService(userRepo, boostRepo, &cfg.Engine)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	meHandler := handler.NewMeHandler(userRepo, interestRepo)
	discoveryHandler := handler.NewDiscoveryHandler(discoverySvc)
	swipeHandler := handler.NewSwipeHandler(swipeSvc, redisCache)
	boostHandler := handler.NewBoostHandler(boostSvc)
	matchHandler := handler.NewMatchHandler(matchRepo, swipeRepo, redisCache)
	safetyHandler := handler.NewSafetyHandler(userRepo, blockRepo, reportRepo, matchRepo)
	notificationHandler := handler.NewNotificationHandler(notificationRepo)

	authMw := middleware.AuthRequired(&cfg.JWT, userRepo)

	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/signup", authHandler.Signup)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
		}

		api.GET("/discover", authMw, discoveryHandler.Discover)
		api.GET("/interests", authMw, meHandler.ListInterests)

		api.POST("/swipe", authMw, swipeHandler.Record)
		api.POST("/swipe/rewind", authMw, swipeHandler.Rewind)
		api.GET("/swipe/limits", authMw, swipeHandler.Limits)

		api.POST("/boost", authMw, boostHandler.Activate)

		api.GET("/matches", authMw, matchHandler.List)
		api.GET("/matches/likes", authMw, matchHandler.Likes)

		me := api.Group("/me")
		me.Use(authMw)
		{
			me.GET("", meHandler.GetProfile)
			me.PATCH("", meHandler.UpdateProfile)
			me.PATCH("/location", meHandler.UpdateLocation)
			me.GET("/notifications", notificationHandler.List)
			me.PUT("/notifications/:id/read", notificationHandler.MarkRead)
		}

		api.POST("/users/:id/block", authMw, safetyHandler.Block)
		api.DELETE("/users/:id/block", authMw, safetyHandler.Unblock)
		api.POST("/users/:id/report", authMw, safetyHandler.Report)
	}

	return r
}
