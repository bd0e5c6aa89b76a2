package main

import (
	"log"
	"time"

	"devconnector-be/internal/cache"
	"devconnector-be/internal/config"
	"devconnector-be/internal/controllers"
	"devconnector-be/internal/database"
	"devconnector-be/internal/jwt"
	"devconnector-be/internal/middleware"
	"devconnector-be/internal/repository"
	"devconnector-be/internal/service"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	// Connect to MongoDB
	db, err := database.NewConnection(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.EnsureIndexes(db); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	// Initialize Redis cache (optional - continue if Redis is unavailable)
	var cacheClient cache.Cache
	if cfg.RedisURL != "" {
		cacheClient, err = cache.NewRedisCache(cfg.RedisURL)
		if err != nil {
			log.Printf("Warning: Failed to connect to Redis (%v). Continuing without cache.", err)
			cacheClient = nil
		} else {
			log.Println("Connected to Redis cache")
		}
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)

	// Initialize JWT service
	jwtService := jwt.NewJWTService(
		cfg.JWTSecret,
		time.Duration(cfg.JWTTTL)*time.Hour,
	)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService)
	profileService := service.NewProfileService(profileRepo, userRepo, cacheClient)

	// Initialize controllers
	authController := controllers.NewAuthController(authService)
	profileController := controllers.NewProfileController(profileService)
	qrcodeController := controllers.NewQRCodeController(profileService, cfg.FrontendURL)

	// Initialize rate limiters
	generalRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	authRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitAuthRPS), cfg.RateLimitAuthBurst)

	// Create a Gin router
	router := gin.Default()

	// Health check endpoint (no rate limiting)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	api := router.Group("/api")
	api.Use(generalRateLimiter.LimitMiddleware())
	{
		// Registration and login with stricter rate limiting
		api.POST("/users", authRateLimiter.LimitMiddleware(), authController.Register)
		api.POST("/auth", authRateLimiter.LimitMiddleware(), authController.Login)

		api.GET("/auth", middleware.AuthRequired(jwtService), authController.GetCurrentUser)

		profile := api.Group("/profile")
		{
			// Public profile routes
			profile.GET("", profileController.GetProfiles)
			profile.GET("/user/:user_id", profileController.GetProfileByUserID)
			profile.GET("/user/:user_id/qrcode", qrcodeController.GenerateQRCode)

			// Protected profile routes - require a valid token
			protected := profile.Group("")
			protected.Use(middleware.AuthRequired(jwtService))
			{
				protected.GET("/me", profileController.GetMyProfile)
				protected.POST("", profileController.UpsertProfile)
				protected.DELETE("", profileController.DeleteProfile)
				protected.POST("/experience", profileController.AddExperience)
				protected.DELETE("/experience/:id", profileController.DeleteExperience)
				protected.POST("/education", profileController.AddEducation)
				protected.DELETE("/education/:id", profileController.DeleteEducation)
			}
		}
	}

	log.Printf("Server starting on http://localhost:%s", cfg.Port)
	router.Run(":" + cfg.Port)
}
