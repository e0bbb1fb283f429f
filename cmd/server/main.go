package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/junoapp/juno-backend/internal/config"
	"github.com/junoapp/juno-backend/internal/constants"
	"github.com/junoapp/juno-backend/internal/database"
	"github.com/junoapp/juno-backend/internal/handlers"
	"github.com/junoapp/juno-backend/internal/logger"
	"github.com/junoapp/juno-backend/internal/middleware"
	"github.com/junoapp/juno-backend/internal/repository"
	"github.com/junoapp/juno-backend/internal/services"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	zlog, err := logger.New(cfg.GinMode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		zlog.Fatal("failed to run migrations", zap.Error(err))
	}
	if cfg.DBDriver == "postgres" {
		if err := database.AddIndexes(database.GetDB()); err != nil {
			zlog.Warn("failed to add indexes", zap.Error(err))
		}
	}

	// Optional Redis cache for geocoding results
	var cache *redis.Client
	if cfg.RedisAddr != "" {
		cache = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	}

	// Initialize repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	rideRepo := repository.NewRideRepository(db)
	friendRepo := repository.NewFriendshipRepository(db)
	locationRepo := repository.NewLocationRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo)
	tokenService := services.NewTokenService(cfg.JWTSecret)
	oauthService := services.NewGoogleOAuthService(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.BaseURL, zlog)
	profileService := services.NewProfileService(userRepo)
	friendService := services.NewFriendService(friendRepo, userRepo)
	rideService := services.NewRideService(rideRepo, friendService)
	locationService := services.NewLocationService(locationRepo)
	geocodingService := services.NewGeocodingService(cfg.GoogleMapsAPIKey, cache, zlog)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, tokenService, oauthService, zlog)
	profileHandler := handlers.NewProfileHandler(profileService)
	rideHandler := handlers.NewRideHandler(rideService)
	friendHandler := handlers.NewFriendHandler(friendService)
	locationHandler := handlers.NewLocationHandler(locationService)
	mapsHandler := handlers.NewMapsHandler(geocodingService)

	// Initialize Gin router
	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	// Cookie session carries the OAuth state between redirect and callback
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(constants.OAuthStateTTL.Seconds()),
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Juno API is running",
		})
	})

	auth := r.Group("/auth")
	{
		auth.GET("/google", authHandler.GoogleLogin)
		auth.GET("/google/callback", authHandler.GoogleCallback)
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/me", middleware.RequireAuth(tokenService), authHandler.GetCurrentUser)
	}

	// API routes
	api := r.Group("/api")
	api.Use(middleware.RequireAuth(tokenService))
	{
		api.GET("/profile", profileHandler.GetProfile)
		api.PUT("/profile", profileHandler.UpdateProfile)

		api.GET("/rides", rideHandler.ListRides)
		api.POST("/rides", rideHandler.CreateRide)
		api.GET("/rides/nearby", rideHandler.NearbyRides)
		api.GET("/rides/:id", rideHandler.GetRide)
		api.POST("/rides/:id/join", rideHandler.JoinRide)
		api.DELETE("/rides/:id/leave", rideHandler.LeaveRide)
		api.POST("/rides/:id/cancel", rideHandler.CancelRide)
		api.POST("/rides/:id/complete", rideHandler.CompleteRide)

		api.GET("/users/search", friendHandler.SearchUsers)
		api.GET("/friends", friendHandler.ListFriends)
		api.POST("/friends", friendHandler.SendRequest)
		api.GET("/friends/requests", friendHandler.ListRequests)
		api.POST("/friends/requests/:id/accept", friendHandler.AcceptRequest)
		api.DELETE("/friends/requests/:id", friendHandler.DeclineRequest)

		api.GET("/locations", locationHandler.ListLocations)
		api.POST("/locations", locationHandler.SaveLocation)
		api.DELETE("/locations/:id", locationHandler.DeleteLocation)

		api.GET("/maps/geocode", mapsHandler.Geocode)
		api.GET("/maps/distance", mapsHandler.Distance)
	}

	zlog.Info("server starting", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		zlog.Fatal("server exited", zap.Error(err))
	}
}
