package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/DRainger/MyMDb/config"
	"github.com/DRainger/MyMDb/controllers"
	"github.com/DRainger/MyMDb/data_access"
	"github.com/DRainger/MyMDb/logger"
	"github.com/DRainger/MyMDb/metrics"
	"github.com/DRainger/MyMDb/middleware"
	"github.com/DRainger/MyMDb/services"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	zlog, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer zlog.Sync()

	zlog.Info("configuration loaded", zap.String("env", cfg.Env), zap.String("port", cfg.Port))

	metrics.MustRegister()

	// Initialize MongoDB connection
	mongodb, err := data_access.NewMongoDB(cfg.MongoURI, cfg.DBName)
	if err != nil {
		zlog.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer mongodb.Close(context.Background())

	indexCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := mongodb.EnsureIndexes(indexCtx); err != nil {
		zlog.Fatal("failed to create indexes", zap.Error(err))
	}

	// Redis is optional; when unset the movie service runs uncached.
	var cache services.MovieCache
	if cfg.RedisAddr != "" {
		redisCache := data_access.NewRedisCache(cfg.RedisAddr, cfg.CacheTTL)
		if err := redisCache.Ping(context.Background()); err != nil {
			zlog.Fatal("failed to connect to Redis", zap.Error(err))
		}
		defer redisCache.Close()
		cache = redisCache
	}

	// Initialize repositories
	userRepo := data_access.NewUserRepository(mongodb)
	watchlistRepo := data_access.NewWatchlistRepository(mongodb)
	ratingRepo := data_access.NewRatingRepository(mongodb)
	omdbClient := data_access.NewOMDBClient(cfg.OMDBAPIKey, cfg.OMDBBaseURL)

	// Set JWT secret for middleware
	middleware.SetJWTSecret(cfg.JWTSecret)

	// Initialize services
	authService := services.NewAuthService(userRepo, cfg.JWTSecret, zlog)
	userService := services.NewUserService(userRepo, watchlistRepo, ratingRepo, zlog)
	movieService := services.NewMovieService(omdbClient, cache, zlog)
	watchlistService := services.NewWatchlistService(watchlistRepo, zlog)
	ratingService := services.NewRatingService(ratingRepo, zlog)
	recommendationService := services.NewRecommendationService(movieService, ratingRepo, zlog)

	// Initialize controllers
	authController := controllers.NewAuthController(authService)
	userController := controllers.NewUserController(userService)
	movieController := controllers.NewMovieController(movieService)
	watchlistController := controllers.NewWatchlistController(watchlistService)
	ratingController := controllers.NewRatingController(ratingService)
	recommendationController := controllers.NewRecommendationController(recommendationService)

	// Setup Gin router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg.ClientURL))
	r.Use(middleware.Observe(zlog))

	// Health check endpoint
	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authController.Register)
			auth.POST("/login", authController.Login)
			auth.POST("/logout", authController.Logout)
		}

		movies := api.Group("/movies")
		{
			movies.GET("/search", movieController.Search)
			movies.GET("/search/advanced", movieController.SearchAdvanced)
			movies.GET("/popular", movieController.Popular)
			movies.GET("/:imdbId", movieController.GetByID)
			movies.GET("/:imdbId/full", movieController.GetByIDFullPlot)
		}

		users := api.Group("/users")
		users.Use(middleware.AuthMiddleware())
		{
			users.GET("/me", userController.GetMe)
			users.PUT("/me", userController.UpdateMe)
			users.DELETE("/me", userController.DeleteMe)

			admin := users.Group("")
			admin.Use(middleware.RequireAdmin())
			{
				admin.GET("", userController.List)
				admin.GET("/:id", userController.GetByID)
				admin.PUT("/:id", userController.UpdateByID)
				admin.DELETE("/:id", userController.DeleteByID)
			}
		}

		watchlist := api.Group("/watchlist")
		watchlist.Use(middleware.AuthMiddleware())
		{
			watchlist.GET("", watchlistController.Get)
			watchlist.POST("", watchlistController.Add)
			watchlist.PUT("", watchlistController.Replace)
			watchlist.DELETE("", watchlistController.Clear)
			watchlist.GET("/count", watchlistController.Count)
			watchlist.GET("/paginated", watchlistController.Paginated)
			watchlist.GET("/check/:movieId", watchlistController.Check)
			watchlist.DELETE("/:movieId", watchlistController.Remove)
		}

		ratings := api.Group("/ratings")
		{
			ratings.GET("/average/:movieId", ratingController.Average)

			protected := ratings.Group("")
			protected.Use(middleware.AuthMiddleware())
			{
				protected.POST("", ratingController.Rate)
				protected.GET("/movie/:movieId", ratingController.GetUserRating)
				protected.GET("/user", ratingController.GetUserRatings)
				protected.GET("/stats", ratingController.Stats)
				protected.GET("/recent", ratingController.Recent)
				protected.DELETE("/:movieId", ratingController.Remove)
			}
		}

		recommendations := api.Group("/recommendations")
		{
			recommendations.GET("/user", middleware.AuthMiddleware(), recommendationController.ForUser)
			recommendations.GET("/new-user", recommendationController.ForNewUser)
			recommendations.GET("/trending", recommendationController.Trending)
			recommendations.GET("/popular", recommendationController.Popular)
			recommendations.GET("/similar/:movieId", recommendationController.Similar)
		}
	}

	zlog.Info("server starting", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}
