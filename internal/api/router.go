package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"konnection/backend/internal/api/handlers"
	"konnection/backend/internal/api/middleware"
	"konnection/backend/internal/cache"
	"konnection/backend/internal/config"
	"konnection/backend/internal/geo"
	"konnection/backend/internal/repository"
	"konnection/backend/internal/services"
	"konnection/backend/internal/storage"
	"konnection/backend/internal/tasks"
)

// SetupRouter configures and returns the main Gin engine.
func SetupRouter(
	cfg *config.Config,
	database *mongo.Database,
	rdb *redis.Client,
	store storage.IImageStorage,
	geocoder geo.IGeocoder,
	taskClient tasks.Enqueuer,
	logger *zap.Logger,
) *gin.Engine {
	roomRepo := repository.NewMongoRoomRepository(database)
	reviewRepo := repository.NewMongoReviewRepository(database)
	searchCache := cache.NewSearchCache(rdb, cfg.SearchCacheTTL, logger)

	roomService := services.NewRoomService(roomRepo, store, geocoder, searchCache, taskClient, logger)
	roomQueryService := services.NewRoomQueryService(roomRepo, searchCache, logger)
	reviewService := services.NewReviewService(reviewRepo, roomRepo, logger)
	chatService := services.NewChatService(cfg.GeminiBaseURL, cfg.GeminiApiKey, cfg.GeminiModel, logger)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORSMiddleware())

	rateLimiter := middleware.NewRateLimiterMiddleware(cfg, logger)
	r.Use(rateLimiter.Limit())

	roomHandler := handlers.NewRoomHandler(roomService, roomQueryService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	chatHandler := handlers.NewChatHandler(chatService)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/ping", func(c *gin.Context) {
			c.String(http.StatusOK, "pong")
		})

		// Room routes. The search route must come before :roomId.
		v1.POST("/rooms", roomHandler.CreateRoom)
		v1.GET("/rooms", roomHandler.ListRooms)
		v1.GET("/rooms/search", roomHandler.SearchRooms)
		v1.GET("/rooms/:roomId", roomHandler.GetRoom)
		v1.PUT("/rooms/:roomId", roomHandler.UpdateRoom)
		v1.DELETE("/rooms/:roomId", roomHandler.DeleteRoom)

		// Review routes
		v1.POST("/reviews", reviewHandler.CreateReview)
		v1.GET("/reviews", reviewHandler.ListReviews)
		v1.PUT("/reviews/:reviewId", reviewHandler.UpdateReview)
		v1.DELETE("/reviews/:reviewId", reviewHandler.DeleteReview)

		// Chat routes
		v1.POST("/chat", chatHandler.Chat)
		v1.POST("/chat/translate", chatHandler.Translate)
	}

	return r
}
