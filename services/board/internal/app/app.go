package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pet-board/pkg/config"
	"pet-board/pkg/jwt"
	"pet-board/pkg/logger"
	"pet-board/pkg/middleware"
	"pet-board/pkg/queue"
	"pet-board/pkg/s3"
	boardHTTP "pet-board/services/board/internal/controller/http"
	"pet-board/services/board/internal/repo/cache"
	"pet-board/services/board/internal/repo/persistent"
	"pet-board/services/board/internal/repo/search"
	"pet-board/services/board/internal/usecase"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "pet-board/services/board/docs" // Swagger docs
)

// Run wires the board service and blocks until SIGINT or SIGTERM.
// queueClient and esClient are optional.
func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, s3Client *s3.Client, queueClient *queue.Client, redisClient *redis.Client, esClient *elasticsearch.Client) {
	jwtService := jwt.NewService(cfg.JWTSecret)

	// Initialize repositories
	boardRepo := persistent.NewBoardRepository(db)

	opts := usecase.Options{
		SearchCache: cache.NewRedisSearchCache(redisClient, cfg.SearchCacheTTL),
		Views:       cache.NewRedisViewTracker(redisClient, cfg.ViewDedupTTL),
	}
	if queueClient != nil {
		opts.Events = queueClient
	}
	if esClient != nil {
		index := search.NewESBoardIndex(esClient, cfg.ESIndex)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := index.EnsureIndex(ctx); err != nil {
			log.Warn("Failed to prepare search index %s: %v", cfg.ESIndex, err)
		}
		cancel()
		opts.Index = index
	}

	// Initialize use cases
	boardUseCase := usecase.NewBoardUseCase(boardRepo, s3Client, opts, log)

	// Initialize HTTP handlers
	boardHandler := boardHTTP.NewBoardHandler(boardUseCase, log)

	r := NewRouter(boardHandler, jwtService, redisClient, cfg.WriteRateLimit)

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	go func() {
		log.Info("Board service starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down board service...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Stop accepting requests before closing the backends they use
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	sqlDB, err := db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error("Error closing database: %v", err)
		}
	}

	if err := redisClient.Close(); err != nil {
		log.Error("Error closing Redis: %v", err)
	}

	if queueClient != nil {
		queueClient.Close()
	}

	log.Info("Board service exited")
}

// NewRouter registers the board routes. Reads are public; writes need a
// bearer token and are rate limited per user.
func NewRouter(boardHandler *boardHTTP.BoardHandler, jwtService *jwt.Service, limiter middleware.RateCounter, writeLimit int) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	{
		api.GET("/boards", boardHandler.SearchBoards)
		api.GET("/boards/:id", middleware.OptionalAuthMiddleware(jwtService), boardHandler.GetBoard)
	}

	write := api.Group("")
	write.Use(middleware.AuthMiddleware(jwtService))
	write.Use(middleware.RateLimitMiddleware(limiter, writeLimit, time.Minute))
	{
		write.POST("/boards", boardHandler.CreateBoard)
		write.PUT("/boards/:id", boardHandler.UpdateBoard)
		write.DELETE("/boards/:id", boardHandler.DeleteBoard)
	}

	return r
}
