package main

import (
	"pet-board/pkg/cache"
	"pet-board/pkg/config"
	"pet-board/pkg/database"
	"pet-board/pkg/logger"
	"pet-board/pkg/queue"
	"pet-board/pkg/s3"
	"pet-board/pkg/search"
	boardApp "pet-board/services/board/internal/app"

	"github.com/gin-gonic/gin"
)

// @title           Pet Board API
// @version         1.0
// @description     Adoption, review, SNS and lost-animal community board

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func init() {
	gin.SetMode(gin.ReleaseMode)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if cfg.JWTSecret == "your-secret-key-change-in-production" || cfg.JWTSecret == "" {
		panic("JWT_SECRET must be set in environment variables")
	}

	log := logger.NewWithLevel(cfg.LogLevel)

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v", err)
		panic(err)
	}

	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		log.Error("Failed to initialize S3 client: %v", err)
		panic(err)
	}

	// Lost reports are best effort; the board works without a broker.
	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Warn("RabbitMQ unavailable, lost reports will not be published: %v", err)
		queueClient = nil
	}

	esClient, err := search.NewElasticsearchClient(cfg)
	if err != nil {
		log.Warn("Elasticsearch unavailable, keyword search falls back to the database: %v", err)
		esClient = nil
	}

	boardApp.Run(cfg, log, db, s3Client, queueClient, redisClient, esClient)
}
