package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"pet-board/pkg/cache"
	"pet-board/pkg/config"
	"pet-board/pkg/database"
	"pet-board/pkg/logger"
	"pet-board/pkg/search"
	boardCache "pet-board/services/board/internal/repo/cache"
	"pet-board/services/board/internal/repo/persistent"
	boardSearch "pet-board/services/board/internal/repo/search"
	"pet-board/services/board/internal/usecase"
)

func main() {
	var batch int
	var fresh bool
	flag.IntVar(&batch, "batch", 200, "posts loaded per database round trip")
	flag.BoolVar(&fresh, "fresh", false, "drop the index first so the current mapping is applied")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.NewWithLevel(cfg.LogLevel)

	esClient, err := search.NewElasticsearchClient(cfg)
	if err != nil {
		log.Error("Failed to connect to elasticsearch: %v", err)
		os.Exit(1)
	}
	if esClient == nil {
		log.Error("ES_ADDRESSES is not set, nothing to reindex")
		os.Exit(1)
	}

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	if fresh {
		res, err := esClient.Indices.Delete([]string{cfg.ESIndex},
			esClient.Indices.Delete.WithContext(ctx),
			esClient.Indices.Delete.WithIgnoreUnavailable(true),
		)
		if err != nil {
			log.Error("Failed to drop index %s: %v", cfg.ESIndex, err)
			os.Exit(1)
		}
		res.Body.Close()
		if res.IsError() {
			log.Error("Failed to drop index %s: %s", cfg.ESIndex, res.Status())
			os.Exit(1)
		}
		log.Info("Dropped index %s", cfg.ESIndex)
	}

	index := boardSearch.NewESBoardIndex(esClient, cfg.ESIndex)
	indexer := usecase.NewBoardIndexer(persistent.NewBoardRepository(db), index, log)

	n, err := indexer.Reindex(ctx, batch)
	if err != nil {
		log.Error("Reindex stopped after %d boards: %v", n, err)
		os.Exit(1)
	}
	log.Info("Reindexed %d boards into %s", n, cfg.ESIndex)

	// Cached pages may have been built while the index was missing posts.
	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Warn("Redis unavailable, search cache not invalidated: %v", err)
		return
	}
	defer redisClient.Close()

	if err := boardCache.NewRedisSearchCache(redisClient, cfg.SearchCacheTTL).Invalidate(ctx); err != nil {
		log.Warn("Failed to invalidate search cache: %v", err)
	}
}
