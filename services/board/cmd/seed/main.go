package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"time"

	"pet-board/pkg/board"
	"pet-board/pkg/cache"
	"pet-board/pkg/config"
	"pet-board/pkg/database"
	"pet-board/pkg/logger"
	"pet-board/pkg/s3"
	"pet-board/pkg/search"
	boardCache "pet-board/services/board/internal/repo/cache"
	"pet-board/services/board/internal/repo/persistent"
	boardSearch "pet-board/services/board/internal/repo/search"
	"pet-board/services/board/internal/usecase"
)

type samplePost struct {
	userID int64
	input  usecase.CreateBoardInput
}

var samples = []samplePost{
	{1, usecase.CreateBoardInput{CategoryID: board.CategoryAdoption.ID(), Nickname: "보호소지기", Title: "3개월 믹스견 가족을 찾아요", Content: "예방접종 1차 완료했고 사람을 정말 좋아하는 아이입니다."}},
	{1, usecase.CreateBoardInput{CategoryID: board.CategoryAdoption.ID(), Nickname: "보호소지기", Title: "Shy cat looking for a quiet home", Content: "Neutered, litter trained, prefers a home without dogs."}},
	{2, usecase.CreateBoardInput{CategoryID: board.CategoryReview.ID(), Nickname: "콩이맘", Title: "콩이 입양 한 달 후기", Content: "처음엔 숨어만 있던 콩이가 이제는 먼저 다가와요."}},
	{3, usecase.CreateBoardInput{CategoryID: board.CategoryReview.ID(), Nickname: "dogdad", Content: "Six months with Bori. Best decision we ever made."}},
	{2, usecase.CreateBoardInput{CategoryID: board.CategorySNS.ID(), Nickname: "콩이맘", Title: "콩이 인스타 놀러오세요", Content: "매일 산책 사진 올리고 있어요.", SnsURL: "https://instagram.com/kongi_daily"}},
	{4, usecase.CreateBoardInput{CategoryID: board.CategoryLost.ID(), Nickname: "finder", Title: "갈색 푸들을 찾습니다", Content: "빨간 목줄을 하고 있어요. 보신 분 연락 부탁드립니다.", Kind: "푸들", Gender: "수컷", Age: "5살", Color: "갈색", LostLocation: "서울 마포구 망원동", LostDate: "2024-05-01", LostType: string(board.LostTypeMissing)}},
	{5, usecase.CreateBoardInput{CategoryID: board.CategoryLost.ID(), Nickname: "walker", Content: "Black cat with a white chest seen near the park entrance.", Kind: "cat", Color: "black", LostLocation: "Hangang park", LostDate: "2024-05-03", LostType: string(board.LostTypeSighted)}},
}

func main() {
	var withImages bool
	var force bool
	flag.BoolVar(&withImages, "images", true, "fetch a sample picture from cataas.com for every post")
	flag.BoolVar(&force, "force", false, "seed even when the board already has posts")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.NewWithLevel(cfg.LogLevel)

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		log.Error("Failed to create S3 client: %v", err)
		panic(err)
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v", err)
		panic(err)
	}
	defer redisClient.Close()

	boardRepo := persistent.NewBoardRepository(db)
	opts := usecase.Options{
		SearchCache: boardCache.NewRedisSearchCache(redisClient, cfg.SearchCacheTTL),
	}
	if esClient, err := search.NewElasticsearchClient(cfg); err != nil {
		log.Warn("Elasticsearch unavailable, posts will not be indexed: %v", err)
	} else if esClient != nil {
		index := boardSearch.NewESBoardIndex(esClient, cfg.ESIndex)
		if err := index.EnsureIndex(context.Background()); err != nil {
			log.Warn("Failed to prepare search index: %v", err)
		}
		opts.Index = index
	}
	boardUseCase := usecase.NewBoardUseCase(boardRepo, s3Client, opts, log)

	ctx := context.Background()
	if !force {
		_, total, err := boardRepo.Search(ctx, board.Query{Size: 1})
		if err != nil {
			log.Error("Failed to count posts: %v", err)
			panic(err)
		}
		if total > 0 {
			log.Info("Board already has %d posts, skipping (use -force to seed anyway)", total)
			return
		}
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}
	created := 0
	for i, sample := range samples {
		input := sample.input
		input.UserID = sample.userID

		if withImages {
			img, err := fetchCatImage(ctx, httpClient, i)
			if err != nil {
				log.Warn("Skipping image for sample %d: %v", i+1, err)
			} else {
				input.Images = []usecase.ImageUpload{img}
			}
		}

		b, err := boardUseCase.CreateBoard(ctx, input)
		if err != nil {
			log.Error("Failed to create sample %d: %v", i+1, err)
			continue
		}
		created++
		log.Info("Created %s post %d by %s", b.Category(), b.ID, b.Nickname)
	}

	log.Info("Seeded %d of %d posts", created, len(samples))
}

func fetchCatImage(ctx context.Context, httpClient *http.Client, index int) (usecase.ImageUpload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://cataas.com/cat", nil)
	if err != nil {
		return usecase.ImageUpload{}, err
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return usecase.ImageUpload{}, fmt.Errorf("failed to fetch cat image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return usecase.ImageUpload{}, fmt.Errorf("cataas API returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return usecase.ImageUpload{}, fmt.Errorf("failed to read image data: %w", err)
	}
	if len(data) == 0 {
		return usecase.ImageUpload{}, fmt.Errorf("received empty image data")
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	return usecase.ImageUpload{
		Filename:    fmt.Sprintf("seed_%d.jpg", index),
		ContentType: contentType,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}, nil
}
