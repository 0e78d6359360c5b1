package usecase

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"pet-board/pkg/board"
	"pet-board/pkg/logger"
	"pet-board/pkg/queue"
	"pet-board/services/board/internal/entity"
	"pet-board/services/board/internal/repo/cache"
	"pet-board/services/board/internal/repo/persistent"
	"pet-board/services/board/internal/repo/search"

	"github.com/google/uuid"
)

var errStaleIndex = errors.New("search index is stale")

type BoardUseCase interface {
	SearchBoards(ctx context.Context, q board.Query) (*board.Page[board.ApiAnimal], error)
	GetBoard(ctx context.Context, id int64, viewer string) (*entity.Board, error)
	CreateBoard(ctx context.Context, input CreateBoardInput) (*entity.Board, error)
	UpdateBoard(ctx context.Context, id, userID int64, input UpdateBoardInput) (*entity.Board, error)
	DeleteBoard(ctx context.Context, id, userID int64) error
}

type boardUseCase struct {
	boardRepo   persistent.BoardRepository
	index       search.BoardIndex
	searchCache cache.SearchCache
	views       cache.ViewTracker
	images      ImageStore
	events      EventPublisher
	logger      *logger.Logger
}

// Options holds the optional collaborators. Any of them may be nil: search
// then always goes to the database, nothing is cached, every view is counted
// and lost reports are not announced.
type Options struct {
	Index       search.BoardIndex
	SearchCache cache.SearchCache
	Views       cache.ViewTracker
	Events      EventPublisher
}

func NewBoardUseCase(
	boardRepo persistent.BoardRepository,
	images ImageStore,
	opts Options,
	logger *logger.Logger,
) BoardUseCase {
	return &boardUseCase{
		boardRepo:   boardRepo,
		index:       opts.Index,
		searchCache: opts.SearchCache,
		views:       opts.Views,
		images:      images,
		events:      opts.Events,
		logger:      logger,
	}
}

func (uc *boardUseCase) SearchBoards(ctx context.Context, q board.Query) (*board.Page[board.ApiAnimal], error) {
	q = q.Normalize()

	if uc.searchCache != nil {
		page, err := uc.searchCache.Get(ctx, q)
		if err == nil {
			return page, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			uc.logger.Warn("Search cache read failed: %v", err)
		}
	}

	boards, total, err := uc.search(ctx, q)
	if err != nil {
		return nil, err
	}

	page := board.NewPage(entity.ToApiAnimals(boards), q.Page, q.Size, total, true)

	if uc.searchCache != nil {
		if err := uc.searchCache.Set(ctx, q, &page); err != nil {
			uc.logger.Warn("Search cache write failed: %v", err)
		}
	}

	return &page, nil
}

// search answers keyword queries from the index when it is configured. The
// index holds no view counts, so view-count ordering always reads the
// database, as does any query the index answers with stale hits.
func (uc *boardUseCase) search(ctx context.Context, q board.Query) ([]*entity.Board, int64, error) {
	if uc.index != nil && q.Keyword != "" && q.Sort != board.SortViewCount {
		boards, total, err := uc.searchIndex(ctx, q)
		if err == nil {
			return boards, total, nil
		}
		uc.logger.Warn("Index search failed, falling back to database: %v", err)
	}

	boards, total, err := uc.boardRepo.Search(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	return boards, total, nil
}

func (uc *boardUseCase) searchIndex(ctx context.Context, q board.Query) ([]*entity.Board, int64, error) {
	ids, total, err := uc.index.Search(ctx, q)
	if err != nil {
		return nil, 0, err
	}

	boards, err := uc.boardRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load search hits: %w", err)
	}
	if len(boards) != len(ids) {
		uc.pruneIndex(ctx, ids, boards)
		return nil, 0, fmt.Errorf("%w: %d of %d hits missing", errStaleIndex, len(ids)-len(boards), len(ids))
	}
	return boards, total, nil
}

// pruneIndex drops the hits that no longer have a live post.
func (uc *boardUseCase) pruneIndex(ctx context.Context, ids []int64, found []*entity.Board) {
	live := make(map[int64]bool, len(found))
	for _, b := range found {
		live[b.ID] = true
	}
	for _, id := range ids {
		if live[id] {
			continue
		}
		if err := uc.index.Remove(ctx, id); err != nil {
			uc.logger.Warn("Failed to prune board %d from index: %v", id, err)
		}
	}
}

// GetBoard returns a post and counts the view once per viewer. An empty
// viewer is always counted.
func (uc *boardUseCase) GetBoard(ctx context.Context, id int64, viewer string) (*entity.Board, error) {
	b, err := uc.boardRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	count := true
	if uc.views != nil && viewer != "" {
		first, err := uc.views.MarkViewed(ctx, id, viewer)
		if err != nil {
			uc.logger.Warn("View tracking failed for board %d: %v", id, err)
		}
		count = err == nil && first
	}

	if count {
		if err := uc.boardRepo.IncrementViews(ctx, id); err != nil {
			uc.logger.Error("Failed to increment views for board %d: %v", id, err)
		} else {
			b.ViewCount++
		}
	}

	return b, nil
}

func (uc *boardUseCase) CreateBoard(ctx context.Context, input CreateBoardInput) (*entity.Board, error) {
	if len(input.Images) > entity.MaxImages {
		return nil, entity.ErrTooManyImages
	}

	userID := input.UserID
	b := &entity.Board{
		CategoryID:   input.CategoryID,
		UserID:       &userID,
		Nickname:     strings.TrimSpace(input.Nickname),
		Title:        optional(input.Title),
		Content:      strings.TrimSpace(input.Content),
		SnsURL:       optional(input.SnsURL),
		Kind:         optional(input.Kind),
		Gender:       optional(input.Gender),
		Age:          optional(input.Age),
		Color:        optional(input.Color),
		LostLocation: optional(input.LostLocation),
		LostDate:     optional(input.LostDate),
		LostType:     optional(input.LostType),
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}

	for i, img := range input.Images {
		url, err := uc.uploadImage(ctx, input.UserID, img)
		if err != nil {
			uc.discardImages(b.Images)
			return nil, err
		}
		b.Images = append(b.Images, entity.BoardImage{ImageURL: url, Order: i})
	}
	if len(b.Images) > 0 {
		thumbnail := b.Images[0].ImageURL
		b.ThumbnailURL = &thumbnail
	}

	if err := uc.boardRepo.Create(ctx, b); err != nil {
		uc.discardImages(b.Images)
		return nil, err
	}

	uc.afterWrite(ctx, b)

	if uc.events != nil && b.IsLost() {
		go uc.publishLostReport(b)
	}

	return b, nil
}

func (uc *boardUseCase) UpdateBoard(ctx context.Context, id, userID int64, input UpdateBoardInput) (*entity.Board, error) {
	b, err := uc.boardRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !b.OwnedBy(userID) {
		return nil, entity.ErrForbidden
	}

	if input.Title != nil {
		b.Title = optional(*input.Title)
	}
	if input.Content != nil {
		b.Content = strings.TrimSpace(*input.Content)
	}
	replace(&b.SnsURL, input.SnsURL)
	replace(&b.Kind, input.Kind)
	replace(&b.Gender, input.Gender)
	replace(&b.Age, input.Age)
	replace(&b.Color, input.Color)
	replace(&b.LostLocation, input.LostLocation)
	replace(&b.LostDate, input.LostDate)
	replace(&b.LostType, input.LostType)

	if err := b.Validate(); err != nil {
		return nil, err
	}

	if err := uc.boardRepo.Update(ctx, b); err != nil {
		return nil, err
	}
	b.UpdatedAt = time.Now()

	uc.afterWrite(ctx, b)
	return b, nil
}

func (uc *boardUseCase) DeleteBoard(ctx context.Context, id, userID int64) error {
	b, err := uc.boardRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !b.OwnedBy(userID) {
		return entity.ErrForbidden
	}

	if err := uc.boardRepo.Delete(ctx, id); err != nil {
		return err
	}

	if uc.index != nil {
		if err := uc.index.Remove(ctx, id); err != nil {
			uc.logger.Warn("Failed to remove board %d from index: %v", id, err)
		}
	}
	uc.invalidateSearch(ctx)
	return nil
}

func (uc *boardUseCase) uploadImage(ctx context.Context, userID int64, img ImageUpload) (string, error) {
	src, err := img.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer src.Close()

	key := fmt.Sprintf("boards/%d/%s%s", userID, uuid.New().String(), strings.ToLower(filepath.Ext(img.Filename)))
	contentType := img.ContentType
	if contentType == "" {
		contentType = "image/jpeg"
	}

	url, err := uc.images.Upload(ctx, key, src, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %w", err)
	}
	return url, nil
}

func (uc *boardUseCase) discardImages(images []entity.BoardImage) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, img := range images {
		if err := uc.images.Delete(ctx, img.ImageURL); err != nil {
			uc.logger.Warn("Failed to delete orphaned image %s: %v", img.ImageURL, err)
		}
	}
}

func (uc *boardUseCase) afterWrite(ctx context.Context, b *entity.Board) {
	if uc.index != nil {
		if err := uc.index.Index(ctx, b); err != nil {
			uc.logger.Warn("Failed to index board %d: %v", b.ID, err)
		}
	}
	uc.invalidateSearch(ctx)
}

func (uc *boardUseCase) invalidateSearch(ctx context.Context) {
	if uc.searchCache == nil {
		return
	}
	if err := uc.searchCache.Invalidate(ctx); err != nil {
		uc.logger.Warn("Failed to invalidate search cache: %v", err)
	}
}

func (uc *boardUseCase) publishLostReport(b *entity.Board) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	report := queue.LostReport{
		Type:         "lost_report",
		BoardID:      b.ID,
		LostType:     value(b.LostType),
		Kind:         value(b.Kind),
		LostLocation: value(b.LostLocation),
		LostDate:     value(b.LostDate),
		ThumbnailURL: value(b.ThumbnailURL),
	}

	if err := uc.events.PublishLostReport(ctx, report); err != nil {
		uc.logger.Error("Failed to publish lost report for board %d: %v", b.ID, err)
		return
	}
	uc.logger.Info("Published lost report for board %d", b.ID)
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func replace(dst **string, src *string) {
	if src != nil {
		*dst = optional(*src)
	}
}

func value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
