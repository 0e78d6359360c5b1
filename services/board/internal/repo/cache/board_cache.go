package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"pet-board/pkg/board"

	"github.com/redis/go-redis/v9"
)

const (
	searchKeyPrefix  = "board-search"
	searchVersionKey = "board-search:version"
	viewKeyPrefix    = "board-view"
)

// ErrCacheMiss reports that nothing usable is cached for a query.
var ErrCacheMiss = errors.New("cache miss")

// SearchCache stores rendered search pages. Entries are keyed by a version
// number; Invalidate bumps the version so every older entry stops matching
// and then expires on its own.
type SearchCache interface {
	Get(ctx context.Context, q board.Query) (*board.Page[board.ApiAnimal], error)
	Set(ctx context.Context, q board.Query, page *board.Page[board.ApiAnimal]) error
	Invalidate(ctx context.Context) error
}

// ViewTracker remembers who has already viewed a post.
type ViewTracker interface {
	MarkViewed(ctx context.Context, boardID int64, viewer string) (bool, error)
}

type redisSearchCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSearchCache(client *redis.Client, ttl time.Duration) SearchCache {
	return &redisSearchCache{client: client, ttl: ttl}
}

func SearchKey(version int64, q board.Query) string {
	q = q.Normalize()
	return fmt.Sprintf("%s:%d:%d:%s:%s:%d:%d",
		searchKeyPrefix, version, q.Category.ID(), url.QueryEscape(q.Keyword), q.Sort, q.Page, q.Size)
}

func (c *redisSearchCache) version(ctx context.Context) (int64, error) {
	v, err := c.client.Get(ctx, searchVersionKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

func (c *redisSearchCache) Get(ctx context.Context, q board.Query) (*board.Page[board.ApiAnimal], error) {
	v, err := c.version(ctx)
	if err != nil {
		return nil, err
	}

	data, err := c.client.Get(ctx, SearchKey(v, q)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}

	var page board.Page[board.ApiAnimal]
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, fmt.Errorf("corrupt search cache entry: %w", err)
	}
	return &page, nil
}

func (c *redisSearchCache) Set(ctx context.Context, q board.Query, page *board.Page[board.ApiAnimal]) error {
	v, err := c.version(ctx)
	if err != nil {
		return err
	}

	data, err := json.Marshal(page)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, SearchKey(v, q), data, c.ttl).Err()
}

func (c *redisSearchCache) Invalidate(ctx context.Context) error {
	return c.client.Incr(ctx, searchVersionKey).Err()
}

type redisViewTracker struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisViewTracker(client *redis.Client, ttl time.Duration) ViewTracker {
	return &redisViewTracker{client: client, ttl: ttl}
}

func ViewKey(boardID int64, viewer string) string {
	return fmt.Sprintf("%s:%d:%s", viewKeyPrefix, boardID, viewer)
}

// MarkViewed reports true the first time viewer sees the post within the TTL.
func (t *redisViewTracker) MarkViewed(ctx context.Context, boardID int64, viewer string) (bool, error) {
	return t.client.SetNX(ctx, ViewKey(boardID, viewer), "1", t.ttl).Result()
}
