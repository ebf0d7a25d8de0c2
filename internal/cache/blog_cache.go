package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/circlio/backend/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	latestBlogsKey = "latest_blogs"
	latestBlogsTTL = 5 * time.Minute
)

// BlogCache caches the latest published blogs in Redis
type BlogCache struct {
	rdb *redis.Client
}

// NewBlogCache creates a new BlogCache
func NewBlogCache(rdb *redis.Client) *BlogCache {
	return &BlogCache{rdb: rdb}
}

// SetLatest caches the latest blogs with a short TTL
func (c *BlogCache) SetLatest(ctx context.Context, blogs []models.Blog) error {
	data, err := json.Marshal(blogs)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, latestBlogsKey, data, latestBlogsTTL).Err()
}

// GetLatest retrieves the cached latest blogs; a cache miss returns redis.Nil
func (c *BlogCache) GetLatest(ctx context.Context) ([]models.Blog, error) {
	data, err := c.rdb.Get(ctx, latestBlogsKey).Result()
	if err != nil {
		return nil, err
	}

	var blogs []models.Blog
	if err := json.Unmarshal([]byte(data), &blogs); err != nil {
		return nil, err
	}
	return blogs, nil
}
