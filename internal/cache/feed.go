package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"personalblog/model"
)

var ctx = context.Background()

const feedKey = "blog:feed:all"

// FeedCache keeps the newest-first post feed in Redis so the public list
// endpoint does not hit MySQL on every read. Mutations invalidate the key.
type FeedCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewFeedCache(rdb *redis.Client, ttl time.Duration) *FeedCache {
	return &FeedCache{rdb: rdb, ttl: ttl}
}

// Get returns the cached feed, or (nil, redis.Nil) on a miss.
func (f *FeedCache) Get() ([]model.Post, error) {
	data, err := f.rdb.Get(ctx, feedKey).Bytes()
	if err != nil {
		return nil, err
	}
	var posts []model.Post
	if err := json.Unmarshal(data, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// Set stores the feed snapshot for the configured TTL.
func (f *FeedCache) Set(posts []model.Post) error {
	data, err := json.Marshal(posts)
	if err != nil {
		return err
	}
	return f.rdb.Set(ctx, feedKey, data, f.ttl).Err()
}

// Invalidate drops the snapshot, used after create/update/delete/comment.
func (f *FeedCache) Invalidate() error {
	return f.rdb.Del(ctx, feedKey).Err()
}
