package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"campus-market/internal/model"

	"github.com/redis/go-redis/v9"
)

const listingKeyPrefix = "products:"

// ListingCache 快取上架商品列表，key 依分類區分，"all" 代表不過濾
type ListingCache struct {
	c   Cache
	ttl time.Duration
}

func NewListingCache(c Cache, ttl time.Duration) *ListingCache {
	return &ListingCache{c: c, ttl: ttl}
}

func listingKey(category string) string {
	if category == "" {
		return listingKeyPrefix + "all"
	}
	return listingKeyPrefix + category
}

// Get 命中時回傳 (list, true, nil)；未命中回傳 ok=false
func (l *ListingCache) Get(ctx context.Context, category string) ([]model.ProductListing, bool, error) {
	raw, err := l.c.Get(ctx, listingKey(category)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var list []model.ProductListing
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, false, err
	}
	return list, true, nil
}

func (l *ListingCache) Set(ctx context.Context, category string, list []model.ProductListing) error {
	raw, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return l.c.Set(ctx, listingKey(category), raw, l.ttl).Err()
}

// Invalidate 刪除全部列表與該分類的快取
// 與 Invalidate 同時進行的讀取仍可能寫回舊列表，最多保留 ttl
func (l *ListingCache) Invalidate(ctx context.Context, category string) error {
	keys := []string{listingKey("")}
	if category != "" {
		keys = append(keys, listingKey(category))
	}
	return l.c.Del(ctx, keys...).Err()
}
