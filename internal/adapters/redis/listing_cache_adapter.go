package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"

	goredis "github.com/redis/go-redis/v9"
)

const detailsKeyPrefix = "listing:details:"

// cacheClient - часть *redis.Client, которой пользуется адаптер
type cacheClient interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *goredis.StatusCmd
	Del(ctx context.Context, keys ...string) *goredis.IntCmd
}

var _ cacheClient = (*goredis.Client)(nil)

// ListingCacheAdapter хранит детальные представления объявлений в Redis в виде JSON
type ListingCacheAdapter struct {
	rdb cacheClient
	ttl time.Duration
}

func NewListingCacheAdapter(rdb *goredis.Client, ttl time.Duration) (*ListingCacheAdapter, error) {
	if rdb == nil {
		return nil, fmt.Errorf("redis client cannot be nil")
	}
	return newListingCacheAdapter(rdb, ttl), nil
}

func newListingCacheAdapter(rdb cacheClient, ttl time.Duration) *ListingCacheAdapter {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ListingCacheAdapter{rdb: rdb, ttl: ttl}
}

func detailsKey(listingID string) string {
	return detailsKeyPrefix + listingID
}

func (a *ListingCacheAdapter) GetDetails(ctx context.Context, listingID string) (*domain.DetailView, error) {
	payload, err := a.rdb.Get(ctx, detailsKey(listingID)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get %s: %w", listingID, err)
	}

	var view domain.DetailView
	if err := json.Unmarshal(payload, &view); err != nil {
		// повреждённую запись удаляем и считаем промахом
		contextkeys.LoggerFromContext(ctx).Warn("Dropping undecodable cache entry", port.Fields{
			"component":  "ListingCacheAdapter",
			"listing_id": listingID,
			"error":      err.Error(),
		})
		_ = a.rdb.Del(ctx, detailsKey(listingID)).Err()
		return nil, nil
	}
	return &view, nil
}

func (a *ListingCacheAdapter) SetDetails(ctx context.Context, view domain.DetailView) error {
	payload, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("marshal detail view: %w", err)
	}
	if err := a.rdb.Set(ctx, detailsKey(view.ListingID), payload, a.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", view.ListingID, err)
	}
	return nil
}

func (a *ListingCacheAdapter) Invalidate(ctx context.Context, listingID string) error {
	if err := a.rdb.Del(ctx, detailsKey(listingID)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", listingID, err)
	}
	return nil
}
