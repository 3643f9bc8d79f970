package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"hotel-inventory/models"
)

const roomTypesCacheKey = "hotel:room_types"

// CachedStore serves ListRoomTypes from Redis. Room types do not change while
// the reservation core runs, so only that list is cached; everything else is
// delegated to the wrapped Store. Redis failures fall back to the store.
type CachedStore struct {
	Store
	rdb    *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

func NewCachedStore(inner Store, rdb *redis.Client, ttl time.Duration, logger zerolog.Logger) *CachedStore {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachedStore{Store: inner, rdb: rdb, ttl: ttl, logger: logger}
}

func (c *CachedStore) ListRoomTypes(ctx context.Context) ([]models.RoomType, error) {
	bs, err := c.rdb.Get(ctx, roomTypesCacheKey).Bytes()
	switch {
	case err == nil:
		var types []models.RoomType
		if jerr := json.Unmarshal(bs, &types); jerr == nil {
			return types, nil
		}
		c.logger.Warn().Str("key", roomTypesCacheKey).Msg("discarding undecodable cache entry")
	case !errors.Is(err, redis.Nil):
		c.logger.Warn().Err(err).Str("key", roomTypesCacheKey).Msg("redis get failed")
	}

	types, err := c.Store.ListRoomTypes(ctx)
	if err != nil {
		return nil, err
	}
	if payload, jerr := json.Marshal(types); jerr == nil {
		if serr := c.rdb.Set(ctx, roomTypesCacheKey, payload, c.ttl).Err(); serr != nil {
			c.logger.Warn().Err(serr).Str("key", roomTypesCacheKey).Msg("redis set failed")
		}
	}
	return types, nil
}

// Invalidate drops the cached room type list.
func (c *CachedStore) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, roomTypesCacheKey).Err()
}
