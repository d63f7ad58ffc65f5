package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/Domenick1991/staybooking/config"
	"github.com/Domenick1991/staybooking/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client    *redis.Client
	placesTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, placesTTL time.Duration) *RedisCache {
	return NewRedisCacheWithClient(redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}), placesTTL)
}

func NewRedisCacheWithClient(client *redis.Client, placesTTL time.Duration) *RedisCache {
	return &RedisCache{client: client, placesTTL: placesTTL}
}

// GetPlaces returns the cached list, nil on a miss, together with the
// generation to hand back to SetPlaces.
func (c *RedisCache) GetPlaces(ctx context.Context) ([]domain.Place, int64, error) {
	vals, err := c.client.MGet(ctx, placesKey(), placesGenerationKey).Result()
	if err != nil {
		return nil, 0, err
	}

	generation, err := parseGeneration(vals[1])
	if err != nil {
		return nil, 0, err
	}

	raw, ok := vals[0].(string)
	if !ok {
		return nil, generation, nil
	}
	var places []domain.Place
	if err := json.Unmarshal([]byte(raw), &places); err != nil {
		return nil, generation, err
	}
	return places, generation, nil
}

// SetPlaces stores places only while the generation still matches, so a list
// read before an invalidation is never cached after it.
func (c *RedisCache) SetPlaces(ctx context.Context, generation int64, places []domain.Place) error {
	payload, err := json.Marshal(places)
	if err != nil {
		return err
	}

	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, placesGenerationKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != generation {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, placesKey(), payload, c.placesTTL)
			return nil
		})
		return err
	}, placesGenerationKey)
	if errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	return err
}

func (c *RedisCache) InvalidatePlaces(ctx context.Context) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, placesGenerationKey)
		pipe.Del(ctx, placesKey())
		return nil
	})
	return err
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

const placesGenerationKey = "cache:places:generation"

func parseGeneration(v interface{}) (int64, error) {
	s, ok := v.(string)
	if !ok {
		return 0, nil
	}
	return strconv.ParseInt(s, 10, 64)
}

func placesKey() string {
	return "cache:places"
}
