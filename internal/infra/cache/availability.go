package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"session-booking/internal/pkg/config"
	"session-booking/internal/pkg/errs"
	"session-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const dateKeyLayout = "20060102"

type RedisAvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewAvailabilityCache returns a Redis backed cache, or a no-op one when no address is configured.
func NewAvailabilityCache(cfg config.RedisConfig) (shared.AvailabilitySnapshotCache, func()) {
	if cfg.Addr == "" {
		slog.Info("Availability cache disabled")
		return NoopAvailabilityCache{}, func() {}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	cleanup := func() {
		if err := client.Close(); err != nil {
			slog.Error("Failed to close redis client", "error", err)
		}
	}
	return NewRedisAvailabilityCache(client, cfg.AvailabilityTTL), cleanup
}

func NewRedisAvailabilityCache(client *redis.Client, ttl time.Duration) *RedisAvailabilityCache {
	return &RedisAvailabilityCache{client: client, ttl: ttl}
}

func (c *RedisAvailabilityCache) Get(ctx context.Context, restaurantID uuid.UUID, from, to time.Time, dst any) (int64, bool, error) {
	version, err := c.version(ctx, restaurantID)
	if err != nil {
		return 0, false, err
	}

	data, err := c.client.Get(ctx, rangeKey(restaurantID, version, from, to)).Bytes()
	if err != nil {
		if errs.Is(err, redis.Nil) {
			return version, false, nil
		}
		return version, false, errs.Wrap(err, "redis get availability")
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return version, false, errs.Wrap(err, "decode cached availability")
	}
	return version, true, nil
}

// Set stores under the version returned by Get. The version is not re-read here.
func (c *RedisAvailabilityCache) Set(ctx context.Context, restaurantID uuid.UUID, version int64, from, to time.Time, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return errs.Wrap(err, "encode availability")
	}
	key := rangeKey(restaurantID, version, from, to)
	return errs.Wrap(c.client.Set(ctx, key, payload, c.ttl).Err(), "redis set availability")
}

func (c *RedisAvailabilityCache) Invalidate(ctx context.Context, restaurantID uuid.UUID) error {
	return errs.Wrap(c.client.Incr(ctx, versionKey(restaurantID)).Err(), "redis bump availability version")
}

func (c *RedisAvailabilityCache) version(ctx context.Context, restaurantID uuid.UUID) (int64, error) {
	version, err := c.client.Get(ctx, versionKey(restaurantID)).Int64()
	if err != nil && !errs.Is(err, redis.Nil) {
		return 0, errs.Wrap(err, "redis get availability version")
	}
	return version, nil
}

func rangeKey(restaurantID uuid.UUID, version int64, from, to time.Time) string {
	return fmt.Sprintf("cache:availability:%s:v%d:%s-%s",
		restaurantID, version, from.Format(dateKeyLayout), to.Format(dateKeyLayout))
}

func versionKey(restaurantID uuid.UUID) string {
	return fmt.Sprintf("cache:availability:%s:version", restaurantID)
}

// NoopAvailabilityCache always misses.
type NoopAvailabilityCache struct{}

func (NoopAvailabilityCache) Get(context.Context, uuid.UUID, time.Time, time.Time, any) (int64, bool, error) {
	return 0, false, nil
}

func (NoopAvailabilityCache) Set(context.Context, uuid.UUID, int64, time.Time, time.Time, any) error {
	return nil
}

func (NoopAvailabilityCache) Invalidate(context.Context, uuid.UUID) error {
	return nil
}
