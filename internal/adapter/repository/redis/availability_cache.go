package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/srgjo27/quincho_booking/internal/core/domain"
)

// AvailabilityCache keeps one entry per month and generation. Invalidate
// bumps the generation, so a Set computed from a read that raced an
// invalidation is written under a key no reader looks at and expires unseen.
type AvailabilityCache struct {
	client goredis.Cmdable
	ttl    time.Duration
}

func NewAvailabilityCache(client goredis.Cmdable, ttl time.Duration) *AvailabilityCache {
	return &AvailabilityCache{client: client, ttl: ttl}
}

func availabilityVersionKey(year int, month time.Month) string {
	return fmt.Sprintf("availability:%04d-%02d:version", year, int(month))
}

func availabilityKey(year int, month time.Month, version int64) string {
	return fmt.Sprintf("availability:%04d-%02d:v%d", year, int(month), version)
}

func (c *AvailabilityCache) version(ctx context.Context, year int, month time.Month) (int64, error) {
	version, err := c.client.Get(ctx, availabilityVersionKey(year, month)).Int64()
	if errors.Is(err, goredis.Nil) {
		return 0, nil
	}
	return version, err
}

func (c *AvailabilityCache) Get(ctx context.Context, year int, month time.Month) ([]domain.DayAvailability, int64, bool, error) {
	version, err := c.version(ctx, year, month)
	if err != nil {
		return nil, 0, false, err
	}

	raw, err := c.client.Get(ctx, availabilityKey(year, month, version)).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, version, false, nil
		}
		return nil, 0, false, err
	}

	var days []domain.DayAvailability
	if err := json.Unmarshal([]byte(raw), &days); err != nil {
		return nil, version, false, fmt.Errorf("decode cached availability: %w", err)
	}

	if days == nil {
		days = []domain.DayAvailability{}
	}

	return days, version, true, nil
}

func (c *AvailabilityCache) Set(ctx context.Context, year int, month time.Month, version int64, days []domain.DayAvailability) error {
	if days == nil {
		days = []domain.DayAvailability{}
	}

	data, err := json.Marshal(days)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, availabilityKey(year, month, version), string(data), c.ttl).Err()
}

func (c *AvailabilityCache) Invalidate(ctx context.Context, year int, month time.Month) error {
	return c.client.Incr(ctx, availabilityVersionKey(year, month)).Err()
}
